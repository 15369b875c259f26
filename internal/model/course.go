package model

// Course is immutable once created; there are no mutation operations on it.
type Course struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TeacherID string `json:"teacher_id"`
}
