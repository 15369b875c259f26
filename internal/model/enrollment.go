package model

// Enrollment links a student to a course. Passed starts false and is flipped
// to true exactly once, when a qualifying mark is recorded; it never reverts.
type Enrollment struct {
	StudentID string `json:"stud_id"`
	CourseID  string `json:"course_id"`
	Passed    bool   `json:"passed"`
}
