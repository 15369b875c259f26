package model

// SelectedStudent records that a teacher expects a student to attempt the
// exam on a given date, independent of whether the student ever occupies a
// slot. It drives the "missing" status in the results overview.
type SelectedStudent struct {
	StudentID string `json:"stud_id"`
	CourseID  string `json:"course_id"`
	ExamDate  string `json:"exam_date"`
}

func (s *SelectedStudent) Call() CallKey {
	return CallKey{CourseID: s.CourseID, ExamDate: s.ExamDate}
}
