package model

// SessionEntry is one teacher-entered contiguous time window on a single
// calendar day, to be subdivided into slots.
type SessionEntry struct {
	DayDate              string `json:"day_date"`   // YYYY-MM-DD
	StartTime            string `json:"start_time"` // HH:MM
	TotalDurationMinutes int    `json:"total_duration_minutes"`
}

// ExamSession is the transient input of exam-call creation. It is consumed
// entirely by slot generation and never persisted itself.
type ExamSession struct {
	CourseID            string         `json:"course_id"`
	ExamDate            string         `json:"exam_date"`
	SlotDurationMinutes int            `json:"slot_duration_minutes"`
	Entries             []SessionEntry `json:"entries"`
}
