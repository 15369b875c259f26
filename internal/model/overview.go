package model

type StudentStatusKind string

const (
	StatusMissing  StudentStatusKind = "missing"  // selected but never booked
	StatusBooked   StudentStatusKind = "booked"   // holds a slot, no mark yet
	StatusResulted StudentStatusKind = "resulted" // mark recorded
)

// OverviewRow is one row of the roster-against-slots left join, as read from
// the store. Slot fields are nil for students who never booked.
type OverviewRow struct {
	StudentID string
	Name      string
	Surname   string
	SlotDate  *string
	SlotHour  *string
	Mark      *Mark
}

// StudentStatus is the per-student view a teacher sees for one exam call.
type StudentStatus struct {
	StudentID string            `json:"stud_id"`
	Name      string            `json:"name"`
	Surname   string            `json:"surname"`
	Status    StudentStatusKind `json:"status"`
	SlotDate  *string           `json:"slot_date,omitempty"`
	SlotHour  *string           `json:"slot_hour,omitempty"`
	Mark      *Mark             `json:"mark,omitempty"`
}

// StudentExam is one entry of a student's own exam history: a slot they
// booked or attempted, with the course name attached.
type StudentExam struct {
	CourseID   string `json:"course_id"`
	CourseName string `json:"course_name"`
	SlotDate   string `json:"slot_date"`
	SlotHour   string `json:"slot_hour"`
	Mark       *Mark  `json:"mark"`
}
