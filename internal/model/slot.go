package model

// SlotKey uniquely identifies a slot. It is a comparable value type so it can
// be used directly as a map key and makes the conditional-update contract on
// a slot unambiguous.
type SlotKey struct {
	CourseID string `json:"course_id"`
	SlotDate string `json:"slot_date"` // YYYY-MM-DD
	SlotHour string `json:"slot_hour"` // HH:MM
}

// CallKey identifies one exam call: a scheduled exam instance of a course.
type CallKey struct {
	CourseID string `json:"course_id"`
	ExamDate string `json:"exam_date"` // YYYY-MM-DD
}

type SlotState string

const (
	SlotStateOpen     SlotState = "open"
	SlotStateReserved SlotState = "reserved"
	SlotStateResulted SlotState = "resulted"
)

// Slot is the smallest bookable unit of exam time, occupied by at most one
// student. Slots are created open and never deleted. Invariants: StudentID is
// non-nil iff the slot is reserved or resulted; Mark is non-nil only when
// StudentID is non-nil.
type Slot struct {
	CourseID  string  `json:"course_id"`
	SlotDate  string  `json:"slot_date"`
	SlotHour  string  `json:"slot_hour"`
	Duration  int     `json:"duration"` // minutes
	ExamDate  string  `json:"exam_date"`
	StudentID *string `json:"stud_id"`
	Mark      *Mark   `json:"mark"`
}

func (s *Slot) Key() SlotKey {
	return SlotKey{CourseID: s.CourseID, SlotDate: s.SlotDate, SlotHour: s.SlotHour}
}

func (s *Slot) Call() CallKey {
	return CallKey{CourseID: s.CourseID, ExamDate: s.ExamDate}
}

// State derives the lifecycle state from the occupancy fields. Resulted is
// terminal: there is no transition out of it.
func (s *Slot) State() SlotState {
	switch {
	case s.StudentID == nil:
		return SlotStateOpen
	case s.Mark == nil:
		return SlotStateReserved
	default:
		return SlotStateResulted
	}
}
