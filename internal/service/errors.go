package service

import "errors"

var (
	ErrSlotNotFound           = errors.New("slot not found")
	ErrSlotUnavailable        = errors.New("slot is already taken")
	ErrInvalidStateTransition = errors.New("slot is not in the required state for this operation")
	ErrInsufficientCapacity   = errors.New("not enough slots for the selected students")
	ErrCallAlreadyExists      = errors.New("slots already exist for this course and exam date")
	ErrNoSelectedStudents     = errors.New("at least one student must be selected")
	ErrCourseNotFound         = errors.New("course not found")
	ErrNotCourseOwner         = errors.New("course does not belong to this teacher")
	ErrStudentNotFound        = errors.New("student not found")
	ErrTeacherNotFound        = errors.New("teacher not found")
	ErrWrongPassword          = errors.New("wrong password")
)
