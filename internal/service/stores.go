package service

import (
	"context"
	"time"

	"exam_scheduler/internal/model"
)

// Store interfaces the services depend on. The pgx repositories in
// internal/repository satisfy them; tests substitute in-memory fakes.

type SlotStore interface {
	Insert(ctx context.Context, slot *model.Slot) error
	GetByKey(ctx context.Context, key model.SlotKey) (*model.Slot, error)
	OpenForStudent(ctx context.Context, studentID string) ([]*model.Slot, error)
	CallsWithStudent(ctx context.Context, studentID string) ([]model.CallKey, error)
	ForStudent(ctx context.Context, studentID string) ([]*model.StudentExam, error)
	HasCall(ctx context.Context, call model.CallKey) (bool, error)
	// UpdateOccupant and SetMark are conditional single-row updates: they
	// report false without error when the slot is not in the expected state.
	UpdateOccupant(ctx context.Context, key model.SlotKey, expected, next *string) (bool, error)
	SetMark(ctx context.Context, key model.SlotKey, studentID string, mark model.Mark) (bool, error)
}

type EnrollmentStore interface {
	SetPassed(ctx context.Context, courseID, studentID string) error
	SelectableStudents(ctx context.Context, courseID string) ([]*model.Student, error)
}

type SelectedStudentStore interface {
	Insert(ctx context.Context, sel *model.SelectedStudent) error
	OverviewRows(ctx context.Context, call model.CallKey) ([]*model.OverviewRow, error)
}

type CourseStore interface {
	GetByID(ctx context.Context, id string) (*model.Course, error)
	GetByTeacherID(ctx context.Context, teacherID string) (*model.Course, error)
}

type UserStore interface {
	GetStudent(ctx context.Context, id string) (*model.Student, error)
	GetTeacher(ctx context.Context, id string) (*model.Teacher, error)
}

type SessionStore interface {
	Insert(ctx context.Context, token, userID string, expiresAt time.Time) error
	GetUserID(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}
