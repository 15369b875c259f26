package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"exam_scheduler/internal/model"
)

// UserService serves the read-only identity records and the student's own
// exam history.
type UserService struct {
	users   UserStore
	courses CourseStore
	slots   SlotStore
	logger  *zap.Logger
}

func NewUserService(users UserStore, courses CourseStore, slots SlotStore, logger *zap.Logger) *UserService {
	return &UserService{users: users, courses: courses, slots: slots, logger: logger}
}

func (s *UserService) StudentProfile(ctx context.Context, id string) (*model.Student, error) {
	student, err := s.users.GetStudent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}
	return student, nil
}

// StudentExams returns every exam the student has booked or attempted.
func (s *UserService) StudentExams(ctx context.Context, id string) ([]*model.StudentExam, error) {
	return s.slots.ForStudent(ctx, id)
}

// TeacherProfile returns the teacher together with the course they own.
func (s *UserService) TeacherProfile(ctx context.Context, id string) (*model.Teacher, *model.Course, error) {
	teacher, err := s.users.GetTeacher(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get teacher: %w", err)
	}
	if teacher == nil {
		return nil, nil, ErrTeacherNotFound
	}
	course, err := s.courses.GetByTeacherID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get teacher course: %w", err)
	}
	return teacher, course, nil
}
