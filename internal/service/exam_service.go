package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"exam_scheduler/internal/model"
	"exam_scheduler/internal/schedule"
)

// ExamService orchestrates exam-call creation: expanding the teacher's
// session windows into slots and persisting the call.
type ExamService struct {
	courses  CourseStore
	slots    SlotStore
	selected SelectedStudentStore
	logger   *zap.Logger
}

func NewExamService(
	courses CourseStore,
	slots SlotStore,
	selected SelectedStudentStore,
	logger *zap.Logger,
) *ExamService {
	return &ExamService{
		courses:  courses,
		slots:    slots,
		selected: selected,
		logger:   logger,
	}
}

// CreateCall validates the whole request before issuing any write: the
// session entries expand and collapse cleanly (all violations reported
// together), the unique slot count covers the roster, and no slots exist yet
// for this call. Only then are all slot and selected-student inserts issued.
// The store offers no multi-row transaction, so a failure mid-way leaves the
// already-issued inserts applied; the collective failure is still reported to
// the caller, never hidden.
func (s *ExamService) CreateCall(ctx context.Context, teacherID string, session model.ExamSession, studentIDs []string) ([]*model.Slot, error) {
	course, err := s.courses.GetByID(ctx, session.CourseID)
	if err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	if course.TeacherID != teacherID {
		return nil, ErrNotCourseOwner
	}
	if len(studentIDs) == 0 {
		return nil, ErrNoSelectedStudents
	}

	unique, err := schedule.ExpandSession(session)
	if err != nil {
		return nil, err
	}
	if len(unique) < len(studentIDs) {
		return nil, ErrInsufficientCapacity
	}

	call := model.CallKey{CourseID: session.CourseID, ExamDate: session.ExamDate}
	exists, err := s.slots.HasCall(ctx, call)
	if err != nil {
		return nil, fmt.Errorf("check call exists: %w", err)
	}
	if exists {
		return nil, ErrCallAlreadyExists
	}

	var failed int
	slots := make([]*model.Slot, 0, len(unique))
	for _, cand := range unique {
		slot := &model.Slot{
			CourseID: session.CourseID,
			SlotDate: cand.Date,
			SlotHour: cand.Time,
			Duration: cand.Duration,
			ExamDate: session.ExamDate,
		}
		if err := s.slots.Insert(ctx, slot); err != nil {
			s.logger.Error("Failed to insert slot",
				zap.String("course_id", slot.CourseID),
				zap.String("slot_date", slot.SlotDate),
				zap.String("slot_hour", slot.SlotHour),
				zap.Error(err),
			)
			failed++
			continue
		}
		slots = append(slots, slot)
	}

	for _, studentID := range studentIDs {
		sel := &model.SelectedStudent{
			StudentID: studentID,
			CourseID:  session.CourseID,
			ExamDate:  session.ExamDate,
		}
		if err := s.selected.Insert(ctx, sel); err != nil {
			s.logger.Error("Failed to insert selected student",
				zap.String("stud_id", studentID),
				zap.String("course_id", session.CourseID),
				zap.Error(err),
			)
			failed++
		}
	}

	if failed > 0 {
		return slots, fmt.Errorf("exam call partially written: %d of %d inserts failed",
			failed, len(unique)+len(studentIDs))
	}

	s.logger.Info("Exam call created",
		zap.String("course_id", session.CourseID),
		zap.String("exam_date", session.ExamDate),
		zap.Int("slots", len(slots)),
		zap.Int("selected_students", len(studentIDs)),
	)
	return slots, nil
}
