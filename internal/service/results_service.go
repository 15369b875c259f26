package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"exam_scheduler/internal/model"
)

// ResultsService is the teacher-facing side of the slot lifecycle: the
// Reserved -> Resulted transition and the per-call results overview.
type ResultsService struct {
	slots       SlotStore
	enrollments EnrollmentStore
	selected    SelectedStudentStore
	logger      *zap.Logger
}

func NewResultsService(
	slots SlotStore,
	enrollments EnrollmentStore,
	selected SelectedStudentStore,
	logger *zap.Logger,
) *ResultsService {
	return &ResultsService{
		slots:       slots,
		enrollments: enrollments,
		selected:    selected,
		logger:      logger,
	}
}

// ResultOutcome reports the two writes of a result recording. The mark write
// is authoritative; PassedFlagErr is set when the dependent enrollment update
// failed after the mark was already saved, a lower-severity condition the
// caller surfaces separately.
type ResultOutcome struct {
	MarkSaved     bool
	PassedUpdated bool
	PassedFlagErr error
}

// RecordResult moves a reserved slot to resulted. The mark write is a single
// conditional update requiring the slot to be reserved by exactly the given
// student and still unmarked. When the mark denotes a pass, the student's
// enrollment flag is flipped afterwards as a best-effort second write: its
// failure does not undo the mark.
func (s *ResultsService) RecordResult(ctx context.Context, key model.SlotKey, studentID string, mark model.Mark) (*ResultOutcome, error) {
	ok, err := s.slots.SetMark(ctx, key, studentID, mark)
	if err != nil {
		return nil, fmt.Errorf("set mark: %w", err)
	}
	if !ok {
		slot, err := s.slots.GetByKey(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get slot: %w", err)
		}
		if slot == nil {
			return nil, ErrSlotNotFound
		}
		return nil, ErrInvalidStateTransition
	}

	outcome := &ResultOutcome{MarkSaved: true}
	if mark.Passing() {
		if err := s.enrollments.SetPassed(ctx, key.CourseID, studentID); err != nil {
			s.logger.Warn("Mark saved but passed flag update failed",
				zap.String("stud_id", studentID),
				zap.String("course_id", key.CourseID),
				zap.Error(err),
			)
			outcome.PassedFlagErr = err
			return outcome, nil
		}
		outcome.PassedUpdated = true
	}

	s.logger.Info("Result recorded",
		zap.String("stud_id", studentID),
		zap.String("course_id", key.CourseID),
		zap.String("slot_date", key.SlotDate),
		zap.String("slot_hour", key.SlotHour),
		zap.String("mark", string(mark)),
		zap.Bool("passed", outcome.PassedUpdated),
	)
	return outcome, nil
}

// Overview classifies every selected student of a call: no slot row means the
// student never booked, a slot without a mark is a pending booking, a marked
// slot shows the result. The view is recomputed on every read.
func (s *ResultsService) Overview(ctx context.Context, call model.CallKey) ([]*model.StudentStatus, error) {
	rows, err := s.selected.OverviewRows(ctx, call)
	if err != nil {
		return nil, fmt.Errorf("get overview rows: %w", err)
	}

	statuses := make([]*model.StudentStatus, 0, len(rows))
	for _, row := range rows {
		status := &model.StudentStatus{
			StudentID: row.StudentID,
			Name:      row.Name,
			Surname:   row.Surname,
		}
		switch {
		case row.SlotDate == nil:
			status.Status = model.StatusMissing
		case row.Mark == nil:
			status.Status = model.StatusBooked
			status.SlotDate = row.SlotDate
			status.SlotHour = row.SlotHour
		default:
			status.Status = model.StatusResulted
			status.SlotDate = row.SlotDate
			status.SlotHour = row.SlotHour
			status.Mark = row.Mark
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// SelectableStudents lists the students a teacher may put on a call roster:
// enrolled in the course and not passed yet.
func (s *ResultsService) SelectableStudents(ctx context.Context, courseID string) ([]*model.Student, error) {
	return s.enrollments.SelectableStudents(ctx, courseID)
}
