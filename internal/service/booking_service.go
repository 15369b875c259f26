package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"exam_scheduler/internal/model"
)

// BookingService is the student-facing side of the slot lifecycle: the
// availability filter and the Open <-> Reserved transitions.
type BookingService struct {
	slots  SlotStore
	logger *zap.Logger
}

func NewBookingService(slots SlotStore, logger *zap.Logger) *BookingService {
	return &BookingService{slots: slots, logger: logger}
}

// AvailableSlots computes the slots a student may still book: every open slot
// of a course they are enrolled in and have not passed, minus every call the
// student already has any slot row for. A student keeps at most one
// relationship with a call; once they booked, failed, withdrew or were absent,
// no other slot of that call is bookable for them. An empty result is a valid
// outcome.
func (s *BookingService) AvailableSlots(ctx context.Context, studentID string) ([]*model.Slot, error) {
	open, err := s.slots.OpenForStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get open slots: %w", err)
	}
	taken, err := s.slots.CallsWithStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student calls: %w", err)
	}

	touched := make(map[model.CallKey]struct{}, len(taken))
	for _, call := range taken {
		touched[call] = struct{}{}
	}

	available := make([]*model.Slot, 0, len(open))
	for _, slot := range open {
		if _, ok := touched[slot.Call()]; ok {
			continue
		}
		available = append(available, slot)
	}
	return available, nil
}

// Book reserves an open slot for the student. The write is a single
// conditional update keyed on the slot being unoccupied, so of two racing
// students exactly one wins; the loser gets ErrSlotUnavailable.
func (s *BookingService) Book(ctx context.Context, studentID string, key model.SlotKey) error {
	ok, err := s.slots.UpdateOccupant(ctx, key, nil, &studentID)
	if err != nil {
		return fmt.Errorf("book slot: %w", err)
	}
	if !ok {
		slot, err := s.slots.GetByKey(ctx, key)
		if err != nil {
			return fmt.Errorf("get slot: %w", err)
		}
		if slot == nil {
			return ErrSlotNotFound
		}
		return ErrSlotUnavailable
	}

	s.logger.Info("Slot booked",
		zap.String("stud_id", studentID),
		zap.String("course_id", key.CourseID),
		zap.String("slot_date", key.SlotDate),
		zap.String("slot_hour", key.SlotHour),
	)
	return nil
}

// Cancel releases a reserved slot back to open. Only a reserved slot with no
// recorded mark may be cancelled; a resulted slot is terminal. The release is
// itself conditional on the occupant observed, so a result recorded in
// between makes the cancel fail instead of clobbering it.
func (s *BookingService) Cancel(ctx context.Context, key model.SlotKey) error {
	slot, err := s.slots.GetByKey(ctx, key)
	if err != nil {
		return fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return ErrSlotNotFound
	}
	if slot.State() != model.SlotStateReserved {
		return ErrInvalidStateTransition
	}

	ok, err := s.slots.UpdateOccupant(ctx, key, slot.StudentID, nil)
	if err != nil {
		return fmt.Errorf("cancel slot: %w", err)
	}
	if !ok {
		return ErrInvalidStateTransition
	}

	s.logger.Info("Slot booking cancelled",
		zap.String("stud_id", *slot.StudentID),
		zap.String("course_id", key.CourseID),
		zap.String("slot_date", key.SlotDate),
		zap.String("slot_hour", key.SlotHour),
	)
	return nil
}
