package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"exam_scheduler/internal/model"
	"exam_scheduler/internal/repository/base"
)

// SlotRepository persists exam slots. All occupancy mutations are single
// conditional updates keyed by the full slot key, so the database is the sole
// arbiter of who wins a booking race.
type SlotRepository struct {
	*base.Repository
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{base.NewRepository(pool)}
}

func scanSlot(row pgx.Row) (*model.Slot, error) {
	var slot model.Slot
	var mark *string
	err := row.Scan(
		&slot.CourseID,
		&slot.SlotDate,
		&slot.SlotHour,
		&slot.Duration,
		&slot.ExamDate,
		&slot.StudentID,
		&mark,
	)
	if err != nil {
		return nil, err
	}
	slot.Mark = (*model.Mark)(mark)
	return &slot, nil
}

// Insert creates an open slot.
func (r *SlotRepository) Insert(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO slots (course_id, slot_date, slot_hour, duration, exam_date, stud_id, mark)
		VALUES ($1, $2, $3, $4, $5, NULL, NULL)
	`

	_, err := r.ExecAffected(ctx, query,
		slot.CourseID, slot.SlotDate, slot.SlotHour, slot.Duration, slot.ExamDate)
	if err != nil {
		return fmt.Errorf("insert slot: %w", err)
	}
	return nil
}

// GetByKey returns the slot with the given key, or nil when it does not exist.
func (r *SlotRepository) GetByKey(ctx context.Context, key model.SlotKey) (*model.Slot, error) {
	query := `
		SELECT course_id, slot_date, slot_hour, duration, exam_date, stud_id, mark
		FROM slots
		WHERE course_id = $1 AND slot_date = $2 AND slot_hour = $3
	`

	slot, err := scanSlot(r.QueryRow(ctx, query, key.CourseID, key.SlotDate, key.SlotHour))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by key: %w", err)
	}
	return slot, nil
}

// OpenForStudent returns every open slot of a course the student has a
// non-passed enrollment in, ordered by date and hour.
func (r *SlotRepository) OpenForStudent(ctx context.Context, studentID string) ([]*model.Slot, error) {
	query := `
		SELECT s.course_id, s.slot_date, s.slot_hour, s.duration, s.exam_date, s.stud_id, s.mark
		FROM slots s
		JOIN enrollments e ON e.course_id = s.course_id
		WHERE e.stud_id = $1
		  AND e.passed = FALSE
		  AND s.stud_id IS NULL
		ORDER BY s.slot_date, s.slot_hour
	`

	rows, err := r.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("get open slots for student: %w", err)
	}
	defer rows.Close()

	var slots []*model.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// CallsWithStudent returns every (course, exam date) pair the student already
// has a slot row for, regardless of its state.
func (r *SlotRepository) CallsWithStudent(ctx context.Context, studentID string) ([]model.CallKey, error) {
	query := `
		SELECT DISTINCT course_id, exam_date
		FROM slots
		WHERE stud_id = $1
	`

	rows, err := r.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("get calls with student: %w", err)
	}
	defer rows.Close()

	var calls []model.CallKey
	for rows.Next() {
		var call model.CallKey
		if err := rows.Scan(&call.CourseID, &call.ExamDate); err != nil {
			return nil, fmt.Errorf("scan call key: %w", err)
		}
		calls = append(calls, call)
	}
	return calls, rows.Err()
}

// ForStudent returns the student's exam history: every slot they occupy or
// have a result for, with the course name attached.
func (r *SlotRepository) ForStudent(ctx context.Context, studentID string) ([]*model.StudentExam, error) {
	query := `
		SELECT s.course_id, c.name, s.slot_date, s.slot_hour, s.mark
		FROM slots s
		JOIN courses c ON c.id = s.course_id
		WHERE s.stud_id = $1
		ORDER BY s.slot_date, s.slot_hour
	`

	rows, err := r.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student exams: %w", err)
	}
	defer rows.Close()

	var exams []*model.StudentExam
	for rows.Next() {
		var exam model.StudentExam
		var mark *string
		err := rows.Scan(&exam.CourseID, &exam.CourseName, &exam.SlotDate, &exam.SlotHour, &mark)
		if err != nil {
			return nil, fmt.Errorf("scan student exam: %w", err)
		}
		exam.Mark = (*model.Mark)(mark)
		exams = append(exams, &exam)
	}
	return exams, rows.Err()
}

// HasCall reports whether any slot already exists for the call.
func (r *SlotRepository) HasCall(ctx context.Context, call model.CallKey) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM slots
			WHERE course_id = $1 AND exam_date = $2
		)
	`

	var exists bool
	err := r.QueryRow(ctx, query, call.CourseID, call.ExamDate).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check call exists: %w", err)
	}
	return exists, nil
}

// UpdateOccupant sets the slot's occupant to next only if the current
// occupant equals expected and no mark has been recorded. It reports whether
// the row was updated; false means the slot is missing or not in the expected
// state, and the caller decides which.
func (r *SlotRepository) UpdateOccupant(ctx context.Context, key model.SlotKey, expected, next *string) (bool, error) {
	query := `
		UPDATE slots
		SET stud_id = $4
		WHERE course_id = $1 AND slot_date = $2 AND slot_hour = $3
		  AND stud_id IS NOT DISTINCT FROM $5
		  AND mark IS NULL
	`

	affected, err := r.ExecAffected(ctx, query,
		key.CourseID, key.SlotDate, key.SlotHour, next, expected)
	if err != nil {
		return false, fmt.Errorf("update slot occupant: %w", err)
	}
	return affected > 0, nil
}

// SetMark records a mark only if the slot is still reserved by the given
// student and unmarked. It reports whether the row was updated.
func (r *SlotRepository) SetMark(ctx context.Context, key model.SlotKey, studentID string, mark model.Mark) (bool, error) {
	query := `
		UPDATE slots
		SET mark = $4
		WHERE course_id = $1 AND slot_date = $2 AND slot_hour = $3
		  AND stud_id = $5
		  AND mark IS NULL
	`

	affected, err := r.ExecAffected(ctx, query,
		key.CourseID, key.SlotDate, key.SlotHour, string(mark), studentID)
	if err != nil {
		return false, fmt.Errorf("set slot mark: %w", err)
	}
	return affected > 0, nil
}
