package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"exam_scheduler/internal/model"
	"exam_scheduler/internal/repository/base"
)

type EnrollmentRepository struct {
	*base.Repository
}

func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{base.NewRepository(pool)}
}

// SetPassed flips the passed flag to true. The WHERE clause keeps the flip a
// one-way, once-only transition; updating an already passed enrollment is a
// no-op, not an error.
func (r *EnrollmentRepository) SetPassed(ctx context.Context, courseID, studentID string) error {
	query := `
		UPDATE enrollments
		SET passed = TRUE
		WHERE course_id = $1 AND stud_id = $2 AND passed = FALSE
	`

	_, err := r.ExecAffected(ctx, query, courseID, studentID)
	if err != nil {
		return fmt.Errorf("set enrollment passed: %w", err)
	}
	return nil
}

// SelectableStudents returns the students enrolled in the course who have not
// passed it yet, the pool a teacher selects an exam roster from.
func (r *EnrollmentRepository) SelectableStudents(ctx context.Context, courseID string) ([]*model.Student, error) {
	query := `
		SELECT st.id, st.name, st.surname
		FROM enrollments e
		JOIN students st ON st.id = e.stud_id
		WHERE e.course_id = $1 AND e.passed = FALSE
		ORDER BY st.surname, st.name
	`

	rows, err := r.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("get selectable students: %w", err)
	}
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		var st model.Student
		if err := rows.Scan(&st.ID, &st.Name, &st.Surname); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, &st)
	}
	return students, rows.Err()
}
