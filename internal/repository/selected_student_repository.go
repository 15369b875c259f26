package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"exam_scheduler/internal/model"
	"exam_scheduler/internal/repository/base"
)

type SelectedStudentRepository struct {
	*base.Repository
}

func NewSelectedStudentRepository(pool *pgxpool.Pool) *SelectedStudentRepository {
	return &SelectedStudentRepository{base.NewRepository(pool)}
}

// Insert records a student as selected for an exam call.
func (r *SelectedStudentRepository) Insert(ctx context.Context, sel *model.SelectedStudent) error {
	query := `
		INSERT INTO selected_students (stud_id, course_id, exam_date)
		VALUES ($1, $2, $3)
	`

	_, err := r.ExecAffected(ctx, query, sel.StudentID, sel.CourseID, sel.ExamDate)
	if err != nil {
		return fmt.Errorf("insert selected student: %w", err)
	}
	return nil
}

// OverviewRows left-joins the call's roster against the slot table: one row
// per selected student, slot columns null for students who never booked.
func (r *SelectedStudentRepository) OverviewRows(ctx context.Context, call model.CallKey) ([]*model.OverviewRow, error) {
	query := `
		SELECT sel.stud_id, st.name, st.surname, s.slot_date, s.slot_hour, s.mark
		FROM selected_students sel
		JOIN students st ON st.id = sel.stud_id
		LEFT JOIN slots s
		  ON s.stud_id = sel.stud_id
		 AND s.course_id = sel.course_id
		 AND s.exam_date = sel.exam_date
		WHERE sel.course_id = $1 AND sel.exam_date = $2
		ORDER BY st.surname, st.name
	`

	rows, err := r.Query(ctx, query, call.CourseID, call.ExamDate)
	if err != nil {
		return nil, fmt.Errorf("get overview rows: %w", err)
	}
	defer rows.Close()

	var out []*model.OverviewRow
	for rows.Next() {
		var row model.OverviewRow
		var mark *string
		err := rows.Scan(&row.StudentID, &row.Name, &row.Surname, &row.SlotDate, &row.SlotHour, &mark)
		if err != nil {
			return nil, fmt.Errorf("scan overview row: %w", err)
		}
		row.Mark = (*model.Mark)(mark)
		out = append(out, &row)
	}
	return out, rows.Err()
}
