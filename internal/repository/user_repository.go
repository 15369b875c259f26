package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"exam_scheduler/internal/model"
	"exam_scheduler/internal/repository/base"
)

type UserRepository struct {
	*base.Repository
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{base.NewRepository(pool)}
}

// GetStudent returns a student, or nil when the id is unknown.
func (r *UserRepository) GetStudent(ctx context.Context, id string) (*model.Student, error) {
	query := `
		SELECT id, name, surname
		FROM students
		WHERE id = $1
	`

	var st model.Student
	err := r.QueryRow(ctx, query, id).Scan(&st.ID, &st.Name, &st.Surname)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student: %w", err)
	}
	return &st, nil
}

// GetTeacher returns a teacher including the password hash, or nil when the
// id is unknown.
func (r *UserRepository) GetTeacher(ctx context.Context, id string) (*model.Teacher, error) {
	query := `
		SELECT id, name, surname, password
		FROM teachers
		WHERE id = $1
	`

	var tch model.Teacher
	err := r.QueryRow(ctx, query, id).Scan(&tch.ID, &tch.Name, &tch.Surname, &tch.PasswordHash)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	return &tch, nil
}
