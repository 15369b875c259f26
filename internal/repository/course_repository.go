package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"exam_scheduler/internal/model"
	"exam_scheduler/internal/repository/base"
)

type CourseRepository struct {
	*base.Repository
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{base.NewRepository(pool)}
}

// GetByID returns a course, or nil when it does not exist.
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*model.Course, error) {
	query := `
		SELECT id, name, teacher_id
		FROM courses
		WHERE id = $1
	`

	var course model.Course
	err := r.QueryRow(ctx, query, id).Scan(&course.ID, &course.Name, &course.TeacherID)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get course by id: %w", err)
	}
	return &course, nil
}

// GetByTeacherID returns the course owned by a teacher, or nil when the
// teacher owns none. Each teacher owns at most one course.
func (r *CourseRepository) GetByTeacherID(ctx context.Context, teacherID string) (*model.Course, error) {
	query := `
		SELECT id, name, teacher_id
		FROM courses
		WHERE teacher_id = $1
	`

	var course model.Course
	err := r.QueryRow(ctx, query, teacherID).Scan(&course.ID, &course.Name, &course.TeacherID)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get course by teacher: %w", err)
	}
	return &course, nil
}
