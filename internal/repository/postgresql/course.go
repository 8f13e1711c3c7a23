package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/classtrack/center-backend-go/internal/domain/class"
	"github.com/classtrack/center-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type courseRepository struct {
	db *database.DB
}

func NewCourseRepository(db *database.DB) class.CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, c class.Course) (class.Course, error) {
	q := GetQuerier(ctx, r.db)

	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	query := `
		INSERT INTO courses (id, grade, subject, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, grade, subject, price, created_at, updated_at
	`

	var created class.Course
	err := q.QueryRow(ctx, query, c.ID, c.Grade, c.Subject, c.Price).Scan(
		&created.ID, &created.Grade, &created.Subject, &created.Price,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_courses_grade_subject") {
			return class.Course{}, class.ErrCourseAlreadyExists
		}
		return class.Course{}, fmt.Errorf("failed to create course: %w", err)
	}

	return created, nil
}

func (r *courseRepository) List(ctx context.Context) ([]class.Course, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, grade, subject, price, created_at, updated_at
		FROM courses
		ORDER BY grade ASC, subject ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	var courses []class.Course
	for rows.Next() {
		var c class.Course
		if err := rows.Scan(&c.ID, &c.Grade, &c.Subject, &c.Price, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, c)
	}

	return courses, rows.Err()
}

func (r *courseRepository) Update(ctx context.Context, req class.UpdateCourseRequest) error {
	q := GetQuerier(ctx, r.db)

	if req.Price == nil {
		return nil
	}

	tag, err := q.Exec(ctx,
		"UPDATE courses SET price = $1, updated_at = NOW() WHERE id = $2",
		*req.Price, req.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return class.ErrCourseNotFound
	}

	return nil
}

func (r *courseRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM courses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return class.ErrCourseNotFound
	}

	return nil
}
