package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/classtrack/center-backend-go/internal/domain/student"
	"github.com/classtrack/center-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type studentRepository struct {
	db *database.DB
}

func NewStudentRepository(db *database.DB) student.StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, s student.Student) (student.Student, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	query := `
		INSERT INTO students (id, full_name, grade, school, parent_name, phone, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, full_name, grade, school, parent_name, phone, notes, created_at, updated_at
	`

	var created student.Student
	err := q.QueryRow(ctx, query,
		s.ID, s.FullName, s.Grade, s.School, s.ParentName, s.Phone, s.Notes,
	).Scan(
		&created.ID, &created.FullName, &created.Grade, &created.School,
		&created.ParentName, &created.Phone, &created.Notes,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return student.Student{}, fmt.Errorf("failed to create student: %w", err)
	}

	return created, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id string) (student.Student, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, grade, school, parent_name, phone, notes, created_at, updated_at
		FROM students
		WHERE id = $1 AND deleted_at IS NULL
	`

	var s student.Student
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.FullName, &s.Grade, &s.School,
		&s.ParentName, &s.Phone, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return student.Student{}, student.ErrStudentNotFound
		}
		return student.Student{}, fmt.Errorf("failed to get student: %w", err)
	}

	return s, nil
}

func (r *studentRepository) List(ctx context.Context, filter student.StudentFilter) ([]student.Student, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, grade, school, parent_name, phone, notes, created_at, updated_at
		FROM students
		WHERE deleted_at IS NULL
	`
	args := []interface{}{}
	argIdx := 1

	if filter.Grade != nil {
		query += fmt.Sprintf(" AND grade = $%d", argIdx)
		args = append(args, *filter.Grade)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		query += fmt.Sprintf(" AND (full_name ILIKE $%d OR parent_name ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	query += " ORDER BY full_name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []student.Student
	for rows.Next() {
		var s student.Student
		if err := rows.Scan(
			&s.ID, &s.FullName, &s.Grade, &s.School,
			&s.ParentName, &s.Phone, &s.Notes,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, s)
	}

	return students, rows.Err()
}

func (r *studentRepository) Update(ctx context.Context, req student.UpdateStudentRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := []string{}
	args := []interface{}{}
	argIdx := 1

	if req.FullName != nil {
		updates = append(updates, fmt.Sprintf("full_name = $%d", argIdx))
		args = append(args, *req.FullName)
		argIdx++
	}
	if req.Grade != nil {
		updates = append(updates, fmt.Sprintf("grade = $%d", argIdx))
		args = append(args, *req.Grade)
		argIdx++
	}
	if req.School != nil {
		updates = append(updates, fmt.Sprintf("school = $%d", argIdx))
		args = append(args, *req.School)
		argIdx++
	}
	if req.ParentName != nil {
		updates = append(updates, fmt.Sprintf("parent_name = $%d", argIdx))
		args = append(args, *req.ParentName)
		argIdx++
	}
	if req.Phone != nil {
		updates = append(updates, fmt.Sprintf("phone = $%d", argIdx))
		args = append(args, *req.Phone)
		argIdx++
	}
	if req.Notes != nil {
		updates = append(updates, fmt.Sprintf("notes = $%d", argIdx))
		args = append(args, *req.Notes)
		argIdx++
	}

	if len(updates) == 0 {
		return nil
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(
		"UPDATE students SET %s WHERE id = $%d AND deleted_at IS NULL",
		strings.Join(updates, ", "), argIdx,
	)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return student.ErrStudentNotFound
	}

	return nil
}

func (r *studentRepository) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		"UPDATE students SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return student.ErrStudentNotFound
	}

	return nil
}
