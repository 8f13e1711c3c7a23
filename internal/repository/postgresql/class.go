package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/classtrack/center-backend-go/internal/domain/class"
	"github.com/classtrack/center-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type classRepository struct {
	db *database.DB
}

func NewClassRepository(db *database.DB) class.ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(ctx context.Context, c class.Class) (class.Class, error) {
	q := GetQuerier(ctx, r.db)

	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	query := `
		INSERT INTO classes (id, name, grade, subject, session_price, discount, teacher_id, teacher_rate, travel_allowance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, name, grade, subject, session_price, discount, teacher_id, teacher_rate, travel_allowance, created_at, updated_at
	`

	var created class.Class
	err := q.QueryRow(ctx, query,
		c.ID, c.Name, c.Grade, c.Subject, c.SessionPrice, c.Discount,
		c.TeacherID, c.TeacherRate, c.TravelAllowance,
	).Scan(
		&created.ID, &created.Name, &created.Grade, &created.Subject,
		&created.SessionPrice, &created.Discount, &created.TeacherID,
		&created.TeacherRate, &created.TravelAllowance,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return class.Class{}, fmt.Errorf("failed to create class: %w", err)
	}

	return created, nil
}

func (r *classRepository) GetByID(ctx context.Context, id string) (class.Class, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.name, c.grade, c.subject, c.session_price, c.discount,
			   c.teacher_id, c.teacher_rate, c.travel_allowance,
			   c.created_at, c.updated_at, t.full_name
		FROM classes c
		LEFT JOIN teachers t ON t.id = c.teacher_id
		WHERE c.id = $1 AND c.deleted_at IS NULL
	`

	var c class.Class
	err := q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Grade, &c.Subject, &c.SessionPrice, &c.Discount,
		&c.TeacherID, &c.TeacherRate, &c.TravelAllowance,
		&c.CreatedAt, &c.UpdatedAt, &c.TeacherName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return class.Class{}, class.ErrClassNotFound
		}
		return class.Class{}, fmt.Errorf("failed to get class: %w", err)
	}

	enrollments, err := r.loadEnrollments(ctx, []string{c.ID})
	if err != nil {
		return class.Class{}, err
	}
	c.Enrollments = enrollments[c.ID]

	return c, nil
}

func (r *classRepository) List(ctx context.Context) ([]class.Class, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.name, c.grade, c.subject, c.session_price, c.discount,
			   c.teacher_id, c.teacher_rate, c.travel_allowance,
			   c.created_at, c.updated_at, t.full_name
		FROM classes c
		LEFT JOIN teachers t ON t.id = c.teacher_id
		WHERE c.deleted_at IS NULL
		ORDER BY c.grade ASC, c.name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	defer rows.Close()

	var classes []class.Class
	var ids []string
	for rows.Next() {
		var c class.Class
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Grade, &c.Subject, &c.SessionPrice, &c.Discount,
			&c.TeacherID, &c.TeacherRate, &c.TravelAllowance,
			&c.CreatedAt, &c.UpdatedAt, &c.TeacherName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan class: %w", err)
		}
		classes = append(classes, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	enrollments, err := r.loadEnrollments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range classes {
		classes[i].Enrollments = enrollments[classes[i].ID]
	}

	return classes, nil
}

func (r *classRepository) loadEnrollments(ctx context.Context, classIDs []string) (map[string][]class.Enrollment, error) {
	if len(classIDs) == 0 {
		return map[string][]class.Enrollment{}, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.class_id, e.student_id, e.enrolled_at, s.full_name
		FROM class_enrollments e
		JOIN students s ON s.id = e.student_id
		WHERE e.class_id = ANY($1) AND s.deleted_at IS NULL
		ORDER BY e.enrolled_at ASC, s.full_name ASC
	`

	rows, err := q.Query(ctx, query, classIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load enrollments: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]class.Enrollment)
	for rows.Next() {
		var classID string
		var e class.Enrollment
		if err := rows.Scan(&classID, &e.StudentID, &e.EnrolledAt, &e.StudentName); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment: %w", err)
		}
		result[classID] = append(result[classID], e)
	}

	return result, rows.Err()
}

func (r *classRepository) Update(ctx context.Context, req class.UpdateClassRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := []string{}
	args := []interface{}{}
	argIdx := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Grade != nil {
		updates = append(updates, fmt.Sprintf("grade = $%d", argIdx))
		args = append(args, *req.Grade)
		argIdx++
	}
	if req.Subject != nil {
		updates = append(updates, fmt.Sprintf("subject = $%d", argIdx))
		args = append(args, *req.Subject)
		argIdx++
	}
	if req.SessionPrice != nil {
		updates = append(updates, fmt.Sprintf("session_price = $%d", argIdx))
		args = append(args, *req.SessionPrice)
		argIdx++
	}
	if req.Discount != nil {
		updates = append(updates, fmt.Sprintf("discount = $%d", argIdx))
		args = append(args, *req.Discount)
		argIdx++
	}
	if req.TeacherID != nil {
		updates = append(updates, fmt.Sprintf("teacher_id = $%d", argIdx))
		args = append(args, *req.TeacherID)
		argIdx++
	}
	if req.TeacherRate != nil {
		updates = append(updates, fmt.Sprintf("teacher_rate = $%d", argIdx))
		args = append(args, *req.TeacherRate)
		argIdx++
	}
	if req.TravelAllowance != nil {
		updates = append(updates, fmt.Sprintf("travel_allowance = $%d", argIdx))
		args = append(args, *req.TravelAllowance)
		argIdx++
	}

	if len(updates) == 0 {
		return nil
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(
		"UPDATE classes SET %s WHERE id = $%d AND deleted_at IS NULL",
		strings.Join(updates, ", "), argIdx,
	)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return class.ErrClassNotFound
	}

	return nil
}

func (r *classRepository) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		"UPDATE classes SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL",
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return class.ErrClassNotFound
	}

	return nil
}

func (r *classRepository) EnrollStudent(ctx context.Context, classID string, e class.Enrollment) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		"INSERT INTO class_enrollments (class_id, student_id, enrolled_at) VALUES ($1, $2, $3)",
		classID, e.StudentID, e.EnrolledAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "class_enrollments_pkey") {
			return class.ErrStudentAlreadyEnrolled
		}
		return fmt.Errorf("failed to enroll student: %w", err)
	}

	return nil
}

func (r *classRepository) UnenrollStudent(ctx context.Context, classID, studentID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		"DELETE FROM class_enrollments WHERE class_id = $1 AND student_id = $2",
		classID, studentID,
	)
	if err != nil {
		return fmt.Errorf("failed to unenroll student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return class.ErrStudentNotEnrolled
	}

	return nil
}
