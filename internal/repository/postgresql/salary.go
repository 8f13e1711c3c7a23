package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/classtrack/center-backend-go/internal/domain/salary"
	"github.com/classtrack/center-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryColumns = `
	sa.id, sa.teacher_id, sa.period_month, sa.period_year, sa.breakdown,
	sa.total_sessions, sa.total_salary, sa.total_travel_allowance, sa.duration_minutes,
	sa.status, sa.paid_at, sa.paid_by, sa.created_at, sa.updated_at, t.full_name
`

func (r *salaryRepository) Create(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	breakdownJSON, err := json.Marshal(s.Breakdown)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to marshal breakdown: %w", err)
	}

	query := `
		INSERT INTO salaries (
			id, teacher_id, period_month, period_year, breakdown,
			total_sessions, total_salary, total_travel_allowance, duration_minutes, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id string
	err = q.QueryRow(ctx, query,
		s.ID, s.TeacherID, s.PeriodMonth, s.PeriodYear, breakdownJSON,
		s.TotalSessions, s.TotalSalary, s.TotalTravelAllowance, s.DurationMinutes, s.Status,
	).Scan(&id)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to create salary record: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *salaryRepository) GetByID(ctx context.Context, id string) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM salaries sa
		JOIN teachers t ON t.id = sa.teacher_id
		WHERE sa.id = $1
	`, salaryColumns)

	s, err := scanSalary(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	return s, nil
}

func (r *salaryRepository) GetByTeacherPeriod(ctx context.Context, teacherID string, month, year int) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM salaries sa
		JOIN teachers t ON t.id = sa.teacher_id
		WHERE sa.teacher_id = $1 AND sa.period_month = $2 AND sa.period_year = $3
	`, salaryColumns)

	s, err := scanSalary(q.QueryRow(ctx, query, teacherID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	return s, nil
}

func (r *salaryRepository) List(ctx context.Context, filter salary.SalaryFilter) ([]salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM salaries sa
		JOIN teachers t ON t.id = sa.teacher_id
		WHERE 1=1
	`, salaryColumns)
	args := []interface{}{}
	argIdx := 1

	if filter.PeriodMonth != nil {
		query += fmt.Sprintf(" AND sa.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		query += fmt.Sprintf(" AND sa.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND sa.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.TeacherID != nil {
		query += fmt.Sprintf(" AND sa.teacher_id = $%d", argIdx)
		args = append(args, *filter.TeacherID)
		argIdx++
	}

	query += " ORDER BY sa.period_year DESC, sa.period_month DESC, t.full_name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var salaries []salary.Salary
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary record: %w", err)
		}
		salaries = append(salaries, s)
	}

	return salaries, rows.Err()
}

func (r *salaryRepository) Replace(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	breakdownJSON, err := json.Marshal(s.Breakdown)
	if err != nil {
		return salary.Salary{}, fmt.Errorf("failed to marshal breakdown: %w", err)
	}

	query := `
		UPDATE salaries SET
			breakdown = $1, total_sessions = $2, total_salary = $3,
			total_travel_allowance = $4, duration_minutes = $5, updated_at = NOW()
		WHERE id = $6 AND status = 'unpaid'
		RETURNING id
	`

	var id string
	err = q.QueryRow(ctx, query,
		breakdownJSON, s.TotalSessions, s.TotalSalary,
		s.TotalTravelAllowance, s.DurationMinutes, s.ID,
	).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Salary{}, r.paidOrMissing(ctx, s.ID, salary.ErrSalaryAlreadyPaid)
		}
		return salary.Salary{}, fmt.Errorf("failed to replace salary record: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *salaryRepository) MarkPaid(ctx context.Context, id, paidBy string) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salaries SET
			status = 'paid', paid_at = NOW(), paid_by = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'unpaid'
		RETURNING id
	`

	var updated string
	err := q.QueryRow(ctx, query, paidBy, id).Scan(&updated)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Salary{}, r.paidOrMissing(ctx, id, salary.ErrSalaryAlreadyPaid)
		}
		return salary.Salary{}, fmt.Errorf("failed to mark salary paid: %w", err)
	}

	return r.GetByID(ctx, updated)
}

func (r *salaryRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM salaries WHERE id = $1 AND status = 'unpaid'", id)
	if err != nil {
		return fmt.Errorf("failed to delete salary record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.paidOrMissing(ctx, id, salary.ErrCannotDeletePaidSalary)
	}

	return nil
}

// paidOrMissing disambiguates a zero-row guarded write on salaries.
func (r *salaryRepository) paidOrMissing(ctx context.Context, id string, paidErr error) error {
	q := GetQuerier(ctx, r.db)

	var status string
	err := q.QueryRow(ctx, "SELECT status FROM salaries WHERE id = $1", id).Scan(&status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.ErrSalaryNotFound
		}
		return fmt.Errorf("failed to check salary record: %w", err)
	}
	return paidErr
}

func scanSalary(row pgx.Row) (salary.Salary, error) {
	var s salary.Salary
	var breakdownJSON []byte
	err := row.Scan(
		&s.ID, &s.TeacherID, &s.PeriodMonth, &s.PeriodYear, &breakdownJSON,
		&s.TotalSessions, &s.TotalSalary, &s.TotalTravelAllowance, &s.DurationMinutes,
		&s.Status, &s.PaidAt, &s.PaidBy, &s.CreatedAt, &s.UpdatedAt, &s.TeacherName,
	)
	if err != nil {
		return salary.Salary{}, err
	}
	if err := json.Unmarshal(breakdownJSON, &s.Breakdown); err != nil {
		return salary.Salary{}, fmt.Errorf("failed to unmarshal breakdown: %w", err)
	}
	return s, nil
}
