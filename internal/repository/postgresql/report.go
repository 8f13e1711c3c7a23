package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/classtrack/center-backend-go/internal/domain/report"
	"github.com/classtrack/center-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepository{db: db}
}

const reportColumns = `
	r.id, r.student_id, r.period_month, r.period_year, r.class_ids, r.class_names,
	r.stats, r.comment, r.status, r.submitted_at, r.submitted_by,
	r.approved_at, r.approved_by, r.rejection_reason,
	r.created_at, r.updated_at, s.full_name
`

func (r *reportRepository) Create(ctx context.Context, rec report.Report) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	statsJSON, err := json.Marshal(rec.Stats)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to marshal stats: %w", err)
	}

	query := `
		INSERT INTO reports (
			id, student_id, period_month, period_year, class_ids, class_names,
			stats, comment, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id string
	err = q.QueryRow(ctx, query,
		rec.ID, rec.StudentID, rec.PeriodMonth, rec.PeriodYear,
		rec.ClassIDs, rec.ClassNames, statsJSON, rec.Comment, rec.Status,
	).Scan(&id)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to create report: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM reports r
		JOIN students s ON s.id = r.student_id
		WHERE r.id = $1
	`, reportColumns)

	rec, err := scanReport(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return report.Report{}, report.ErrReportNotFound
		}
		return report.Report{}, fmt.Errorf("failed to get report: %w", err)
	}

	return rec, nil
}

func (r *reportRepository) ListByStudentPeriod(ctx context.Context, studentID string, month, year int) ([]report.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM reports r
		JOIN students s ON s.id = r.student_id
		WHERE r.student_id = $1 AND r.period_month = $2 AND r.period_year = $3
		ORDER BY r.created_at ASC
	`, reportColumns)

	rows, err := q.Query(ctx, query, studentID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	return collectReports(rows)
}

func (r *reportRepository) List(ctx context.Context, filter report.ReportFilter) ([]report.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM reports r
		JOIN students s ON s.id = r.student_id
		WHERE 1=1
	`, reportColumns)
	args := []interface{}{}
	argIdx := 1

	if filter.PeriodMonth != nil {
		query += fmt.Sprintf(" AND r.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		query += fmt.Sprintf(" AND r.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND r.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StudentID != nil {
		query += fmt.Sprintf(" AND r.student_id = $%d", argIdx)
		args = append(args, *filter.StudentID)
		argIdx++
	}

	query += " ORDER BY r.period_year DESC, r.period_month DESC, s.full_name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	return collectReports(rows)
}

func (r *reportRepository) Replace(ctx context.Context, rec report.Report) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	statsJSON, err := json.Marshal(rec.Stats)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to marshal stats: %w", err)
	}

	query := `
		UPDATE reports SET
			class_ids = $1, class_names = $2, stats = $3, comment = $4, status = $5,
			submitted_at = $6, submitted_by = $7, approved_at = $8, approved_by = $9,
			rejection_reason = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING id
	`

	var id string
	err = q.QueryRow(ctx, query,
		rec.ClassIDs, rec.ClassNames, statsJSON, rec.Comment, rec.Status,
		rec.SubmittedAt, rec.SubmittedBy, rec.ApprovedAt, rec.ApprovedBy,
		rec.RejectionReason, rec.ID,
	).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return report.Report{}, report.ErrReportNotFound
		}
		return report.Report{}, fmt.Errorf("failed to replace report: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *reportRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM reports WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return report.ErrReportNotFound
	}

	return nil
}

func collectReports(rows pgx.Rows) ([]report.Report, error) {
	var reports []report.Report
	for rows.Next() {
		rec, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, rec)
	}
	return reports, rows.Err()
}

func scanReport(row pgx.Row) (report.Report, error) {
	var rec report.Report
	var statsJSON []byte
	err := row.Scan(
		&rec.ID, &rec.StudentID, &rec.PeriodMonth, &rec.PeriodYear, &rec.ClassIDs, &rec.ClassNames,
		&statsJSON, &rec.Comment, &rec.Status, &rec.SubmittedAt, &rec.SubmittedBy,
		&rec.ApprovedAt, &rec.ApprovedBy, &rec.RejectionReason,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.StudentName,
	)
	if err != nil {
		return report.Report{}, err
	}
	if err := json.Unmarshal(statsJSON, &rec.Stats); err != nil {
		return report.Report{}, fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	return rec, nil
}
