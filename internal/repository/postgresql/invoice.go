package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/classtrack/center-backend-go/internal/domain/invoice"
	"github.com/classtrack/center-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type invoiceRepository struct {
	db *database.DB
}

func NewInvoiceRepository(db *database.DB) invoice.InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `
	i.id, i.student_id, i.period_month, i.period_year, i.class_ids, i.lines,
	i.total_sessions, i.total_amount, i.discount, i.final_amount, i.status,
	i.paid_at, i.paid_by, i.bank_info, i.notes, i.version,
	i.created_at, i.updated_at, s.full_name
`

func (r *invoiceRepository) Create(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	if inv.Version == 0 {
		inv.Version = 1
	}

	linesJSON, err := json.Marshal(inv.Lines)
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("failed to marshal lines: %w", err)
	}

	query := `
		INSERT INTO invoices (
			id, student_id, period_month, period_year, class_ids, lines,
			total_sessions, total_amount, discount, final_amount, status, notes, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	var id string
	err = q.QueryRow(ctx, query,
		inv.ID, inv.StudentID, inv.PeriodMonth, inv.PeriodYear, inv.ClassIDs, linesJSON,
		inv.TotalSessions, inv.TotalAmount, inv.Discount, inv.FinalAmount,
		inv.Status, inv.Notes, inv.Version,
	).Scan(&id)
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("failed to create invoice: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *invoiceRepository) GetByID(ctx context.Context, id string) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM invoices i
		JOIN students s ON s.id = i.student_id
		WHERE i.id = $1
	`, invoiceColumns)

	inv, err := scanInvoice(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return invoice.Invoice{}, invoice.ErrInvoiceNotFound
		}
		return invoice.Invoice{}, fmt.Errorf("failed to get invoice: %w", err)
	}

	return inv, nil
}

func (r *invoiceRepository) GetByStudentPeriod(ctx context.Context, studentID string, month, year int) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM invoices i
		JOIN students s ON s.id = i.student_id
		WHERE i.student_id = $1 AND i.period_month = $2 AND i.period_year = $3
	`, invoiceColumns)

	inv, err := scanInvoice(q.QueryRow(ctx, query, studentID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return invoice.Invoice{}, invoice.ErrInvoiceNotFound
		}
		return invoice.Invoice{}, fmt.Errorf("failed to get invoice: %w", err)
	}

	return inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter invoice.InvoiceFilter) ([]invoice.Invoice, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.PeriodMonth != nil {
		where += fmt.Sprintf(" AND i.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		where += fmt.Sprintf(" AND i.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND i.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.StudentID != nil {
		where += fmt.Sprintf(" AND i.student_id = $%d", argIdx)
		args = append(args, *filter.StudentID)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM invoices i" + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM invoices i
		JOIN students s ON s.id = i.student_id
		%s
		ORDER BY i.period_year DESC, i.period_month DESC, s.full_name ASC
		LIMIT $%d OFFSET $%d
	`, invoiceColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []invoice.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}

	return invoices, total, rows.Err()
}

func (r *invoiceRepository) ListBefore(ctx context.Context, studentID string, month, year int) ([]invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM invoices i
		JOIN students s ON s.id = i.student_id
		WHERE i.student_id = $1
		  AND (i.period_year < $3 OR (i.period_year = $3 AND i.period_month < $2))
		ORDER BY i.period_year ASC, i.period_month ASC
	`, invoiceColumns)

	rows, err := q.Query(ctx, query, studentID, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list prior invoices: %w", err)
	}
	defer rows.Close()

	var invoices []invoice.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}

	return invoices, rows.Err()
}

func (r *invoiceRepository) Replace(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	linesJSON, err := json.Marshal(inv.Lines)
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("failed to marshal lines: %w", err)
	}

	query := `
		UPDATE invoices SET
			class_ids = $1, lines = $2, total_sessions = $3, total_amount = $4,
			discount = $5, final_amount = $6, notes = $7,
			version = version + 1, updated_at = NOW()
		WHERE id = $8 AND status = 'unpaid' AND version = $9
		RETURNING id
	`

	var id string
	err = q.QueryRow(ctx, query,
		inv.ClassIDs, linesJSON, inv.TotalSessions, inv.TotalAmount,
		inv.Discount, inv.FinalAmount, inv.Notes,
		inv.ID, inv.Version,
	).Scan(&id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return invoice.Invoice{}, r.replaceConflict(ctx, inv.ID)
		}
		return invoice.Invoice{}, fmt.Errorf("failed to replace invoice: %w", err)
	}

	return r.GetByID(ctx, id)
}

// replaceConflict names the reason a guarded update matched nothing.
func (r *invoiceRepository) replaceConflict(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var status string
	err := q.QueryRow(ctx, "SELECT status FROM invoices WHERE id = $1", id).Scan(&status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return invoice.ErrInvoiceNotFound
		}
		return fmt.Errorf("failed to check invoice: %w", err)
	}
	if status == string(invoice.InvoiceStatusPaid) {
		return invoice.ErrInvoiceAlreadyPaid
	}
	return invoice.ErrVersionConflict
}

func (r *invoiceRepository) MarkPaid(ctx context.Context, id, paidBy, bankInfo string) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invoices SET
			status = 'paid', paid_at = NOW(), paid_by = $1, bank_info = $2,
			version = version + 1, updated_at = NOW()
		WHERE id = $3 AND status = 'unpaid'
		RETURNING id
	`

	var updated string
	err := q.QueryRow(ctx, query, paidBy, bankInfo, id).Scan(&updated)
	if err != nil {
		if err == pgx.ErrNoRows {
			if conflictErr := r.replaceConflict(ctx, id); conflictErr != invoice.ErrVersionConflict {
				return invoice.Invoice{}, conflictErr
			}
			return invoice.Invoice{}, invoice.ErrInvoiceNotFound
		}
		return invoice.Invoice{}, fmt.Errorf("failed to mark invoice paid: %w", err)
	}

	return r.GetByID(ctx, updated)
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM invoices WHERE id = $1 AND status = 'unpaid'", id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var status string
		err := q.QueryRow(ctx, "SELECT status FROM invoices WHERE id = $1", id).Scan(&status)
		if err != nil {
			if err == pgx.ErrNoRows {
				return invoice.ErrInvoiceNotFound
			}
			return fmt.Errorf("failed to check invoice: %w", err)
		}
		return invoice.ErrCannotDeletePaidInvoice
	}

	return nil
}

func (r *invoiceRepository) GetSummary(ctx context.Context, month, year int) (invoice.InvoiceSummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'paid'),
			COUNT(*) FILTER (WHERE status = 'unpaid'),
			COALESCE(SUM(final_amount), 0),
			COALESCE(SUM(final_amount) FILTER (WHERE status = 'paid'), 0),
			COALESCE(SUM(final_amount) FILTER (WHERE status = 'unpaid'), 0)
		FROM invoices
		WHERE period_month = $1 AND period_year = $2
	`

	summary := invoice.InvoiceSummaryResponse{PeriodMonth: month, PeriodYear: year}
	err := q.QueryRow(ctx, query, month, year).Scan(
		&summary.InvoiceCount, &summary.PaidCount, &summary.UnpaidCount,
		&summary.InvoicedAmount, &summary.CollectedAmount, &summary.UnpaidAmount,
	)
	if err != nil {
		return invoice.InvoiceSummaryResponse{}, fmt.Errorf("failed to get invoice summary: %w", err)
	}

	return summary, nil
}

func scanInvoice(row pgx.Row) (invoice.Invoice, error) {
	var inv invoice.Invoice
	var linesJSON []byte
	err := row.Scan(
		&inv.ID, &inv.StudentID, &inv.PeriodMonth, &inv.PeriodYear, &inv.ClassIDs, &linesJSON,
		&inv.TotalSessions, &inv.TotalAmount, &inv.Discount, &inv.FinalAmount, &inv.Status,
		&inv.PaidAt, &inv.PaidBy, &inv.BankInfo, &inv.Notes, &inv.Version,
		&inv.CreatedAt, &inv.UpdatedAt, &inv.StudentName,
	)
	if err != nil {
		return invoice.Invoice{}, err
	}
	if err := json.Unmarshal(linesJSON, &inv.Lines); err != nil {
		return invoice.Invoice{}, fmt.Errorf("failed to unmarshal lines: %w", err)
	}
	return inv, nil
}
