package postgresql

import (
	"context"
	"fmt"

	"github.com/classtrack/center-backend-go/internal/domain/finance"
	"github.com/classtrack/center-backend-go/internal/pkg/database"
)

type financeRepository struct {
	db *database.DB
}

func NewFinanceRepository(db *database.DB) finance.FinanceRepository {
	return &financeRepository{db: db}
}

// GetMonthlySummary collects the month's financial overview in one round
// trip. Net income only counts money that actually moved: collected
// tuition minus paid salaries minus expenses.
func (r *financeRepository) GetMonthlySummary(ctx context.Context, month, year int) (finance.MonthlySummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inv AS (
			SELECT COUNT(*) AS total,
				   COUNT(*) FILTER (WHERE status = 'paid') AS paid,
				   COUNT(*) FILTER (WHERE status = 'unpaid') AS unpaid,
				   COALESCE(SUM(final_amount), 0) AS invoiced,
				   COALESCE(SUM(final_amount) FILTER (WHERE status = 'paid'), 0) AS collected,
				   COALESCE(SUM(final_amount) FILTER (WHERE status = 'unpaid'), 0) AS outstanding
			FROM invoices
			WHERE period_month = $1 AND period_year = $2
		), sal AS (
			SELECT COUNT(*) AS total,
				   COALESCE(SUM(total_salary + total_travel_allowance), 0) AS amount,
				   COALESCE(SUM(total_salary + total_travel_allowance) FILTER (WHERE status = 'paid'), 0) AS paid_amount
			FROM salaries
			WHERE period_month = $1 AND period_year = $2
		), exp AS (
			SELECT COUNT(*) AS total,
				   COALESCE(SUM(amount), 0) AS amount
			FROM expenses
			WHERE period_month = $1 AND period_year = $2
		)
		SELECT inv.total, inv.paid, inv.unpaid, inv.invoiced, inv.collected, inv.outstanding,
			   sal.total, sal.amount, sal.paid_amount,
			   exp.total, exp.amount
		FROM inv, sal, exp
	`

	summary := finance.MonthlySummary{PeriodMonth: month, PeriodYear: year}
	err := q.QueryRow(ctx, query, month, year).Scan(
		&summary.InvoiceCount, &summary.PaidInvoices, &summary.UnpaidInvoices,
		&summary.InvoicedAmount, &summary.CollectedAmount, &summary.UnpaidAmount,
		&summary.SalaryCount, &summary.SalaryAmount, &summary.SalaryPaidAmount,
		&summary.ExpenseCount, &summary.ExpenseAmount,
	)
	if err != nil {
		return finance.MonthlySummary{}, fmt.Errorf("failed to get monthly summary: %w", err)
	}

	summary.NetIncome = summary.CollectedAmount.
		Sub(summary.SalaryPaidAmount).
		Sub(summary.ExpenseAmount)

	return summary, nil
}
