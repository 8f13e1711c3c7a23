package finance

import "context"

type FinanceService interface {
	GetMonthlySummary(ctx context.Context, month, year int) (MonthlySummary, error)
	// ExportMonthlySummary renders the summary for a range of months as an
	// XLSX workbook.
	ExportMonthlySummary(ctx context.Context, fromMonth, fromYear, toMonth, toYear int) ([]byte, error)
}
