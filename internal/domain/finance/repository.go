package finance

import "context"

type FinanceRepository interface {
	GetMonthlySummary(ctx context.Context, month, year int) (MonthlySummary, error)
}
