package salary

import "context"

// SalaryService defines business logic for teacher pay statements.
type SalaryService interface {
	// GenerateSalaries aggregates the period's sessions into one statement
	// per teacher. Classes without a configured teacher rate are skipped;
	// paid statements are never regenerated.
	GenerateSalaries(ctx context.Context, req GenerateSalariesRequest) ([]SalaryResponse, error)

	GetSalary(ctx context.Context, id string) (SalaryResponse, error)
	ListSalaries(ctx context.Context, filter SalaryFilter) ([]SalaryResponse, error)
	MarkPaid(ctx context.Context, req MarkPaidRequest, paidBy string) ([]BulkResult, error)
	DeleteSalary(ctx context.Context, id string) error
}
