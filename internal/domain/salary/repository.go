package salary

import "context"

type SalaryRepository interface {
	Create(ctx context.Context, s Salary) (Salary, error)
	GetByID(ctx context.Context, id string) (Salary, error)
	GetByTeacherPeriod(ctx context.Context, teacherID string, month, year int) (Salary, error)
	List(ctx context.Context, filter SalaryFilter) ([]Salary, error)
	// Replace overwrites the computed fields of an unpaid salary record.
	Replace(ctx context.Context, s Salary) (Salary, error)
	MarkPaid(ctx context.Context, id, paidBy string) (Salary, error)
	Delete(ctx context.Context, id string) error
}
