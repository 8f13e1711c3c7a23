package report

import "context"

type ReportRepository interface {
	Create(ctx context.Context, r Report) (Report, error)
	GetByID(ctx context.Context, id string) (Report, error)
	// ListByStudentPeriod returns every per-class piece stored for the
	// student in the period; callers merge the pieces into one view.
	ListByStudentPeriod(ctx context.Context, studentID string, month, year int) ([]Report, error)
	List(ctx context.Context, filter ReportFilter) ([]Report, error)
	Replace(ctx context.Context, r Report) (Report, error)
	Delete(ctx context.Context, id string) error
}
