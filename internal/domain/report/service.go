package report

import "context"

// ReportService defines business logic for monthly progress reports.
type ReportService interface {
	// GenerateReports builds draft per-class stats from the period's
	// attendance sessions, one report per (student, class) pair, reusing
	// existing drafts. Approved reports are frozen and skipped.
	GenerateReports(ctx context.Context, req GenerateReportsRequest) ([]ReportResponse, error)

	// GetMergedReport collapses a student's per-class pieces for the period
	// into a single merged view.
	GetMergedReport(ctx context.Context, studentID string, month, year int) (ReportResponse, error)

	GetReport(ctx context.Context, id string) (ReportResponse, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]ReportResponse, error)
	UpdateComment(ctx context.Context, req UpdateCommentRequest) (ReportResponse, error)

	// Workflow: draft -> submitted -> approved | rejected (back to draft).
	Submit(ctx context.Context, req SubmitReportRequest) (ReportResponse, error)
	Approve(ctx context.Context, req ApproveReportRequest) (ReportResponse, error)
	Reject(ctx context.Context, req RejectReportRequest) (ReportResponse, error)
	ApproveBatch(ctx context.Context, req ApproveBatchRequest) ([]BulkResult, error)
}
