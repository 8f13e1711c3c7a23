package invoice

import "context"

// InvoiceService defines business logic for tuition invoicing.
type InvoiceService interface {
	// GenerateInvoices aggregates billable sessions into one invoice per
	// student for the period, merging into existing unpaid invoices without
	// double counting. Paid invoices are left untouched.
	GenerateInvoices(ctx context.Context, req GenerateInvoicesRequest) ([]InvoiceResponse, error)

	GetInvoice(ctx context.Context, id string) (InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter InvoiceFilter) (ListInvoiceResponse, error)

	// UpdateInvoice edits discount/notes on an unpaid invoice with an
	// optimistic version check.
	UpdateInvoice(ctx context.Context, req UpdateInvoiceRequest) (InvoiceResponse, error)

	// MarkPaid finalizes invoices one by one and reports per-item results.
	MarkPaid(ctx context.Context, req MarkPaidRequest, paidBy string) ([]BulkResult, error)

	DeleteInvoice(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, req BulkDeleteRequest) ([]BulkResult, error)

	// GetOutstanding computes the debt carried forward from months strictly
	// before the period.
	GetOutstanding(ctx context.Context, studentID string, month, year int) (OutstandingResponse, error)

	GetSummary(ctx context.Context, month, year int) (InvoiceSummaryResponse, error)
}
