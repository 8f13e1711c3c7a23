package invoice

import "context"

type InvoiceRepository interface {
	Create(ctx context.Context, inv Invoice) (Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	GetByStudentPeriod(ctx context.Context, studentID string, month, year int) (Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]Invoice, int64, error)
	// ListBefore returns all invoices for the student whose period is
	// strictly before (month, year), oldest first. Debt carry-forward needs
	// paid invoices too: a month covered by any persisted invoice must not
	// be re-estimated from sessions.
	ListBefore(ctx context.Context, studentID string, month, year int) ([]Invoice, error)

	// Replace overwrites the mutable fields of an unpaid invoice, guarded by
	// an optimistic version check. Returns ErrVersionConflict when the stored
	// version differs from inv.Version, ErrInvoiceAlreadyPaid when the stored
	// record is paid.
	Replace(ctx context.Context, inv Invoice) (Invoice, error)

	// MarkPaid freezes the invoice: stamps paid_at/paid_by/bank_info and
	// flips the status. Fails with ErrInvoiceAlreadyPaid when already paid.
	MarkPaid(ctx context.Context, id, paidBy, bankInfo string) (Invoice, error)

	// Delete removes an unpaid invoice; paid invoices return
	// ErrCannotDeletePaidInvoice.
	Delete(ctx context.Context, id string) error

	GetSummary(ctx context.Context, month, year int) (InvoiceSummaryResponse, error)
}
