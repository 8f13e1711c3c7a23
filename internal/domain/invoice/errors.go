package invoice

import "errors"

var (
	ErrInvoiceNotFound         = errors.New("invoice not found")
	ErrInvoiceAlreadyPaid      = errors.New("invoice already paid, cannot modify")
	ErrCannotDeletePaidInvoice = errors.New("cannot delete paid invoice")
	ErrVersionConflict         = errors.New("invoice was modified concurrently, reload and retry")
	ErrMissingPrice            = errors.New("session has no resolvable price")
)
