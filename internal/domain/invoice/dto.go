package invoice

import (
	"github.com/classtrack/center-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GenerateInvoicesRequest struct {
	PeriodMonth int      `json:"period_month"`
	PeriodYear  int      `json:"period_year"`
	StudentIDs  []string `json:"student_ids,omitempty"` // Empty = all students with billable sessions
}

func (r *GenerateInvoicesRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.PeriodMonth, r.PeriodYear) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "month must be 1-12 and year 2020 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateInvoiceRequest struct {
	ID       string
	Version  int              `json:"version"`
	Discount *decimal.Decimal `json:"discount,omitempty"`
	Notes    *string          `json:"notes,omitempty"`
}

func (r *UpdateInvoiceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Version <= 0 {
		errs = append(errs, validator.ValidationError{Field: "version", Message: "is required"})
	}
	if r.Discount != nil && r.Discount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "discount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkPaidRequest struct {
	InvoiceIDs []string `json:"invoice_ids"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.InvoiceIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "invoice_ids", Message: "at least one invoice is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkDeleteRequest struct {
	InvoiceIDs []string `json:"invoice_ids"`
}

// BulkResult reports the outcome for a single record in a bulk operation.
// Bulk writes are not transactional across records; callers get one entry
// per requested id instead of a single pass/fail flag.
type BulkResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type InvoiceResponse struct {
	ID            string          `json:"id"`
	StudentID     string          `json:"student_id"`
	StudentName   string          `json:"student_name,omitempty"`
	PeriodMonth   int             `json:"period_month"`
	PeriodYear    int             `json:"period_year"`
	ClassIDs      []string        `json:"class_ids"`
	Lines         []Line          `json:"lines"`
	TotalSessions int             `json:"total_sessions"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Discount      decimal.Decimal `json:"discount"`
	FinalAmount   decimal.Decimal `json:"final_amount"`
	Status        string          `json:"status"`
	PaidAt        *string         `json:"paid_at,omitempty"`
	PaidBy        *string         `json:"paid_by,omitempty"`
	BankInfo      *string         `json:"bank_info,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	Version       int             `json:"version"`
}

type InvoiceFilter struct {
	PeriodMonth *int
	PeriodYear  *int
	Status      *string
	StudentID   *string
	Page        int
	Limit       int
}

type ListInvoiceResponse struct {
	Data       []InvoiceResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

// OutstandingResponse lists a student's unpaid balance from months strictly
// before the requested period, oldest first.
type OutstandingResponse struct {
	StudentID   string          `json:"student_id"`
	PeriodMonth int             `json:"period_month"`
	PeriodYear  int             `json:"period_year"`
	Entries     []DebtEntry     `json:"entries"`
	Total       decimal.Decimal `json:"total"`
}

type InvoiceSummaryResponse struct {
	PeriodMonth     int             `json:"period_month"`
	PeriodYear      int             `json:"period_year"`
	InvoiceCount    int             `json:"invoice_count"`
	PaidCount       int             `json:"paid_count"`
	UnpaidCount     int             `json:"unpaid_count"`
	InvoicedAmount  decimal.Decimal `json:"invoiced_amount"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
	UnpaidAmount    decimal.Decimal `json:"unpaid_amount"`
}
