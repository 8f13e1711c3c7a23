package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus enum
type InvoiceStatus string

const (
	InvoiceStatusUnpaid InvoiceStatus = "unpaid"
	InvoiceStatusPaid   InvoiceStatus = "paid"
)

// Line is one billed session within an invoice. Lines are the unit of
// de-duplication when an invoice is regenerated: two lines are the same
// when they share (date, class).
type Line struct {
	SessionID string          `json:"session_id"`
	ClassID   string          `json:"class_id"`
	Date      time.Time       `json:"date"`
	Price     decimal.Decimal `json:"price"`
}

// Invoice is a monthly tuition statement for one student, aggregated from
// attendance sessions. Once Status is paid the record is immutable: lines,
// amounts and discount are frozen, and later sessions for the same period
// never touch it.
type Invoice struct {
	ID            string
	StudentID     string
	PeriodMonth   int
	PeriodYear    int
	ClassIDs      []string
	Lines         []Line
	TotalSessions int
	TotalAmount   decimal.Decimal
	Discount      decimal.Decimal
	FinalAmount   decimal.Decimal
	Status        InvoiceStatus
	PaidAt        *time.Time
	PaidBy        *string
	BankInfo      *string
	Notes         *string
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	StudentName *string
}

// DebtEntry is one prior month's outstanding amount for a student.
type DebtEntry struct {
	PeriodMonth int             `json:"period_month"`
	PeriodYear  int             `json:"period_year"`
	Amount      decimal.Decimal `json:"amount"`
	// Source is "invoice" when a persisted unpaid invoice exists for the
	// month, "sessions" when the amount is estimated from attendance.
	Source string `json:"source"`
}

// Recalculate recomputes the derived totals from the line set.
// FinalAmount is floored at zero; a discount can never push an invoice
// negative.
func (inv *Invoice) Recalculate() {
	total := decimal.Zero
	for _, l := range inv.Lines {
		total = total.Add(l.Price)
	}
	inv.TotalSessions = len(inv.Lines)
	inv.TotalAmount = total

	final := total.Sub(inv.Discount)
	if final.IsNegative() {
		final = decimal.Zero
	}
	inv.FinalAmount = final
}
