package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a manually entered operating cost for a month; independent of
// attendance and purely additive to the financial summary.
type Expense struct {
	ID          string
	Category    string
	Description *string
	Amount      decimal.Decimal
	PeriodMonth int
	PeriodYear  int
	ReceiptURL  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
