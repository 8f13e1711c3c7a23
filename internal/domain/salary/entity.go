package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryStatus enum
type SalaryStatus string

const (
	SalaryStatusUnpaid SalaryStatus = "unpaid"
	SalaryStatusPaid   SalaryStatus = "paid"
)

// ClassBreakdown is the per-class slice of a teacher's monthly pay.
type ClassBreakdown struct {
	ClassID   string          `json:"class_id"`
	ClassName string          `json:"class_name,omitempty"`
	Sessions  int             `json:"sessions"`
	Rate      decimal.Decimal `json:"rate"`
	Amount    decimal.Decimal `json:"amount"`
}

// Salary is a monthly pay statement for one teacher, aggregated from the
// sessions of classes assigned to them. Paid statements are immutable and
// are never regenerated from sessions.
type Salary struct {
	ID                   string
	TeacherID            string
	PeriodMonth          int
	PeriodYear           int
	Breakdown            []ClassBreakdown
	TotalSessions        int
	TotalSalary          decimal.Decimal
	TotalTravelAllowance decimal.Decimal
	DurationMinutes      int
	Status               SalaryStatus
	PaidAt               *time.Time
	PaidBy               *string
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// Joined fields
	TeacherName *string
}

// Hours splits the accumulated duration into whole hours plus remainder
// minutes for display.
func (s Salary) Hours() (hours, minutes int) {
	return s.DurationMinutes / 60, s.DurationMinutes % 60
}
