package salary

import (
	"github.com/classtrack/center-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GenerateSalariesRequest struct {
	PeriodMonth int      `json:"period_month"`
	PeriodYear  int      `json:"period_year"`
	TeacherIDs  []string `json:"teacher_ids,omitempty"` // Empty = all teachers with sessions
}

func (r *GenerateSalariesRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.PeriodMonth, r.PeriodYear) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "month must be 1-12 and year 2020 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkPaidRequest struct {
	SalaryIDs []string `json:"salary_ids"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.SalaryIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "salary_ids", Message: "at least one salary record is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BulkResult reports the outcome for a single record in a bulk operation.
type BulkResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type SalaryResponse struct {
	ID                   string           `json:"id"`
	TeacherID            string           `json:"teacher_id"`
	TeacherName          string           `json:"teacher_name,omitempty"`
	PeriodMonth          int              `json:"period_month"`
	PeriodYear           int              `json:"period_year"`
	Breakdown            []ClassBreakdown `json:"breakdown"`
	TotalSessions        int              `json:"total_sessions"`
	TotalSalary          decimal.Decimal  `json:"total_salary"`
	TotalTravelAllowance decimal.Decimal  `json:"total_travel_allowance"`
	DurationHours        int              `json:"duration_hours"`
	DurationMinutes      int              `json:"duration_minutes"`
	Status               string           `json:"status"`
	PaidAt               *string          `json:"paid_at,omitempty"`
}

type SalaryFilter struct {
	PeriodMonth *int
	PeriodYear  *int
	Status      *string
	TeacherID   *string
}
