package report

import (
	"github.com/classtrack/center-backend-go/internal/pkg/validator"
)

type GenerateReportsRequest struct {
	PeriodMonth int      `json:"period_month"`
	PeriodYear  int      `json:"period_year"`
	StudentIDs  []string `json:"student_ids,omitempty"`
}

func (r *GenerateReportsRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.PeriodMonth, r.PeriodYear) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "month must be 1-12 and year 2020 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateCommentRequest struct {
	ID      string
	Comment *string `json:"comment,omitempty"`
}

type SubmitReportRequest struct {
	ID          string
	SubmittedBy string `json:"submitted_by"`
}

func (r *SubmitReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SubmittedBy) {
		errs = append(errs, validator.ValidationError{Field: "submitted_by", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveReportRequest struct {
	ID         string
	ApprovedBy string `json:"approved_by"`
}

func (r *ApproveReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ApprovedBy) {
		errs = append(errs, validator.ValidationError{Field: "approved_by", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectReportRequest struct {
	ID     string
	Reason string `json:"reason"`
}

func (r *RejectReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveBatchRequest struct {
	ReportIDs  []string `json:"report_ids"`
	ApprovedBy string   `json:"approved_by"`
}

func (r *ApproveBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.ReportIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "report_ids", Message: "at least one report is required"})
	}
	if validator.IsEmpty(r.ApprovedBy) {
		errs = append(errs, validator.ValidationError{Field: "approved_by", Message: "is required"})
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

type ReportResponse struct {
	ID              string      `json:"id"`
	StudentID       string      `json:"student_id"`
	StudentName     string      `json:"student_name,omitempty"`
	PeriodMonth     int         `json:"period_month"`
	PeriodYear      int         `json:"period_year"`
	ClassIDs        []string    `json:"class_ids"`
	ClassNames      []string    `json:"class_names"`
	Stats           []ClassStat `json:"stats"`
	TotalSessions   int         `json:"total_sessions"`
	AttendanceRate  int         `json:"attendance_rate"`
	AverageScore    float64     `json:"average_score"`
	Comment         string      `json:"comment"`
	Status          string      `json:"status"`
	SubmittedAt     *string     `json:"submitted_at,omitempty"`
	SubmittedBy     *string     `json:"submitted_by,omitempty"`
	ApprovedAt      *string     `json:"approved_at,omitempty"`
	ApprovedBy      *string     `json:"approved_by,omitempty"`
	RejectionReason *string     `json:"rejection_reason,omitempty"`
}

type ReportFilter struct {
	PeriodMonth *int
	PeriodYear  *int
	Status      *string
	StudentID   *string
}
