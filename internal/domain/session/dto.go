package session

import (
	"time"

	"github.com/classtrack/center-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type StudentRecordInput struct {
	StudentID     string           `json:"student_id"`
	Present       bool             `json:"present"`
	Excused       bool             `json:"excused"`
	Late          bool             `json:"late"`
	HomeworkDone  int              `json:"homework_done"`
	TestName      *string          `json:"test_name,omitempty"`
	TestScore     *float64         `json:"test_score,omitempty"`
	BonusPoints   int              `json:"bonus_points"`
	Note          *string          `json:"note,omitempty"`
	PriceOverride *decimal.Decimal `json:"price_override,omitempty"`
}

type CreateSessionRequest struct {
	ClassID   string               `json:"class_id"`
	TeacherID *string              `json:"teacher_id,omitempty"`
	Date      string               `json:"date"` // "2006-01-02"
	StartTime string               `json:"start_time"`
	EndTime   string               `json:"end_time"`
	Records   []StudentRecordInput `json:"records"`
}

func (r *CreateSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClassID) {
		errs = append(errs, validator.ValidationError{Field: "class_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if !validator.IsValidClockTime(r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be H:MM"})
	}
	if !validator.IsValidClockTime(r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be H:MM"})
	}
	errs = append(errs, validateRecords(r.Records)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSessionRequest struct {
	ID        string
	TeacherID *string              `json:"teacher_id,omitempty"`
	Date      *string              `json:"date,omitempty"`
	StartTime *string              `json:"start_time,omitempty"`
	EndTime   *string              `json:"end_time,omitempty"`
	Records   []StudentRecordInput `json:"records,omitempty"`
}

func (r *UpdateSessionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.StartTime != nil && !validator.IsValidClockTime(*r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be H:MM"})
	}
	if r.EndTime != nil && !validator.IsValidClockTime(*r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be H:MM"})
	}
	errs = append(errs, validateRecords(r.Records)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateRecords(records []StudentRecordInput) validator.ValidationErrors {
	var errs validator.ValidationErrors
	seen := make(map[string]bool)
	for _, rec := range records {
		if validator.IsEmpty(rec.StudentID) {
			errs = append(errs, validator.ValidationError{Field: "records", Message: "student_id is required"})
			continue
		}
		if seen[rec.StudentID] {
			errs = append(errs, validator.ValidationError{Field: "records", Message: "duplicate student " + rec.StudentID})
		}
		seen[rec.StudentID] = true
		if rec.HomeworkDone < 0 || rec.HomeworkDone > 100 {
			errs = append(errs, validator.ValidationError{Field: "records", Message: "homework_done must be 0-100"})
		}
		if rec.TestScore != nil && (*rec.TestScore < 0 || *rec.TestScore > 10) {
			errs = append(errs, validator.ValidationError{Field: "records", Message: "test_score must be 0-10"})
		}
		if rec.PriceOverride != nil && rec.PriceOverride.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "records", Message: "price_override must be non-negative"})
		}
	}
	return errs
}

type SessionResponse struct {
	ID        string          `json:"id"`
	ClassID   string          `json:"class_id"`
	ClassName *string         `json:"class_name,omitempty"`
	TeacherID *string         `json:"teacher_id,omitempty"`
	Date      string          `json:"date"`
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
	Records   []StudentRecord `json:"records"`
	Locked    bool            `json:"locked"`
}

type SessionFilter struct {
	ClassID     *string
	StudentID   *string
	PeriodMonth *int
	PeriodYear  *int
	DateFrom    *time.Time
	DateTo      *time.Time
}
