package class

import (
	"github.com/classtrack/center-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateClassRequest struct {
	Name            string           `json:"name"`
	Grade           int              `json:"grade"`
	Subject         string           `json:"subject"`
	SessionPrice    *decimal.Decimal `json:"session_price,omitempty"`
	Discount        *decimal.Decimal `json:"discount,omitempty"`
	TeacherID       *string          `json:"teacher_id,omitempty"`
	TeacherRate     *decimal.Decimal `json:"teacher_rate,omitempty"`
	TravelAllowance *decimal.Decimal `json:"travel_allowance,omitempty"`
}

func (r *CreateClassRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.Grade < 1 || r.Grade > 12 {
		errs = append(errs, validator.ValidationError{Field: "grade", Message: "must be between 1 and 12"})
	}
	if validator.IsEmpty(r.Subject) {
		errs = append(errs, validator.ValidationError{Field: "subject", Message: "is required"})
	}
	if r.SessionPrice != nil && r.SessionPrice.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "session_price", Message: "must be non-negative"})
	}
	if r.Discount != nil && r.Discount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "discount", Message: "must be non-negative"})
	}
	if r.TeacherRate != nil && r.TeacherRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "teacher_rate", Message: "must be non-negative"})
	}
	if r.TravelAllowance != nil && r.TravelAllowance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "travel_allowance", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateClassRequest struct {
	ID              string
	Name            *string          `json:"name,omitempty"`
	Grade           *int             `json:"grade,omitempty"`
	Subject         *string          `json:"subject,omitempty"`
	SessionPrice    *decimal.Decimal `json:"session_price,omitempty"`
	Discount        *decimal.Decimal `json:"discount,omitempty"`
	TeacherID       *string          `json:"teacher_id,omitempty"`
	TeacherRate     *decimal.Decimal `json:"teacher_rate,omitempty"`
	TravelAllowance *decimal.Decimal `json:"travel_allowance,omitempty"`
}

func (r *UpdateClassRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.Grade != nil && (*r.Grade < 1 || *r.Grade > 12) {
		errs = append(errs, validator.ValidationError{Field: "grade", Message: "must be between 1 and 12"})
	}
	if r.SessionPrice != nil && r.SessionPrice.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "session_price", Message: "must be non-negative"})
	}
	if r.Discount != nil && r.Discount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "discount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EnrollStudentRequest struct {
	ClassID    string
	StudentID  string  `json:"student_id"`
	EnrolledAt *string `json:"enrolled_at,omitempty"` // "2006-01-02", defaults to today
}

func (r *EnrollStudentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StudentID) {
		errs = append(errs, validator.ValidationError{Field: "student_id", Message: "is required"})
	}
	if r.EnrolledAt != nil {
		if _, ok := validator.IsValidDate(*r.EnrolledAt); !ok {
			errs = append(errs, validator.ValidationError{Field: "enrolled_at", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClassResponse struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	Grade           int                  `json:"grade"`
	Subject         string               `json:"subject"`
	SessionPrice    *decimal.Decimal     `json:"session_price,omitempty"`
	Discount        decimal.Decimal      `json:"discount"`
	TeacherID       *string              `json:"teacher_id,omitempty"`
	TeacherName     *string              `json:"teacher_name,omitempty"`
	TeacherRate     decimal.Decimal      `json:"teacher_rate"`
	TravelAllowance decimal.Decimal      `json:"travel_allowance"`
	Enrollments     []EnrollmentResponse `json:"enrollments,omitempty"`
}

type EnrollmentResponse struct {
	StudentID   string  `json:"student_id"`
	StudentName *string `json:"student_name,omitempty"`
	EnrolledAt  string  `json:"enrolled_at"`
}

type CreateCourseRequest struct {
	Grade   int             `json:"grade"`
	Subject string          `json:"subject"`
	Price   decimal.Decimal `json:"price"`
}

func (r *CreateCourseRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Grade < 1 || r.Grade > 12 {
		errs = append(errs, validator.ValidationError{Field: "grade", Message: "must be between 1 and 12"})
	}
	if validator.IsEmpty(r.Subject) {
		errs = append(errs, validator.ValidationError{Field: "subject", Message: "is required"})
	}
	if r.Price.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "price", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateCourseRequest struct {
	ID    string
	Price *decimal.Decimal `json:"price,omitempty"`
}

type CourseResponse struct {
	ID      string          `json:"id"`
	Grade   int             `json:"grade"`
	Subject string          `json:"subject"`
	Price   decimal.Decimal `json:"price"`
}
