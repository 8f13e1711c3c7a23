package student

import (
	"github.com/classtrack/center-backend-go/internal/pkg/validator"
)

type CreateStudentRequest struct {
	FullName   string  `json:"full_name"`
	Grade      int     `json:"grade"`
	School     *string `json:"school,omitempty"`
	ParentName *string `json:"parent_name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *CreateStudentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if r.Grade < 1 || r.Grade > 12 {
		errs = append(errs, validator.ValidationError{Field: "grade", Message: "must be between 1 and 12"})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "is not a valid phone number"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStudentRequest struct {
	ID         string
	FullName   *string `json:"full_name,omitempty"`
	Grade      *int    `json:"grade,omitempty"`
	School     *string `json:"school,omitempty"`
	ParentName *string `json:"parent_name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *UpdateStudentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be empty"})
	}
	if r.Grade != nil && (*r.Grade < 1 || *r.Grade > 12) {
		errs = append(errs, validator.ValidationError{Field: "grade", Message: "must be between 1 and 12"})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "is not a valid phone number"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StudentResponse struct {
	ID         string  `json:"id"`
	FullName   string  `json:"full_name"`
	Grade      int     `json:"grade"`
	School     *string `json:"school,omitempty"`
	ParentName *string `json:"parent_name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

type StudentFilter struct {
	Grade  *int
	Search *string
}
