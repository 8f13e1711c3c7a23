package teacher

import (
	"github.com/classtrack/center-backend-go/internal/pkg/validator"
)

type CreateTeacherRequest struct {
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone,omitempty"`
	Subject  *string `json:"subject,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *CreateTeacherRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "is not a valid phone number"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateTeacherRequest struct {
	ID       string
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Subject  *string `json:"subject,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *UpdateTeacherRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be empty"})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "is not a valid phone number"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TeacherResponse struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone,omitempty"`
	Subject  *string `json:"subject,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}
