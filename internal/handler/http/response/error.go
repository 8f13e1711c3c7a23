package response

import (
	"errors"
	"net/http"

	"github.com/classtrack/center-backend-go/internal/domain/class"
	"github.com/classtrack/center-backend-go/internal/domain/expense"
	"github.com/classtrack/center-backend-go/internal/domain/invoice"
	"github.com/classtrack/center-backend-go/internal/domain/report"
	"github.com/classtrack/center-backend-go/internal/domain/salary"
	"github.com/classtrack/center-backend-go/internal/domain/session"
	"github.com/classtrack/center-backend-go/internal/domain/student"
	"github.com/classtrack/center-backend-go/internal/domain/teacher"
	"github.com/classtrack/center-backend-go/internal/pkg/validator"
	"github.com/classtrack/center-backend-go/internal/service/pricing"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Roster errors
	case errors.Is(err, student.ErrStudentNotFound):
		NotFound(w, "Student not found")
	case errors.Is(err, teacher.ErrTeacherNotFound):
		NotFound(w, "Teacher not found")
	case errors.Is(err, class.ErrClassNotFound):
		NotFound(w, "Class not found")
	case errors.Is(err, class.ErrCourseNotFound):
		NotFound(w, "Course not found")
	case errors.Is(err, class.ErrCourseAlreadyExists):
		Conflict(w, "A course for this grade and subject already exists")
	case errors.Is(err, class.ErrStudentAlreadyEnrolled):
		Conflict(w, "Student is already enrolled in this class")
	case errors.Is(err, class.ErrStudentNotEnrolled):
		BadRequest(w, "Student is not enrolled in this class", nil)

	// Session errors
	case errors.Is(err, session.ErrSessionNotFound):
		NotFound(w, "Session not found")
	case errors.Is(err, session.ErrSessionLocked):
		Conflict(w, "Session is locked by a paid invoice")

	// Invoice errors
	case errors.Is(err, invoice.ErrInvoiceNotFound):
		NotFound(w, "Invoice not found")
	case errors.Is(err, invoice.ErrInvoiceAlreadyPaid):
		Conflict(w, "Invoice is already paid")
	case errors.Is(err, invoice.ErrCannotDeletePaidInvoice):
		Conflict(w, "Paid invoices cannot be deleted")
	case errors.Is(err, invoice.ErrVersionConflict):
		Conflict(w, "Invoice was modified by someone else, reload and retry")
	case errors.Is(err, invoice.ErrMissingPrice), errors.Is(err, pricing.ErrNoPriceRule):
		BadRequest(w, "A session has no resolvable price", nil)

	// Salary errors
	case errors.Is(err, salary.ErrSalaryNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, salary.ErrSalaryAlreadyPaid):
		Conflict(w, "Salary record is already paid")
	case errors.Is(err, salary.ErrCannotDeletePaidSalary):
		Conflict(w, "Paid salary records cannot be deleted")

	// Report errors
	case errors.Is(err, report.ErrReportNotFound):
		NotFound(w, "Report not found")
	case errors.Is(err, report.ErrInvalidTransition):
		Conflict(w, "Report cannot move to that status from its current one")
	case errors.Is(err, report.ErrReportNotSubmitted):
		Conflict(w, "Report has not been submitted")
	case errors.Is(err, report.ErrReportFrozen):
		Conflict(w, "Approved reports are frozen")
	case errors.Is(err, report.ErrReasonRequired):
		BadRequest(w, "A rejection reason is required", nil)

	// Expense errors
	case errors.Is(err, expense.ErrExpenseNotFound):
		NotFound(w, "Expense not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
