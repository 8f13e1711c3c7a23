package salary

import "errors"

var (
	ErrSalaryNotFound         = errors.New("salary record not found")
	ErrSalaryAlreadyPaid      = errors.New("salary record already paid, cannot modify")
	ErrCannotDeletePaidSalary = errors.New("cannot delete paid salary record")
)
