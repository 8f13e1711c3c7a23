package class

import "errors"

var (
	ErrClassNotFound          = errors.New("class not found")
	ErrCourseNotFound         = errors.New("course not found")
	ErrCourseAlreadyExists    = errors.New("course already exists for this grade and subject")
	ErrStudentAlreadyEnrolled = errors.New("student already enrolled in this class")
	ErrStudentNotEnrolled     = errors.New("student not enrolled in this class")
)
