package class

import "context"

type ClassRepository interface {
	Create(ctx context.Context, c Class) (Class, error)
	GetByID(ctx context.Context, id string) (Class, error)
	List(ctx context.Context) ([]Class, error)
	Update(ctx context.Context, req UpdateClassRequest) error
	SoftDelete(ctx context.Context, id string) error

	// Enrollment
	EnrollStudent(ctx context.Context, classID string, e Enrollment) error
	UnenrollStudent(ctx context.Context, classID, studentID string) error
}

type CourseRepository interface {
	Create(ctx context.Context, c Course) (Course, error)
	List(ctx context.Context) ([]Course, error)
	Update(ctx context.Context, req UpdateCourseRequest) error
	Delete(ctx context.Context, id string) error
}
