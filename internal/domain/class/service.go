package class

import "context"

// ClassService covers classes, the course catalog and enrollment.
type ClassService interface {
	CreateClass(ctx context.Context, req CreateClassRequest) (ClassResponse, error)
	GetClass(ctx context.Context, id string) (ClassResponse, error)
	ListClasses(ctx context.Context) ([]ClassResponse, error)
	UpdateClass(ctx context.Context, req UpdateClassRequest) (ClassResponse, error)
	DeleteClass(ctx context.Context, id string) error

	EnrollStudent(ctx context.Context, req EnrollStudentRequest) (ClassResponse, error)
	UnenrollStudent(ctx context.Context, classID, studentID string) (ClassResponse, error)

	CreateCourse(ctx context.Context, req CreateCourseRequest) (CourseResponse, error)
	ListCourses(ctx context.Context) ([]CourseResponse, error)
	UpdateCourse(ctx context.Context, req UpdateCourseRequest) (CourseResponse, error)
	DeleteCourse(ctx context.Context, id string) error
}
