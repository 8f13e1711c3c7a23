package student

import "context"

type StudentService interface {
	CreateStudent(ctx context.Context, req CreateStudentRequest) (StudentResponse, error)
	GetStudent(ctx context.Context, id string) (StudentResponse, error)
	ListStudents(ctx context.Context, filter StudentFilter) ([]StudentResponse, error)
	UpdateStudent(ctx context.Context, req UpdateStudentRequest) (StudentResponse, error)
	DeleteStudent(ctx context.Context, id string) error
}
