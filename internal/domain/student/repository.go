package student

import "context"

type StudentRepository interface {
	Create(ctx context.Context, s Student) (Student, error)
	GetByID(ctx context.Context, id string) (Student, error)
	List(ctx context.Context, filter StudentFilter) ([]Student, error)
	Update(ctx context.Context, req UpdateStudentRequest) error
	SoftDelete(ctx context.Context, id string) error
}
