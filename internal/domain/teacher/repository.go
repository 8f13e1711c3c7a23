package teacher

import "context"

type TeacherRepository interface {
	Create(ctx context.Context, t Teacher) (Teacher, error)
	GetByID(ctx context.Context, id string) (Teacher, error)
	List(ctx context.Context) ([]Teacher, error)
	Update(ctx context.Context, req UpdateTeacherRequest) error
	SoftDelete(ctx context.Context, id string) error
}
