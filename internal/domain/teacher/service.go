package teacher

import "context"

type TeacherService interface {
	CreateTeacher(ctx context.Context, req CreateTeacherRequest) (TeacherResponse, error)
	GetTeacher(ctx context.Context, id string) (TeacherResponse, error)
	ListTeachers(ctx context.Context) ([]TeacherResponse, error)
	UpdateTeacher(ctx context.Context, req UpdateTeacherRequest) (TeacherResponse, error)
	DeleteTeacher(ctx context.Context, id string) error
}
