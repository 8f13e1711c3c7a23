package roster

import (
	"context"

	"github.com/classtrack/center-backend-go/internal/domain/teacher"
)

type TeacherServiceImpl struct {
	teacherRepo teacher.TeacherRepository
}

func NewTeacherService(teacherRepo teacher.TeacherRepository) teacher.TeacherService {
	return &TeacherServiceImpl{teacherRepo: teacherRepo}
}

func (s *TeacherServiceImpl) CreateTeacher(ctx context.Context, req teacher.CreateTeacherRequest) (teacher.TeacherResponse, error) {
	if err := req.Validate(); err != nil {
		return teacher.TeacherResponse{}, err
	}

	created, err := s.teacherRepo.Create(ctx, teacher.Teacher{
		FullName: req.FullName,
		Phone:    req.Phone,
		Subject:  req.Subject,
		Notes:    req.Notes,
	})
	if err != nil {
		return teacher.TeacherResponse{}, err
	}
	return toTeacherResponse(created), nil
}

func (s *TeacherServiceImpl) GetTeacher(ctx context.Context, id string) (teacher.TeacherResponse, error) {
	rec, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return teacher.TeacherResponse{}, err
	}
	return toTeacherResponse(rec), nil
}

func (s *TeacherServiceImpl) ListTeachers(ctx context.Context) ([]teacher.TeacherResponse, error) {
	records, err := s.teacherRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]teacher.TeacherResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toTeacherResponse(rec))
	}
	return responses, nil
}

func (s *TeacherServiceImpl) UpdateTeacher(ctx context.Context, req teacher.UpdateTeacherRequest) (teacher.TeacherResponse, error) {
	if err := req.Validate(); err != nil {
		return teacher.TeacherResponse{}, err
	}

	if err := s.teacherRepo.Update(ctx, req); err != nil {
		return teacher.TeacherResponse{}, err
	}
	rec, err := s.teacherRepo.GetByID(ctx, req.ID)
	if err != nil {
		return teacher.TeacherResponse{}, err
	}
	return toTeacherResponse(rec), nil
}

func (s *TeacherServiceImpl) DeleteTeacher(ctx context.Context, id string) error {
	return s.teacherRepo.SoftDelete(ctx, id)
}

func toTeacherResponse(rec teacher.Teacher) teacher.TeacherResponse {
	return teacher.TeacherResponse{
		ID:       rec.ID,
		FullName: rec.FullName,
		Phone:    rec.Phone,
		Subject:  rec.Subject,
		Notes:    rec.Notes,
	}
}
