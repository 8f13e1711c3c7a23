package roster

import (
	"context"

	"github.com/classtrack/center-backend-go/internal/domain/student"
)

type StudentServiceImpl struct {
	studentRepo student.StudentRepository
}

func NewStudentService(studentRepo student.StudentRepository) student.StudentService {
	return &StudentServiceImpl{studentRepo: studentRepo}
}

func (s *StudentServiceImpl) CreateStudent(ctx context.Context, req student.CreateStudentRequest) (student.StudentResponse, error) {
	if err := req.Validate(); err != nil {
		return student.StudentResponse{}, err
	}

	created, err := s.studentRepo.Create(ctx, student.Student{
		FullName:   req.FullName,
		Grade:      req.Grade,
		School:     req.School,
		ParentName: req.ParentName,
		Phone:      req.Phone,
		Notes:      req.Notes,
	})
	if err != nil {
		return student.StudentResponse{}, err
	}
	return toStudentResponse(created), nil
}

func (s *StudentServiceImpl) GetStudent(ctx context.Context, id string) (student.StudentResponse, error) {
	rec, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return student.StudentResponse{}, err
	}
	return toStudentResponse(rec), nil
}

func (s *StudentServiceImpl) ListStudents(ctx context.Context, filter student.StudentFilter) ([]student.StudentResponse, error) {
	records, err := s.studentRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]student.StudentResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toStudentResponse(rec))
	}
	return responses, nil
}

func (s *StudentServiceImpl) UpdateStudent(ctx context.Context, req student.UpdateStudentRequest) (student.StudentResponse, error) {
	if err := req.Validate(); err != nil {
		return student.StudentResponse{}, err
	}

	if err := s.studentRepo.Update(ctx, req); err != nil {
		return student.StudentResponse{}, err
	}
	rec, err := s.studentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return student.StudentResponse{}, err
	}
	return toStudentResponse(rec), nil
}

func (s *StudentServiceImpl) DeleteStudent(ctx context.Context, id string) error {
	return s.studentRepo.SoftDelete(ctx, id)
}

func toStudentResponse(rec student.Student) student.StudentResponse {
	return student.StudentResponse{
		ID:         rec.ID,
		FullName:   rec.FullName,
		Grade:      rec.Grade,
		School:     rec.School,
		ParentName: rec.ParentName,
		Phone:      rec.Phone,
		Notes:      rec.Notes,
	}
}
