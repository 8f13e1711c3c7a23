package roster

import (
	"context"
	"time"

	"github.com/classtrack/center-backend-go/internal/domain/class"
	"github.com/classtrack/center-backend-go/internal/domain/student"
	"github.com/classtrack/center-backend-go/internal/pkg/validator"
)

type ClassServiceImpl struct {
	classRepo   class.ClassRepository
	courseRepo  class.CourseRepository
	studentRepo student.StudentRepository
}

func NewClassService(
	classRepo class.ClassRepository,
	courseRepo class.CourseRepository,
	studentRepo student.StudentRepository,
) class.ClassService {
	return &ClassServiceImpl{
		classRepo:   classRepo,
		courseRepo:  courseRepo,
		studentRepo: studentRepo,
	}
}

func (s *ClassServiceImpl) CreateClass(ctx context.Context, req class.CreateClassRequest) (class.ClassResponse, error) {
	if err := req.Validate(); err != nil {
		return class.ClassResponse{}, err
	}

	c := class.Class{
		Name:         req.Name,
		Grade:        req.Grade,
		Subject:      req.Subject,
		SessionPrice: req.SessionPrice,
		TeacherID:    req.TeacherID,
	}
	if req.Discount != nil {
		c.Discount = *req.Discount
	}
	if req.TeacherRate != nil {
		c.TeacherRate = *req.TeacherRate
	}
	if req.TravelAllowance != nil {
		c.TravelAllowance = *req.TravelAllowance
	}

	created, err := s.classRepo.Create(ctx, c)
	if err != nil {
		return class.ClassResponse{}, err
	}
	return toClassResponse(created), nil
}

func (s *ClassServiceImpl) GetClass(ctx context.Context, id string) (class.ClassResponse, error) {
	c, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return class.ClassResponse{}, err
	}
	return toClassResponse(c), nil
}

func (s *ClassServiceImpl) ListClasses(ctx context.Context) ([]class.ClassResponse, error) {
	classes, err := s.classRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]class.ClassResponse, 0, len(classes))
	for _, c := range classes {
		responses = append(responses, toClassResponse(c))
	}
	return responses, nil
}

func (s *ClassServiceImpl) UpdateClass(ctx context.Context, req class.UpdateClassRequest) (class.ClassResponse, error) {
	if err := req.Validate(); err != nil {
		return class.ClassResponse{}, err
	}

	if err := s.classRepo.Update(ctx, req); err != nil {
		return class.ClassResponse{}, err
	}
	c, err := s.classRepo.GetByID(ctx, req.ID)
	if err != nil {
		return class.ClassResponse{}, err
	}
	return toClassResponse(c), nil
}

func (s *ClassServiceImpl) DeleteClass(ctx context.Context, id string) error {
	return s.classRepo.SoftDelete(ctx, id)
}

func (s *ClassServiceImpl) EnrollStudent(ctx context.Context, req class.EnrollStudentRequest) (class.ClassResponse, error) {
	if err := req.Validate(); err != nil {
		return class.ClassResponse{}, err
	}

	c, err := s.classRepo.GetByID(ctx, req.ClassID)
	if err != nil {
		return class.ClassResponse{}, err
	}
	if c.HasStudent(req.StudentID) {
		return class.ClassResponse{}, class.ErrStudentAlreadyEnrolled
	}
	if _, err := s.studentRepo.GetByID(ctx, req.StudentID); err != nil {
		return class.ClassResponse{}, err
	}

	enrolledAt := time.Now()
	if req.EnrolledAt != nil {
		enrolledAt, _ = time.Parse("2006-01-02", *req.EnrolledAt)
	}

	if err := s.classRepo.EnrollStudent(ctx, req.ClassID, class.Enrollment{
		StudentID:  req.StudentID,
		EnrolledAt: enrolledAt,
	}); err != nil {
		return class.ClassResponse{}, err
	}

	c, err = s.classRepo.GetByID(ctx, req.ClassID)
	if err != nil {
		return class.ClassResponse{}, err
	}
	return toClassResponse(c), nil
}

func (s *ClassServiceImpl) UnenrollStudent(ctx context.Context, classID, studentID string) (class.ClassResponse, error) {
	c, err := s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return class.ClassResponse{}, err
	}
	if !c.HasStudent(studentID) {
		return class.ClassResponse{}, class.ErrStudentNotEnrolled
	}

	if err := s.classRepo.UnenrollStudent(ctx, classID, studentID); err != nil {
		return class.ClassResponse{}, err
	}

	c, err = s.classRepo.GetByID(ctx, classID)
	if err != nil {
		return class.ClassResponse{}, err
	}
	return toClassResponse(c), nil
}

func (s *ClassServiceImpl) CreateCourse(ctx context.Context, req class.CreateCourseRequest) (class.CourseResponse, error) {
	if err := req.Validate(); err != nil {
		return class.CourseResponse{}, err
	}

	created, err := s.courseRepo.Create(ctx, class.Course{
		Grade:   req.Grade,
		Subject: req.Subject,
		Price:   req.Price,
	})
	if err != nil {
		return class.CourseResponse{}, err
	}
	return toCourseResponse(created), nil
}

func (s *ClassServiceImpl) ListCourses(ctx context.Context) ([]class.CourseResponse, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]class.CourseResponse, 0, len(courses))
	for _, c := range courses {
		responses = append(responses, toCourseResponse(c))
	}
	return responses, nil
}

func (s *ClassServiceImpl) UpdateCourse(ctx context.Context, req class.UpdateCourseRequest) (class.CourseResponse, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return class.CourseResponse{}, validator.ValidationErrors{
			{Field: "price", Message: "must be non-negative"},
		}
	}
	if err := s.courseRepo.Update(ctx, req); err != nil {
		return class.CourseResponse{}, err
	}

	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return class.CourseResponse{}, err
	}
	for _, c := range courses {
		if c.ID == req.ID {
			return toCourseResponse(c), nil
		}
	}
	return class.CourseResponse{}, class.ErrCourseNotFound
}

func (s *ClassServiceImpl) DeleteCourse(ctx context.Context, id string) error {
	return s.courseRepo.Delete(ctx, id)
}

func toClassResponse(c class.Class) class.ClassResponse {
	resp := class.ClassResponse{
		ID:              c.ID,
		Name:            c.Name,
		Grade:           c.Grade,
		Subject:         c.Subject,
		SessionPrice:    c.SessionPrice,
		Discount:        c.Discount,
		TeacherID:       c.TeacherID,
		TeacherName:     c.TeacherName,
		TeacherRate:     c.TeacherRate,
		TravelAllowance: c.TravelAllowance,
	}
	for _, e := range c.Enrollments {
		resp.Enrollments = append(resp.Enrollments, class.EnrollmentResponse{
			StudentID:   e.StudentID,
			StudentName: e.StudentName,
			EnrolledAt:  e.EnrolledAt.Format("2006-01-02"),
		})
	}
	return resp
}

func toCourseResponse(c class.Course) class.CourseResponse {
	return class.CourseResponse{
		ID:      c.ID,
		Grade:   c.Grade,
		Subject: c.Subject,
		Price:   c.Price,
	}
}
