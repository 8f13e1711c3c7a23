package salary

import (
	"context"
	"errors"
	"time"

	"github.com/classtrack/center-backend-go/internal/domain/class"
	"github.com/classtrack/center-backend-go/internal/domain/salary"
	"github.com/classtrack/center-backend-go/internal/domain/session"
)

type SalaryServiceImpl struct {
	salaryRepo  salary.SalaryRepository
	sessionRepo session.SessionRepository
	classRepo   class.ClassRepository
}

func NewSalaryService(
	salaryRepo salary.SalaryRepository,
	sessionRepo session.SessionRepository,
	classRepo class.ClassRepository,
) salary.SalaryService {
	return &SalaryServiceImpl{
		salaryRepo:  salaryRepo,
		sessionRepo: sessionRepo,
		classRepo:   classRepo,
	}
}

func (s *SalaryServiceImpl) GenerateSalaries(ctx context.Context, req salary.GenerateSalariesRequest) ([]salary.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.List(ctx, session.SessionFilter{
		PeriodMonth: &req.PeriodMonth,
		PeriodYear:  &req.PeriodYear,
	})
	if err != nil {
		return nil, err
	}

	classList, err := s.classRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	classes := make(map[string]class.Class, len(classList))
	for _, c := range classList {
		classes[c.ID] = c
	}

	teacherIDs := req.TeacherIDs
	if len(teacherIDs) == 0 {
		teacherIDs = teachersOf(sessions, classes)
	}

	results := make([]salary.SalaryResponse, 0, len(teacherIDs))
	for _, teacherID := range teacherIDs {
		resp, skip, err := s.generateOne(ctx, teacherID, req.PeriodMonth, req.PeriodYear, sessions, classes)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		results = append(results, resp)
	}
	return results, nil
}

// generateOne recomputes one teacher's statement from sessions. A paid
// statement is returned verbatim from storage, never rebuilt.
func (s *SalaryServiceImpl) generateOne(ctx context.Context, teacherID string, month, year int, sessions []session.Session, classes map[string]class.Class) (salary.SalaryResponse, bool, error) {
	computed, err := BuildSalary(teacherID, month, year, sessions, classes)
	if err != nil {
		return salary.SalaryResponse{}, false, err
	}

	existing, err := s.salaryRepo.GetByTeacherPeriod(ctx, teacherID, month, year)
	if err != nil {
		if !errors.Is(err, salary.ErrSalaryNotFound) {
			return salary.SalaryResponse{}, false, err
		}
		if computed.TotalSessions == 0 {
			return salary.SalaryResponse{}, true, nil
		}
		created, err := s.salaryRepo.Create(ctx, computed)
		if err != nil {
			return salary.SalaryResponse{}, false, err
		}
		return toSalaryResponse(created), false, nil
	}

	if existing.Status == salary.SalaryStatusPaid {
		return toSalaryResponse(existing), false, nil
	}

	existing.Breakdown = computed.Breakdown
	existing.TotalSessions = computed.TotalSessions
	existing.TotalSalary = computed.TotalSalary
	existing.TotalTravelAllowance = computed.TotalTravelAllowance
	existing.DurationMinutes = computed.DurationMinutes

	updated, err := s.salaryRepo.Replace(ctx, existing)
	if err != nil {
		return salary.SalaryResponse{}, false, err
	}
	return toSalaryResponse(updated), false, nil
}

func (s *SalaryServiceImpl) GetSalary(ctx context.Context, id string) (salary.SalaryResponse, error) {
	rec, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return toSalaryResponse(rec), nil
}

func (s *SalaryServiceImpl) ListSalaries(ctx context.Context, filter salary.SalaryFilter) ([]salary.SalaryResponse, error) {
	records, err := s.salaryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]salary.SalaryResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toSalaryResponse(rec))
	}
	return responses, nil
}

func (s *SalaryServiceImpl) MarkPaid(ctx context.Context, req salary.MarkPaidRequest, paidBy string) ([]salary.BulkResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	results := make([]salary.BulkResult, 0, len(req.SalaryIDs))
	for _, id := range req.SalaryIDs {
		if _, err := s.salaryRepo.MarkPaid(ctx, id, paidBy); err != nil {
			results = append(results, salary.BulkResult{ID: id, Error: err.Error()})
			continue
		}
		results = append(results, salary.BulkResult{ID: id, OK: true})
	}
	return results, nil
}

func (s *SalaryServiceImpl) DeleteSalary(ctx context.Context, id string) error {
	return s.salaryRepo.Delete(ctx, id)
}

func toSalaryResponse(rec salary.Salary) salary.SalaryResponse {
	hours, minutes := rec.Hours()
	resp := salary.SalaryResponse{
		ID:                   rec.ID,
		TeacherID:            rec.TeacherID,
		PeriodMonth:          rec.PeriodMonth,
		PeriodYear:           rec.PeriodYear,
		Breakdown:            rec.Breakdown,
		TotalSessions:        rec.TotalSessions,
		TotalSalary:          rec.TotalSalary,
		TotalTravelAllowance: rec.TotalTravelAllowance,
		DurationHours:        hours,
		DurationMinutes:      minutes,
		Status:               string(rec.Status),
	}
	if rec.TeacherName != nil {
		resp.TeacherName = *rec.TeacherName
	}
	if rec.PaidAt != nil {
		paidAt := rec.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	return resp
}
