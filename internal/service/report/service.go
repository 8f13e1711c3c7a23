package report

import (
	"context"
	"time"

	"github.com/classtrack/center-backend-go/internal/domain/class"
	"github.com/classtrack/center-backend-go/internal/domain/report"
	"github.com/classtrack/center-backend-go/internal/domain/session"
)

type ReportServiceImpl struct {
	reportRepo  report.ReportRepository
	sessionRepo session.SessionRepository
	classRepo   class.ClassRepository
}

func NewReportService(
	reportRepo report.ReportRepository,
	sessionRepo session.SessionRepository,
	classRepo class.ClassRepository,
) report.ReportService {
	return &ReportServiceImpl{
		reportRepo:  reportRepo,
		sessionRepo: sessionRepo,
		classRepo:   classRepo,
	}
}

func (s *ReportServiceImpl) GenerateReports(ctx context.Context, req report.GenerateReportsRequest) ([]report.ReportResponse, error) {
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
	classNames := make(map[string]string, len(classList))
	for _, c := range classList {
		classNames[c.ID] = c.Name
	}

	byStudent := studentClasses(sessions)
	studentIDs := req.StudentIDs
	if len(studentIDs) == 0 {
		for id := range byStudent {
			studentIDs = append(studentIDs, id)
		}
	}

	var results []report.ReportResponse
	for _, studentID := range studentIDs {
		for _, classID := range byStudent[studentID] {
			stat := BuildClassStat(studentID, classID, classNames[classID], sessions)
			resp, skip, err := s.upsertPiece(ctx, studentID, req.PeriodMonth, req.PeriodYear, stat)
			if err != nil {
				return nil, err
			}
			if skip {
				continue
			}
			results = append(results, resp)
		}
	}
	return results, nil
}

// upsertPiece writes one class's freshly computed stats into the student's
// report for the period. Drafts are updated in place; submitted and
// approved pieces keep the snapshot they were reviewed on, so changed
// attendance only reaches them through a rejection.
func (s *ReportServiceImpl) upsertPiece(ctx context.Context, studentID string, month, year int, stat report.ClassStat) (report.ReportResponse, bool, error) {
	pieces, err := s.reportRepo.ListByStudentPeriod(ctx, studentID, month, year)
	if err != nil {
		return report.ReportResponse{}, false, err
	}

	for _, p := range pieces {
		if !containsClass(p, stat.ClassID) {
			continue
		}
		if p.Status != report.ReportStatusDraft {
			return report.ReportResponse{}, true, nil
		}
		for i := range p.Stats {
			if p.Stats[i].ClassID == stat.ClassID {
				p.Stats[i] = stat
			}
		}
		updated, err := s.reportRepo.Replace(ctx, p)
		if err != nil {
			return report.ReportResponse{}, false, err
		}
		return s.toResponse(updated), false, nil
	}

	created, err := s.reportRepo.Create(ctx, report.Report{
		StudentID:   studentID,
		PeriodMonth: month,
		PeriodYear:  year,
		ClassIDs:    []string{stat.ClassID},
		ClassNames:  []string{stat.ClassName},
		Stats:       []report.ClassStat{stat},
		Status:      report.ReportStatusDraft,
	})
	if err != nil {
		return report.ReportResponse{}, false, err
	}
	return s.toResponse(created), false, nil
}

func (s *ReportServiceImpl) GetMergedReport(ctx context.Context, studentID string, month, year int) (report.ReportResponse, error) {
	pieces, err := s.reportRepo.ListByStudentPeriod(ctx, studentID, month, year)
	if err != nil {
		return report.ReportResponse{}, err
	}

	merged, ok := MergeReports(pieces)
	if !ok {
		return report.ReportResponse{}, report.ErrReportNotFound
	}

	resp := s.toResponse(merged.Report)
	resp.TotalSessions = merged.TotalSessions
	resp.AttendanceRate = merged.AttendanceRate
	resp.AverageScore = merged.AverageScore
	return resp, nil
}

func (s *ReportServiceImpl) GetReport(ctx context.Context, id string) (report.ReportResponse, error) {
	rec, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return report.ReportResponse{}, err
	}
	return s.toResponse(rec), nil
}

func (s *ReportServiceImpl) ListReports(ctx context.Context, filter report.ReportFilter) ([]report.ReportResponse, error) {
	records, err := s.reportRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]report.ReportResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, s.toResponse(rec))
	}
	return responses, nil
}

func (s *ReportServiceImpl) UpdateComment(ctx context.Context, req report.UpdateCommentRequest) (report.ReportResponse, error) {
	rec, err := s.reportRepo.GetByID(ctx, req.ID)
	if err != nil {
		return report.ReportResponse{}, err
	}
	if rec.Status == report.ReportStatusApproved {
		return report.ReportResponse{}, report.ErrReportFrozen
	}

	if req.Comment != nil {
		rec.Comment = *req.Comment
	}

	updated, err := s.reportRepo.Replace(ctx, rec)
	if err != nil {
		return report.ReportResponse{}, err
	}
	return s.toResponse(updated), nil
}

func (s *ReportServiceImpl) Submit(ctx context.Context, req report.SubmitReportRequest) (report.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.ReportResponse{}, err
	}

	rec, err := s.reportRepo.GetByID(ctx, req.ID)
	if err != nil {
		return report.ReportResponse{}, err
	}
	if rec.Status != report.ReportStatusDraft {
		return report.ReportResponse{}, report.ErrInvalidTransition
	}

	now := time.Now()
	rec.Status = report.ReportStatusSubmitted
	rec.SubmittedAt = &now
	rec.SubmittedBy = &req.SubmittedBy
	rec.RejectionReason = nil

	updated, err := s.reportRepo.Replace(ctx, rec)
	if err != nil {
		return report.ReportResponse{}, err
	}
	return s.toResponse(updated), nil
}

func (s *ReportServiceImpl) Approve(ctx context.Context, req report.ApproveReportRequest) (report.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.ReportResponse{}, err
	}
	rec, err := s.approveOne(ctx, req.ID, req.ApprovedBy)
	if err != nil {
		return report.ReportResponse{}, err
	}
	return s.toResponse(rec), nil
}

func (s *ReportServiceImpl) approveOne(ctx context.Context, id, approvedBy string) (report.Report, error) {
	rec, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return report.Report{}, err
	}
	if rec.Status != report.ReportStatusSubmitted {
		return report.Report{}, report.ErrReportNotSubmitted
	}

	now := time.Now()
	rec.Status = report.ReportStatusApproved
	rec.ApprovedAt = &now
	rec.ApprovedBy = &approvedBy
	rec.RejectionReason = nil

	return s.reportRepo.Replace(ctx, rec)
}

// Reject sends a submitted report back to draft. The reason is mandatory
// and the submission metadata is cleared, so the next submission starts
// clean.
func (s *ReportServiceImpl) Reject(ctx context.Context, req report.RejectReportRequest) (report.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.ReportResponse{}, err
	}

	rec, err := s.reportRepo.GetByID(ctx, req.ID)
	if err != nil {
		return report.ReportResponse{}, err
	}
	if rec.Status != report.ReportStatusSubmitted {
		return report.ReportResponse{}, report.ErrReportNotSubmitted
	}

	rec.Status = report.ReportStatusDraft
	rec.SubmittedAt = nil
	rec.SubmittedBy = nil
	rec.RejectionReason = &req.Reason

	updated, err := s.reportRepo.Replace(ctx, rec)
	if err != nil {
		return report.ReportResponse{}, err
	}
	return s.toResponse(updated), nil
}

func (s *ReportServiceImpl) ApproveBatch(ctx context.Context, req report.ApproveBatchRequest) ([]report.BulkResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	results := make([]report.BulkResult, 0, len(req.ReportIDs))
	for _, id := range req.ReportIDs {
		if _, err := s.approveOne(ctx, id, req.ApprovedBy); err != nil {
			results = append(results, report.BulkResult{ID: id, Error: err.Error()})
			continue
		}
		results = append(results, report.BulkResult{ID: id, OK: true})
	}
	return results, nil
}

func containsClass(r report.Report, classID string) bool {
	for _, id := range r.ClassIDs {
		if id == classID {
			return true
		}
	}
	return false
}

func (s *ReportServiceImpl) toResponse(rec report.Report) report.ReportResponse {
	total, rate, avg := overallStats(rec.Stats)
	resp := report.ReportResponse{
		ID:              rec.ID,
		StudentID:       rec.StudentID,
		PeriodMonth:     rec.PeriodMonth,
		PeriodYear:      rec.PeriodYear,
		ClassIDs:        rec.ClassIDs,
		ClassNames:      rec.ClassNames,
		Stats:           rec.Stats,
		TotalSessions:   total,
		AttendanceRate:  rate,
		AverageScore:    avg,
		Comment:         rec.Comment,
		Status:          string(rec.Status),
		SubmittedBy:     rec.SubmittedBy,
		ApprovedBy:      rec.ApprovedBy,
		RejectionReason: rec.RejectionReason,
	}
	if rec.StudentName != nil {
		resp.StudentName = *rec.StudentName
	}
	if rec.SubmittedAt != nil {
		v := rec.SubmittedAt.Format(time.RFC3339)
		resp.SubmittedAt = &v
	}
	if rec.ApprovedAt != nil {
		v := rec.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}
