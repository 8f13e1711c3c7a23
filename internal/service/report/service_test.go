package report

import (
	"context"
	"fmt"
	"testing"

	"github.com/classtrack/center-backend-go/internal/domain/class"
	"github.com/classtrack/center-backend-go/internal/domain/report"
	"github.com/classtrack/center-backend-go/internal/domain/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportRepo struct {
	byID   map[string]report.Report
	nextID int
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{byID: make(map[string]report.Report)}
}

func (r *fakeReportRepo) Create(ctx context.Context, rec report.Report) (report.Report, error) {
	r.nextID++
	rec.ID = fmt.Sprintf("rep-%d", r.nextID)
	r.byID[rec.ID] = rec
	return rec, nil
}

func (r *fakeReportRepo) GetByID(ctx context.Context, id string) (report.Report, error) {
	rec, ok := r.byID[id]
	if !ok {
		return report.Report{}, report.ErrReportNotFound
	}
	return rec, nil
}

func (r *fakeReportRepo) ListByStudentPeriod(ctx context.Context, studentID string, month, year int) ([]report.Report, error) {
	var out []report.Report
	for i := 1; i <= r.nextID; i++ {
		rec, ok := r.byID[fmt.Sprintf("rep-%d", i)]
		if !ok {
			continue
		}
		if rec.StudentID == studentID && rec.PeriodMonth == month && rec.PeriodYear == year {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) List(ctx context.Context, filter report.ReportFilter) ([]report.Report, error) {
	return nil, nil
}

func (r *fakeReportRepo) Replace(ctx context.Context, rec report.Report) (report.Report, error) {
	if _, ok := r.byID[rec.ID]; !ok {
		return report.Report{}, report.ErrReportNotFound
	}
	r.byID[rec.ID] = rec
	return rec, nil
}

func (r *fakeReportRepo) Delete(ctx context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

type fakeSessionRepo struct {
	sessions []session.Session
}

func (r *fakeSessionRepo) Create(ctx context.Context, s session.Session) (session.Session, error) {
	return s, nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id string) (session.Session, error) {
	return session.Session{}, session.ErrSessionNotFound
}

func (r *fakeSessionRepo) List(ctx context.Context, filter session.SessionFilter) ([]session.Session, error) {
	var out []session.Session
	for _, s := range r.sessions {
		if filter.PeriodMonth != nil && int(s.Date.Month()) != *filter.PeriodMonth {
			continue
		}
		if filter.PeriodYear != nil && s.Date.Year() != *filter.PeriodYear {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, req session.UpdateSessionRequest) error {
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id string) error { return nil }

func (r *fakeSessionRepo) Lock(ctx context.Context, ids []string) error { return nil }

type fakeClassRepo struct {
	classes []class.Class
}

func (r *fakeClassRepo) Create(ctx context.Context, c class.Class) (class.Class, error) {
	return c, nil
}

func (r *fakeClassRepo) GetByID(ctx context.Context, id string) (class.Class, error) {
	for _, c := range r.classes {
		if c.ID == id {
			return c, nil
		}
	}
	return class.Class{}, class.ErrClassNotFound
}

func (r *fakeClassRepo) List(ctx context.Context) ([]class.Class, error) {
	return r.classes, nil
}

func (r *fakeClassRepo) Update(ctx context.Context, req class.UpdateClassRequest) error { return nil }

func (r *fakeClassRepo) SoftDelete(ctx context.Context, id string) error { return nil }

func (r *fakeClassRepo) EnrollStudent(ctx context.Context, classID string, e class.Enrollment) error {
	return nil
}

func (r *fakeClassRepo) UnenrollStudent(ctx context.Context, classID, studentID string) error {
	return nil
}

func newTestService(repo *fakeReportRepo, sessions []session.Session, classes []class.Class) report.ReportService {
	return NewReportService(repo, &fakeSessionRepo{sessions: sessions}, &fakeClassRepo{classes: classes})
}

func TestGenerateReports_OnePiecePerClass(t *testing.T) {
	repo := newFakeReportRepo()
	classes := []class.Class{
		{ID: "c1", Name: "Toán 9A"},
		{ID: "c2", Name: "Lý 9A"},
	}
	sessions := []session.Session{
		statSession("c1", 4, session.StudentRecord{StudentID: "s1", Present: true}),
		statSession("c1", 11, session.StudentRecord{StudentID: "s1", Present: true}),
		statSession("c2", 5, session.StudentRecord{StudentID: "s1", Present: true}),
	}
	svc := newTestService(repo, sessions, classes)

	results, err := svc.GenerateReports(context.Background(), report.GenerateReportsRequest{
		PeriodMonth: 3, PeriodYear: 2024, StudentIDs: []string{"s1"},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, []string{"c1"}, results[0].ClassIDs)
	assert.Equal(t, 2, results[0].TotalSessions)
	assert.Equal(t, []string{"c2"}, results[1].ClassIDs)
}

func TestGenerateReports_DraftUpdatedInPlace(t *testing.T) {
	repo := newFakeReportRepo()
	classes := []class.Class{{ID: "c1", Name: "Toán 9A"}}
	sessions := []session.Session{
		statSession("c1", 4, session.StudentRecord{StudentID: "s1", Present: true}),
	}
	svc := newTestService(repo, sessions, classes)
	ctx := context.Background()

	first, err := svc.GenerateReports(ctx, report.GenerateReportsRequest{PeriodMonth: 3, PeriodYear: 2024, StudentIDs: []string{"s1"}})
	require.NoError(t, err)
	require.Len(t, first, 1)

	sessions = append(sessions,
		statSession("c1", 11, session.StudentRecord{StudentID: "s1", Present: true}),
	)
	svc = newTestService(repo, sessions, classes)

	second, err := svc.GenerateReports(ctx, report.GenerateReportsRequest{PeriodMonth: 3, PeriodYear: 2024, StudentIDs: []string{"s1"}})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID, "regeneration must not duplicate the piece")
	assert.Equal(t, 2, second[0].TotalSessions)
	assert.Len(t, repo.byID, 1)
}

func TestGenerateReports_ReviewedSnapshotUntouched(t *testing.T) {
	repo := newFakeReportRepo()
	submitted, _ := repo.Create(context.Background(), report.Report{
		StudentID:   "s1",
		PeriodMonth: 3, PeriodYear: 2024,
		ClassIDs: []string{"c1"},
		Stats:    []report.ClassStat{{ClassID: "c1", TotalSessions: 1, PresentSessions: 1}},
		Status:   report.ReportStatusSubmitted,
	})

	classes := []class.Class{{ID: "c1", Name: "Toán 9A"}}
	sessions := []session.Session{
		statSession("c1", 4, session.StudentRecord{StudentID: "s1", Present: true}),
		statSession("c1", 11, session.StudentRecord{StudentID: "s1", Present: true}),
	}
	svc := newTestService(repo, sessions, classes)

	results, err := svc.GenerateReports(context.Background(), report.GenerateReportsRequest{PeriodMonth: 3, PeriodYear: 2024, StudentIDs: []string{"s1"}})
	require.NoError(t, err)
	assert.Empty(t, results, "a reviewed piece is skipped, not regenerated")
	assert.Equal(t, 1, repo.byID[submitted.ID].Stats[0].TotalSessions, "submitted snapshot keeps its stats")
}

func TestWorkflow_SubmitApprove(t *testing.T) {
	repo := newFakeReportRepo()
	rec, _ := repo.Create(context.Background(), report.Report{
		StudentID:   "s1",
		PeriodMonth: 3, PeriodYear: 2024,
		ClassIDs: []string{"c1"},
		Status:   report.ReportStatusDraft,
	})
	svc := newTestService(repo, nil, nil)
	ctx := context.Background()

	resp, err := svc.Submit(ctx, report.SubmitReportRequest{ID: rec.ID, SubmittedBy: "frontdesk"})
	require.NoError(t, err)
	assert.Equal(t, string(report.ReportStatusSubmitted), resp.Status)
	require.NotNil(t, resp.SubmittedBy)
	assert.Equal(t, "frontdesk", *resp.SubmittedBy)

	// Submitting twice is invalid.
	_, err = svc.Submit(ctx, report.SubmitReportRequest{ID: rec.ID, SubmittedBy: "frontdesk"})
	assert.ErrorIs(t, err, report.ErrInvalidTransition)

	resp, err = svc.Approve(ctx, report.ApproveReportRequest{ID: rec.ID, ApprovedBy: "admin"})
	require.NoError(t, err)
	assert.Equal(t, string(report.ReportStatusApproved), resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, "admin", *resp.ApprovedBy)

	// An approved report cannot be approved again or commented on.
	_, err = svc.Approve(ctx, report.ApproveReportRequest{ID: rec.ID, ApprovedBy: "admin"})
	assert.ErrorIs(t, err, report.ErrReportNotSubmitted)

	_, err = svc.UpdateComment(ctx, report.UpdateCommentRequest{ID: rec.ID, Comment: strPtr("too late")})
	assert.ErrorIs(t, err, report.ErrReportFrozen)
}

func TestWorkflow_RejectBackToDraft(t *testing.T) {
	repo := newFakeReportRepo()
	rec, _ := repo.Create(context.Background(), report.Report{
		StudentID:   "s1",
		PeriodMonth: 3, PeriodYear: 2024,
		ClassIDs: []string{"c1"},
		Status:   report.ReportStatusDraft,
	})
	svc := newTestService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.Submit(ctx, report.SubmitReportRequest{ID: rec.ID, SubmittedBy: "frontdesk"})
	require.NoError(t, err)

	// Reason is mandatory.
	_, err = svc.Reject(ctx, report.RejectReportRequest{ID: rec.ID})
	assert.Error(t, err)

	resp, err := svc.Reject(ctx, report.RejectReportRequest{ID: rec.ID, Reason: "thiếu nhận xét"})
	require.NoError(t, err)
	assert.Equal(t, string(report.ReportStatusDraft), resp.Status)
	assert.Nil(t, resp.SubmittedAt, "submission metadata is cleared on rejection")
	require.NotNil(t, resp.RejectionReason)
	assert.Equal(t, "thiếu nhận xét", *resp.RejectionReason)

	// A resubmission clears the rejection reason.
	resp, err = svc.Submit(ctx, report.SubmitReportRequest{ID: rec.ID, SubmittedBy: "frontdesk"})
	require.NoError(t, err)
	assert.Nil(t, resp.RejectionReason)
}

func TestApproveBatch_PerItemResults(t *testing.T) {
	repo := newFakeReportRepo()
	ctx := context.Background()
	submitted, _ := repo.Create(ctx, report.Report{StudentID: "s1", Status: report.ReportStatusSubmitted})
	draft, _ := repo.Create(ctx, report.Report{StudentID: "s2", Status: report.ReportStatusDraft})
	svc := newTestService(repo, nil, nil)

	results, err := svc.ApproveBatch(ctx, report.ApproveBatchRequest{
		ReportIDs:  []string{submitted.ID, draft.ID, "missing"},
		ApprovedBy: "admin",
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK, "draft cannot be approved directly")
	assert.False(t, results[2].OK)
	assert.Equal(t, report.ReportStatusApproved, repo.byID[submitted.ID].Status)
	assert.Equal(t, report.ReportStatusDraft, repo.byID[draft.ID].Status)
}

func TestGetMergedReport_NoPieces(t *testing.T) {
	svc := newTestService(newFakeReportRepo(), nil, nil)
	_, err := svc.GetMergedReport(context.Background(), "s1", 3, 2024)
	assert.ErrorIs(t, err, report.ErrReportNotFound)
}
