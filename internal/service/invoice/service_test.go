package invoice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/classtrack/center-backend-go/internal/domain/class"
	"github.com/classtrack/center-backend-go/internal/domain/invoice"
	"github.com/classtrack/center-backend-go/internal/domain/session"
	"github.com/classtrack/center-backend-go/internal/service/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes. Only the methods the service exercises are meaningful;
// the rest satisfy the interfaces.

type fakeInvoiceRepo struct {
	byID   map[string]invoice.Invoice
	nextID int
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{byID: make(map[string]invoice.Invoice)}
}

func (r *fakeInvoiceRepo) Create(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	r.nextID++
	inv.ID = fmt.Sprintf("inv-%d", r.nextID)
	if inv.Version == 0 {
		inv.Version = 1
	}
	r.byID[inv.ID] = inv
	return inv, nil
}

func (r *fakeInvoiceRepo) GetByID(ctx context.Context, id string) (invoice.Invoice, error) {
	inv, ok := r.byID[id]
	if !ok {
		return invoice.Invoice{}, invoice.ErrInvoiceNotFound
	}
	return inv, nil
}

func (r *fakeInvoiceRepo) GetByStudentPeriod(ctx context.Context, studentID string, month, year int) (invoice.Invoice, error) {
	for _, inv := range r.byID {
		if inv.StudentID == studentID && inv.PeriodMonth == month && inv.PeriodYear == year {
			return inv, nil
		}
	}
	return invoice.Invoice{}, invoice.ErrInvoiceNotFound
}

func (r *fakeInvoiceRepo) List(ctx context.Context, filter invoice.InvoiceFilter) ([]invoice.Invoice, int64, error) {
	return nil, 0, nil
}

func (r *fakeInvoiceRepo) ListBefore(ctx context.Context, studentID string, month, year int) ([]invoice.Invoice, error) {
	var out []invoice.Invoice
	for _, inv := range r.byID {
		if inv.StudentID != studentID {
			continue
		}
		if inv.PeriodYear < year || (inv.PeriodYear == year && inv.PeriodMonth < month) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Replace(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	stored, ok := r.byID[inv.ID]
	if !ok {
		return invoice.Invoice{}, invoice.ErrInvoiceNotFound
	}
	if stored.Status == invoice.InvoiceStatusPaid {
		return invoice.Invoice{}, invoice.ErrInvoiceAlreadyPaid
	}
	if stored.Version != inv.Version {
		return invoice.Invoice{}, invoice.ErrVersionConflict
	}
	inv.Version++
	r.byID[inv.ID] = inv
	return inv, nil
}

func (r *fakeInvoiceRepo) MarkPaid(ctx context.Context, id, paidBy, bankInfo string) (invoice.Invoice, error) {
	return invoice.Invoice{}, nil
}

func (r *fakeInvoiceRepo) Delete(ctx context.Context, id string) error {
	inv, ok := r.byID[id]
	if !ok {
		return invoice.ErrInvoiceNotFound
	}
	if inv.Status == invoice.InvoiceStatusPaid {
		return invoice.ErrCannotDeletePaidInvoice
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeInvoiceRepo) GetSummary(ctx context.Context, month, year int) (invoice.InvoiceSummaryResponse, error) {
	return invoice.InvoiceSummaryResponse{}, nil
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
		if filter.DateTo != nil && s.Date.After(*filter.DateTo) {
			continue
		}
		if filter.StudentID != nil {
			if _, ok := s.RecordFor(*filter.StudentID); !ok {
				continue
			}
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

type fakeCourseRepo struct {
	courses []class.Course
}

func (r *fakeCourseRepo) Create(ctx context.Context, c class.Course) (class.Course, error) {
	return c, nil
}

func (r *fakeCourseRepo) List(ctx context.Context) ([]class.Course, error) {
	return r.courses, nil
}

func (r *fakeCourseRepo) Update(ctx context.Context, req class.UpdateCourseRequest) error {
	return nil
}

func (r *fakeCourseRepo) Delete(ctx context.Context, id string) error { return nil }

func newTestService(invoiceRepo *fakeInvoiceRepo, sessions []session.Session, classes []class.Class, courses []class.Course) invoice.InvoiceService {
	return NewInvoiceService(
		nil,
		invoiceRepo,
		&fakeSessionRepo{sessions: sessions},
		&fakeClassRepo{classes: classes},
		&fakeCourseRepo{courses: courses},
		pricing.NewResolver(nil, pricing.PolicyLenient),
		"VCB 0123456789",
	)
}

func TestGenerateInvoices_CreatesPerStudent(t *testing.T) {
	repo := newFakeInvoiceRepo()
	classes := []class.Class{{ID: "c1", SessionPrice: decPtr(200000)}}
	sessions := []session.Session{
		attSession("se1", "c1", day(4),
			session.StudentRecord{StudentID: "s1", Present: true},
			session.StudentRecord{StudentID: "s2", Present: true},
		),
		attSession("se2", "c1", day(11),
			session.StudentRecord{StudentID: "s1", Present: true},
			session.StudentRecord{StudentID: "s2"},
		),
	}
	svc := newTestService(repo, sessions, classes, nil)

	results, err := svc.GenerateInvoices(context.Background(), invoice.GenerateInvoicesRequest{
		PeriodMonth: 3, PeriodYear: 2024,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "s1", results[0].StudentID)
	assert.Equal(t, 2, results[0].TotalSessions)
	assert.True(t, results[0].FinalAmount.Equal(dec(400000)))

	assert.Equal(t, "s2", results[1].StudentID)
	assert.Equal(t, 1, results[1].TotalSessions)
	assert.True(t, results[1].FinalAmount.Equal(dec(200000)))
}

func TestGenerateInvoices_MergesIntoUnpaid(t *testing.T) {
	repo := newFakeInvoiceRepo()
	classes := []class.Class{{ID: "c1", SessionPrice: decPtr(200000)}}
	sessions := []session.Session{
		attSession("se1", "c1", day(4), session.StudentRecord{StudentID: "s1", Present: true}),
	}
	svc := newTestService(repo, sessions, classes, nil)
	ctx := context.Background()

	first, err := svc.GenerateInvoices(ctx, invoice.GenerateInvoicesRequest{PeriodMonth: 3, PeriodYear: 2024})
	require.NoError(t, err)
	require.Len(t, first, 1)

	// New attendance lands, the month is regenerated.
	moreSessions := append(sessions,
		attSession("se2", "c1", day(11), session.StudentRecord{StudentID: "s1", Present: true}),
	)
	svc = newTestService(repo, moreSessions, classes, nil)

	second, err := svc.GenerateInvoices(ctx, invoice.GenerateInvoicesRequest{PeriodMonth: 3, PeriodYear: 2024})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID, "regeneration merges, never duplicates the invoice")
	assert.Equal(t, 2, second[0].TotalSessions)
	assert.True(t, second[0].FinalAmount.Equal(dec(400000)))
}

func TestGenerateInvoices_PaidInvoiceUntouched(t *testing.T) {
	repo := newFakeInvoiceRepo()
	paid := invoice.Invoice{
		StudentID:   "s1",
		PeriodMonth: 3, PeriodYear: 2024,
		Lines:       []invoice.Line{{SessionID: "se1", ClassID: "c1", Date: day(4), Price: dec(200000)}},
		FinalAmount: dec(200000),
		Status:      invoice.InvoiceStatusPaid,
	}
	paid, _ = repo.Create(context.Background(), paid)

	classes := []class.Class{{ID: "c1", SessionPrice: decPtr(200000)}}
	sessions := []session.Session{
		attSession("se1", "c1", day(4), session.StudentRecord{StudentID: "s1", Present: true}),
		attSession("se2", "c1", day(11), session.StudentRecord{StudentID: "s1", Present: true}),
	}
	svc := newTestService(repo, sessions, classes, nil)

	results, err := svc.GenerateInvoices(context.Background(), invoice.GenerateInvoicesRequest{PeriodMonth: 3, PeriodYear: 2024})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Len(t, repo.byID[paid.ID].Lines, 1, "stored paid invoice keeps its single line")
	assert.True(t, results[0].FinalAmount.Equal(dec(200000)), "paid amount is frozen")
}

func TestGenerateInvoices_NoBillableSessionsSkips(t *testing.T) {
	repo := newFakeInvoiceRepo()
	classes := []class.Class{{ID: "c1", SessionPrice: decPtr(200000)}}
	sessions := []session.Session{
		attSession("se1", "c1", day(4), session.StudentRecord{StudentID: "s1"}),
	}
	svc := newTestService(repo, sessions, classes, nil)

	results, err := svc.GenerateInvoices(context.Background(), invoice.GenerateInvoicesRequest{
		PeriodMonth: 3, PeriodYear: 2024, StudentIDs: []string{"s1"},
	})
	require.NoError(t, err)
	assert.Empty(t, results, "fully absent student gets no invoice")
	assert.Empty(t, repo.byID)
}

func TestUpdateInvoice_StaleVersionRejected(t *testing.T) {
	repo := newFakeInvoiceRepo()
	inv, _ := repo.Create(context.Background(), invoice.Invoice{
		StudentID:   "s1",
		PeriodMonth: 3, PeriodYear: 2024,
		Status: invoice.InvoiceStatusUnpaid,
	})
	svc := newTestService(repo, nil, nil, nil)
	ctx := context.Background()

	// First edit bumps the stored version to 2.
	_, err := svc.UpdateInvoice(ctx, invoice.UpdateInvoiceRequest{ID: inv.ID, Version: 1, Discount: decPtr(50000)})
	require.NoError(t, err)

	// A concurrent editor still holding version 1 must lose.
	_, err = svc.UpdateInvoice(ctx, invoice.UpdateInvoiceRequest{ID: inv.ID, Version: 1, Notes: strPtr("late fee waived")})
	assert.ErrorIs(t, err, invoice.ErrVersionConflict)

	_, err = svc.UpdateInvoice(ctx, invoice.UpdateInvoiceRequest{ID: inv.ID, Version: 2, Notes: strPtr("late fee waived")})
	assert.NoError(t, err)
}

func TestUpdateInvoice_PaidIsImmutable(t *testing.T) {
	repo := newFakeInvoiceRepo()
	inv, _ := repo.Create(context.Background(), invoice.Invoice{
		StudentID:   "s1",
		PeriodMonth: 3, PeriodYear: 2024,
		Status: invoice.InvoiceStatusPaid,
	})
	svc := newTestService(repo, nil, nil, nil)

	_, err := svc.UpdateInvoice(context.Background(), invoice.UpdateInvoiceRequest{ID: inv.ID, Version: 1, Discount: decPtr(50000)})
	assert.ErrorIs(t, err, invoice.ErrInvoiceAlreadyPaid)
}

func TestBulkDelete_PerItemResults(t *testing.T) {
	repo := newFakeInvoiceRepo()
	ctx := context.Background()
	unpaid, _ := repo.Create(ctx, invoice.Invoice{StudentID: "s1", Status: invoice.InvoiceStatusUnpaid})
	paid, _ := repo.Create(ctx, invoice.Invoice{StudentID: "s2", Status: invoice.InvoiceStatusPaid})
	svc := newTestService(repo, nil, nil, nil)

	results, err := svc.BulkDelete(ctx, invoice.BulkDeleteRequest{
		InvoiceIDs: []string{unpaid.ID, paid.ID, "missing"},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK, "paid invoice must survive a bulk delete")
	assert.False(t, results[2].OK)
	assert.NotEmpty(t, results[1].Error)
}

func TestGetOutstanding_MixedSources(t *testing.T) {
	repo := newFakeInvoiceRepo()
	ctx := context.Background()

	// January carries an unpaid invoice; February was never invoiced but
	// has attendance.
	_, err := repo.Create(ctx, invoice.Invoice{
		StudentID:   "s1",
		PeriodMonth: 1, PeriodYear: 2024,
		FinalAmount: dec(800000),
		Status:      invoice.InvoiceStatusUnpaid,
	})
	require.NoError(t, err)

	classes := []class.Class{{ID: "c1", SessionPrice: decPtr(200000)}}
	sessions := []session.Session{
		{ID: "se1", ClassID: "c1", Date: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
			Records: []session.StudentRecord{{StudentID: "s1", Present: true}}},
		{ID: "se2", ClassID: "c1", Date: time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC),
			Records: []session.StudentRecord{{StudentID: "s1", Present: true}}},
	}
	svc := newTestService(repo, sessions, classes, nil)

	resp, err := svc.GetOutstanding(ctx, "s1", 3, 2024)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "invoice", resp.Entries[0].Source)
	assert.True(t, resp.Entries[0].Amount.Equal(dec(800000)))
	assert.Equal(t, "sessions", resp.Entries[1].Source)
	assert.True(t, resp.Entries[1].Amount.Equal(dec(400000)))
	assert.True(t, resp.Total.Equal(dec(1200000)))
}

func strPtr(s string) *string { return &s }
