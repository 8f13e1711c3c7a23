package salary

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/classtrack/center-backend-go/internal/domain/class"
	"github.com/classtrack/center-backend-go/internal/domain/salary"
	"github.com/classtrack/center-backend-go/internal/domain/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSalaryRepo struct {
	byID   map[string]salary.Salary
	nextID int
}

func newFakeSalaryRepo() *fakeSalaryRepo {
	return &fakeSalaryRepo{byID: make(map[string]salary.Salary)}
}

func (r *fakeSalaryRepo) Create(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	r.nextID++
	s.ID = fmt.Sprintf("sal-%d", r.nextID)
	r.byID[s.ID] = s
	return s, nil
}

func (r *fakeSalaryRepo) GetByID(ctx context.Context, id string) (salary.Salary, error) {
	s, ok := r.byID[id]
	if !ok {
		return salary.Salary{}, salary.ErrSalaryNotFound
	}
	return s, nil
}

func (r *fakeSalaryRepo) GetByTeacherPeriod(ctx context.Context, teacherID string, month, year int) (salary.Salary, error) {
	for _, s := range r.byID {
		if s.TeacherID == teacherID && s.PeriodMonth == month && s.PeriodYear == year {
			return s, nil
		}
	}
	return salary.Salary{}, salary.ErrSalaryNotFound
}

func (r *fakeSalaryRepo) List(ctx context.Context, filter salary.SalaryFilter) ([]salary.Salary, error) {
	return nil, nil
}

func (r *fakeSalaryRepo) Replace(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	stored, ok := r.byID[s.ID]
	if !ok {
		return salary.Salary{}, salary.ErrSalaryNotFound
	}
	if stored.Status == salary.SalaryStatusPaid {
		return salary.Salary{}, salary.ErrSalaryAlreadyPaid
	}
	r.byID[s.ID] = s
	return s, nil
}

func (r *fakeSalaryRepo) MarkPaid(ctx context.Context, id, paidBy string) (salary.Salary, error) {
	s, ok := r.byID[id]
	if !ok {
		return salary.Salary{}, salary.ErrSalaryNotFound
	}
	if s.Status == salary.SalaryStatusPaid {
		return salary.Salary{}, salary.ErrSalaryAlreadyPaid
	}
	now := time.Now()
	s.Status = salary.SalaryStatusPaid
	s.PaidAt = &now
	s.PaidBy = &paidBy
	r.byID[id] = s
	return s, nil
}

func (r *fakeSalaryRepo) Delete(ctx context.Context, id string) error {
	s, ok := r.byID[id]
	if !ok {
		return salary.ErrSalaryNotFound
	}
	if s.Status == salary.SalaryStatusPaid {
		return salary.ErrCannotDeletePaidSalary
	}
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

func newTestService(repo *fakeSalaryRepo, sessions []session.Session, classes []class.Class) salary.SalaryService {
	return NewSalaryService(repo, &fakeSessionRepo{sessions: sessions}, &fakeClassRepo{classes: classes})
}

func TestGenerateSalaries_CreatesPerTeacher(t *testing.T) {
	repo := newFakeSalaryRepo()
	classes := []class.Class{
		{ID: "c1", Name: "Toán 9A", TeacherID: strPtr("t1"), TeacherRate: dec(200000)},
		{ID: "c2", Name: "Văn 8B", TeacherID: strPtr("t2"), TeacherRate: dec(150000)},
	}
	sessions := []session.Session{
		taughtSession("se1", "c1", 4, "8:00", "9:30"),
		taughtSession("se2", "c2", 5, "14:00", "15:30"),
	}
	svc := newTestService(repo, sessions, classes)

	results, err := svc.GenerateSalaries(context.Background(), salary.GenerateSalariesRequest{
		PeriodMonth: 3, PeriodYear: 2024,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "t1", results[0].TeacherID)
	assert.True(t, results[0].TotalSalary.Equal(dec(200000)))
	assert.Equal(t, "t2", results[1].TeacherID)
}

func TestGenerateSalaries_DraftRecomputed(t *testing.T) {
	repo := newFakeSalaryRepo()
	classes := []class.Class{
		{ID: "c1", TeacherID: strPtr("t1"), TeacherRate: dec(200000)},
	}
	sessions := []session.Session{
		taughtSession("se1", "c1", 4, "8:00", "9:30"),
	}
	svc := newTestService(repo, sessions, classes)
	ctx := context.Background()

	first, err := svc.GenerateSalaries(ctx, salary.GenerateSalariesRequest{PeriodMonth: 3, PeriodYear: 2024})
	require.NoError(t, err)
	require.Len(t, first, 1)

	sessions = append(sessions, taughtSession("se2", "c1", 11, "8:00", "9:30"))
	svc = newTestService(repo, sessions, classes)

	second, err := svc.GenerateSalaries(ctx, salary.GenerateSalariesRequest{PeriodMonth: 3, PeriodYear: 2024})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, 2, second[0].TotalSessions)
	assert.True(t, second[0].TotalSalary.Equal(dec(400000)))
}

func TestGenerateSalaries_PaidReturnedVerbatim(t *testing.T) {
	repo := newFakeSalaryRepo()
	paid, _ := repo.Create(context.Background(), salary.Salary{
		TeacherID:   "t1",
		PeriodMonth: 3, PeriodYear: 2024,
		TotalSessions: 1,
		TotalSalary:   dec(200000),
		Status:        salary.SalaryStatusPaid,
	})

	classes := []class.Class{
		{ID: "c1", TeacherID: strPtr("t1"), TeacherRate: dec(200000)},
	}
	sessions := []session.Session{
		taughtSession("se1", "c1", 4, "8:00", "9:30"),
		taughtSession("se2", "c1", 11, "8:00", "9:30"),
	}
	svc := newTestService(repo, sessions, classes)

	results, err := svc.GenerateSalaries(context.Background(), salary.GenerateSalariesRequest{PeriodMonth: 3, PeriodYear: 2024})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].TotalSessions, "paid statement is never rebuilt")
	assert.Equal(t, 1, repo.byID[paid.ID].TotalSessions)
}

func TestGenerateSalaries_NoSessionsSkips(t *testing.T) {
	repo := newFakeSalaryRepo()
	classes := []class.Class{
		{ID: "c1", TeacherID: strPtr("t1"), TeacherRate: dec(200000)},
	}
	svc := newTestService(repo, nil, classes)

	results, err := svc.GenerateSalaries(context.Background(), salary.GenerateSalariesRequest{
		PeriodMonth: 3, PeriodYear: 2024, TeacherIDs: []string{"t1"},
	})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, repo.byID)
}

func TestSalaryMarkPaid_PerItemResults(t *testing.T) {
	repo := newFakeSalaryRepo()
	ctx := context.Background()
	unpaid, _ := repo.Create(ctx, salary.Salary{TeacherID: "t1", Status: salary.SalaryStatusUnpaid})
	paid, _ := repo.Create(ctx, salary.Salary{TeacherID: "t2", Status: salary.SalaryStatusPaid})
	svc := newTestService(repo, nil, nil)

	results, err := svc.MarkPaid(ctx, salary.MarkPaidRequest{
		SalaryIDs: []string{unpaid.ID, paid.ID, "missing"},
	}, "admin")
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
	assert.False(t, results[2].OK)

	stored := repo.byID[unpaid.ID]
	assert.Equal(t, salary.SalaryStatusPaid, stored.Status)
	require.NotNil(t, stored.PaidBy)
	assert.Equal(t, "admin", *stored.PaidBy)
}
