package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/classtrack/center-backend-go/internal/domain/class"
	"github.com/classtrack/center-backend-go/internal/domain/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionRepo struct {
	byID   map[string]session.Session
	nextID int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byID: make(map[string]session.Session)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, s session.Session) (session.Session, error) {
	r.nextID++
	s.ID = fmt.Sprintf("se-%d", r.nextID)
	r.byID[s.ID] = s
	return s, nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id string) (session.Session, error) {
	s, ok := r.byID[id]
	if !ok {
		return session.Session{}, session.ErrSessionNotFound
	}
	return s, nil
}

func (r *fakeSessionRepo) List(ctx context.Context, filter session.SessionFilter) ([]session.Session, error) {
	return nil, nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, req session.UpdateSessionRequest) error {
	s, ok := r.byID[req.ID]
	if !ok {
		return session.ErrSessionNotFound
	}
	if s.Locked {
		return session.ErrSessionLocked
	}
	if req.StartTime != nil {
		s.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		s.EndTime = *req.EndTime
	}
	r.byID[req.ID] = s
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	s, ok := r.byID[id]
	if !ok {
		return session.ErrSessionNotFound
	}
	if s.Locked {
		return session.ErrSessionLocked
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeSessionRepo) Lock(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if s, ok := r.byID[id]; ok {
			s.Locked = true
			r.byID[id] = s
		}
	}
	return nil
}

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

func strPtr(s string) *string { return &s }

func TestCreateSession(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := NewSessionService(repo, &fakeClassRepo{classes: []class.Class{{ID: "c1", Name: "Toán 9A"}}})

	resp, err := svc.CreateSession(context.Background(), session.CreateSessionRequest{
		ClassID:   "c1",
		Date:      "2024-03-04",
		StartTime: "8:00",
		EndTime:   "9:30",
		Records: []session.StudentRecordInput{
			{StudentID: "s1", Present: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", resp.Date)
	require.Len(t, resp.Records, 1)
	assert.False(t, resp.Locked)
}

func TestCreateSession_UnknownClass(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), &fakeClassRepo{})

	_, err := svc.CreateSession(context.Background(), session.CreateSessionRequest{
		ClassID:   "ghost",
		Date:      "2024-03-04",
		StartTime: "8:00",
		EndTime:   "9:30",
	})
	assert.ErrorIs(t, err, class.ErrClassNotFound)
}

func TestUpdateSession_LockedRefused(t *testing.T) {
	repo := newFakeSessionRepo()
	sess, _ := repo.Create(context.Background(), session.Session{
		ClassID:   "c1",
		Date:      time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		StartTime: "8:00",
		EndTime:   "9:30",
	})
	require.NoError(t, repo.Lock(context.Background(), []string{sess.ID}))

	svc := NewSessionService(repo, &fakeClassRepo{})

	_, err := svc.UpdateSession(context.Background(), session.UpdateSessionRequest{
		ID:        sess.ID,
		StartTime: strPtr("9:00"),
	})
	assert.ErrorIs(t, err, session.ErrSessionLocked)

	err = svc.DeleteSession(context.Background(), sess.ID)
	assert.ErrorIs(t, err, session.ErrSessionLocked)
}

func TestUpdateSession(t *testing.T) {
	repo := newFakeSessionRepo()
	sess, _ := repo.Create(context.Background(), session.Session{
		ClassID:   "c1",
		Date:      time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		StartTime: "8:00",
		EndTime:   "9:30",
	})
	svc := NewSessionService(repo, &fakeClassRepo{})

	resp, err := svc.UpdateSession(context.Background(), session.UpdateSessionRequest{
		ID:        sess.ID,
		StartTime: strPtr("8:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "8:30", resp.StartTime)
	assert.Equal(t, "9:30", resp.EndTime)
}
