package session

import (
	"context"
	"time"

	"github.com/classtrack/center-backend-go/internal/domain/class"
	"github.com/classtrack/center-backend-go/internal/domain/session"
)

type SessionServiceImpl struct {
	sessionRepo session.SessionRepository
	classRepo   class.ClassRepository
}

func NewSessionService(
	sessionRepo session.SessionRepository,
	classRepo class.ClassRepository,
) session.SessionService {
	return &SessionServiceImpl{
		sessionRepo: sessionRepo,
		classRepo:   classRepo,
	}
}

func (s *SessionServiceImpl) CreateSession(ctx context.Context, req session.CreateSessionRequest) (session.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return session.SessionResponse{}, err
	}

	c, err := s.classRepo.GetByID(ctx, req.ClassID)
	if err != nil {
		return session.SessionResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	created, err := s.sessionRepo.Create(ctx, session.Session{
		ClassID:   c.ID,
		TeacherID: req.TeacherID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Records:   toRecords(req.Records),
	})
	if err != nil {
		return session.SessionResponse{}, err
	}
	return toSessionResponse(created), nil
}

func (s *SessionServiceImpl) GetSession(ctx context.Context, id string) (session.SessionResponse, error) {
	sess, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return session.SessionResponse{}, err
	}
	return toSessionResponse(sess), nil
}

func (s *SessionServiceImpl) ListSessions(ctx context.Context, filter session.SessionFilter) ([]session.SessionResponse, error) {
	sessions, err := s.sessionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]session.SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		responses = append(responses, toSessionResponse(sess))
	}
	return responses, nil
}

func (s *SessionServiceImpl) UpdateSession(ctx context.Context, req session.UpdateSessionRequest) (session.SessionResponse, error) {
	if err := req.Validate(); err != nil {
		return session.SessionResponse{}, err
	}

	sess, err := s.sessionRepo.GetByID(ctx, req.ID)
	if err != nil {
		return session.SessionResponse{}, err
	}
	if sess.Locked {
		return session.SessionResponse{}, session.ErrSessionLocked
	}

	if err := s.sessionRepo.Update(ctx, req); err != nil {
		return session.SessionResponse{}, err
	}

	updated, err := s.sessionRepo.GetByID(ctx, req.ID)
	if err != nil {
		return session.SessionResponse{}, err
	}
	return toSessionResponse(updated), nil
}

func (s *SessionServiceImpl) DeleteSession(ctx context.Context, id string) error {
	sess, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sess.Locked {
		return session.ErrSessionLocked
	}
	return s.sessionRepo.Delete(ctx, id)
}

func toRecords(inputs []session.StudentRecordInput) []session.StudentRecord {
	records := make([]session.StudentRecord, 0, len(inputs))
	for _, in := range inputs {
		records = append(records, session.StudentRecord{
			StudentID:     in.StudentID,
			Present:       in.Present,
			Excused:       in.Excused,
			Late:          in.Late,
			HomeworkDone:  in.HomeworkDone,
			TestName:      in.TestName,
			TestScore:     in.TestScore,
			BonusPoints:   in.BonusPoints,
			Note:          in.Note,
			PriceOverride: in.PriceOverride,
		})
	}
	return records
}

func toSessionResponse(s session.Session) session.SessionResponse {
	return session.SessionResponse{
		ID:        s.ID,
		ClassID:   s.ClassID,
		ClassName: s.ClassName,
		TeacherID: s.TeacherID,
		Date:      s.Date.Format("2006-01-02"),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Records:   s.Records,
		Locked:    s.Locked,
	}
}
