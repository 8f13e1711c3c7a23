package session

import "context"

// SessionService defines business logic for attendance sessions.
type SessionService interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (SessionResponse, error)
	GetSession(ctx context.Context, id string) (SessionResponse, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]SessionResponse, error)
	UpdateSession(ctx context.Context, req UpdateSessionRequest) (SessionResponse, error)
	DeleteSession(ctx context.Context, id string) error
}
