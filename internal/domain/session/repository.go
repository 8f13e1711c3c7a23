package session

import "context"

type SessionRepository interface {
	Create(ctx context.Context, s Session) (Session, error)
	GetByID(ctx context.Context, id string) (Session, error)
	List(ctx context.Context, filter SessionFilter) ([]Session, error)
	Update(ctx context.Context, req UpdateSessionRequest) error
	Delete(ctx context.Context, id string) error

	// Lock marks sessions as snapshotted by a paid invoice; locked sessions
	// refuse updates and deletes.
	Lock(ctx context.Context, ids []string) error
}
