package auth

import (
	"context"
	"time"
)

// SessionRepository persists issued sessions so that logout can end them
// before the token expires.
type SessionRepository interface {
	Create(ctx context.Context, session Session) error

	// GetByID returns ErrSessionNotFound when no session has id
	GetByID(ctx context.Context, id string) (Session, error)

	Delete(ctx context.Context, id string) error

	// DeleteExpired removes every session that expired at or before now
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
