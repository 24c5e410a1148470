package auth

import (
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/user"
)

// Session is a server-side record of an issued session token. The token's
// jti claim carries the session ID.
type Session struct {
	ID        string
	UserID    string
	UserAgent string
	IPAddress string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the session is no longer valid at now.
func (s Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Identity is the acting user of a request, resolved from its session token.
type Identity struct {
	UserID    string
	SessionID string
	Email     string
	Role      user.Role
}
