package auth

import (
	"context"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// Session token claim names.
const (
	ClaimUserID    = "user_id"
	ClaimSessionID = "jti"
	ClaimEmail     = "email"
	ClaimRole      = "role"
	ClaimType      = "type"

	TokenTypeSession = "session"
)

// IdentityFromContext returns the identity carried by the verified session
// token that jwtauth stored in ctx.
func IdentityFromContext(ctx context.Context) (Identity, error) {
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return Identity{}, ErrInvalidToken
	}

	if tokenType, _ := claims[ClaimType].(string); tokenType != TokenTypeSession {
		return Identity{}, ErrInvalidToken
	}

	userID, ok := claims[ClaimUserID].(string)
	if !ok || userID == "" {
		return Identity{}, ErrInvalidToken
	}

	identity := Identity{
		UserID:    userID,
		SessionID: token.JwtID(),
	}
	identity.Email, _ = claims[ClaimEmail].(string)
	if role, ok := claims[ClaimRole].(string); ok {
		identity.Role = user.Role(role)
	}
	return identity, nil
}
