package testfixtures

import (
	"context"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// ContextWithIdentity returns ctx carrying a verified session token for id,
// as the auth middleware would leave it.
func ContextWithIdentity(ctx context.Context, id auth.Identity) context.Context {
	token := jwt.New()
	claims := map[string]interface{}{
		auth.ClaimUserID:    id.UserID,
		auth.ClaimSessionID: id.SessionID,
		auth.ClaimEmail:     id.Email,
		auth.ClaimRole:      string(id.Role),
		auth.ClaimType:      auth.TokenTypeSession,
	}
	for k, v := range claims {
		if err := token.Set(k, v); err != nil {
			panic(err)
		}
	}
	return jwtauth.NewContext(ctx, token, nil)
}
