package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timecard-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests without a verified session token whose
// session is still stored. jwtauth.Verify must run first.
func AuthRequired(authService auth.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			identity, err := auth.IdentityFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if err := authService.CheckSession(r.Context(), identity.SessionID); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// HasSession reports whether r carries a verified token for a live session.
// Used by page routes, which redirect rather than answer with JSON.
func HasSession(r *http.Request, authService auth.AuthService) bool {
	identity, err := auth.IdentityFromContext(r.Context())
	if err != nil {
		return false
	}
	return authService.CheckSession(r.Context(), identity.SessionID) == nil
}
