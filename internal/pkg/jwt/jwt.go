package jwt

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// SessionCookieName is the HTTP-only cookie that carries the session token.
const SessionCookieName = "auth_token"

type Service interface {
	GenerateSessionToken(userID string, email string, role user.Role, sessionID string, now time.Time) (token string, expiresAt time.Time, err error)
	JWTAuth() *jwtauth.JWTAuth
	SessionCookie(token string, expiresAt time.Time) *http.Cookie
	ClearSessionCookie() *http.Cookie
	SessionDuration() time.Duration
}

type JWTService struct {
	sessionDuration time.Duration
	secureCookie    bool
	tokenAuth       *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) SessionDuration() time.Duration {
	return j.sessionDuration
}

// NewJWTService builds the HS256 signer. sessionExpirationTime is a Go
// duration string such as "168h".
func NewJWTService(secretKey string, sessionExpirationTime string, secureCookie bool) (Service, error) {
	duration, err := time.ParseDuration(sessionExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid session expiration time %q: %w", sessionExpirationTime, err)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("session expiration time must be positive, got %s", duration)
	}
	return &JWTService{
		sessionDuration: duration,
		secureCookie:    secureCookie,
		tokenAuth:       jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}, nil
}

func (j *JWTService) GenerateSessionToken(userID string, email string, role user.Role, sessionID string, now time.Time) (token string, expiresAt time.Time, err error) {
	expiresAt = now.Add(j.sessionDuration)

	claims := map[string]interface{}{
		auth.ClaimUserID:    userID,
		auth.ClaimSessionID: sessionID,
		auth.ClaimEmail:     email,
		auth.ClaimRole:      string(role),
		auth.ClaimType:      auth.TokenTypeSession,
		"iat":               now.Unix(),
		"exp":               expiresAt.Unix(),
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) SessionCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(j.sessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func (j *JWTService) ClearSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

// TokenFromSessionCookie is a jwtauth token finder for the session cookie.
func TokenFromSessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
