package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrSessionNotFound    = errors.New("session has ended, please sign in again")
	ErrOAuthNotConfigured = errors.New("sign in with google is not configured")
	ErrOAuthStateMismatch = errors.New("oauth state does not match")
)
