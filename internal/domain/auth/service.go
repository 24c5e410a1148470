package auth

import (
	"context"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest, sessionTrackReq SessionTrackingRequest) (SessionResponse, error)
	Login(ctx context.Context, req LoginRequest, sessionTrackReq SessionTrackingRequest) (SessionResponse, error)
	LoginWithGoogle(ctx context.Context, profile GoogleProfile, sessionTrackReq SessionTrackingRequest) (SessionResponse, error)
	Logout(ctx context.Context) error

	// CheckSession returns ErrSessionNotFound unless sessionID is live
	CheckSession(ctx context.Context, sessionID string) error

	// PurgeExpiredSessions deletes expired sessions and returns how many were removed
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}
