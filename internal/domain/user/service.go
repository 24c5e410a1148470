package user

import (
	"context"
)

// UserService defines operations on the caller's own account.
type UserService interface {
	// GetCurrentUser returns the account behind the request's session
	GetCurrentUser(ctx context.Context) (UserResponse, error)

	// UpdateProfile changes the caller's name and role
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (UserResponse, error)
}
