package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{UserRepository: userRepository}
}

// ToUserResponse maps a stored user to its API shape.
func ToUserResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          string(u.Role),
		OAuthProvider: u.OAuthProvider,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     u.UpdatedAt.Format(time.RFC3339),
	}
}

// GetCurrentUser implements user.UserService.
func (s *UserServiceImpl) GetCurrentUser(ctx context.Context) (user.UserResponse, error) {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.GetByID(ctx, identity.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return ToUserResponse(u), nil
}

// UpdateProfile implements user.UserService.
// Only an account that already holds the admin role may keep or grant it.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}

	current, err := s.GetByID(ctx, identity.UserID)
	if err != nil {
		return user.UserResponse{}, err
	}

	role := user.Role(req.Role)
	if role == user.RoleAdmin && !current.IsAdmin() {
		return user.UserResponse{}, user.ErrAdminPrivilegeRequired
	}

	updated, err := s.UserRepository.UpdateProfile(ctx, current.ID, req.Name, role)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update profile: %w", err)
	}

	if updated.Role != current.Role {
		slog.Info("User role changed", "user_id", updated.ID, "from", current.Role, "to", updated.Role)
	}
	return ToUserResponse(updated), nil
}
