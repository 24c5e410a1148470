package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timecard-backend-go/internal/repository/postgresql"
	userservice "github.com/cmlabs-hris/timecard-backend-go/internal/service/user"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx          postgresql.Transactor
	userRepo    user.UserRepository
	sessionRepo auth.SessionRepository
	jwtService  jwt.Service
	now         func() time.Time
}

func NewAuthService(tx postgresql.Transactor, userRepository user.UserRepository, sessionRepository auth.SessionRepository, jwtService jwt.Service, now func() time.Time) auth.AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthServiceImpl{
		tx:          tx,
		userRepo:    userRepository,
		sessionRepo: sessionRepository,
		jwtService:  jwtService,
		now:         now,
	}
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// issueSession stores a new session for u and signs its token.
func (a *AuthServiceImpl) issueSession(ctx context.Context, u user.User, sessionTrackReq auth.SessionTrackingRequest) (auth.SessionResponse, error) {
	sessionID, err := uuid.NewV7()
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to generate session id: %w", err)
	}

	now := a.now()
	token, expiresAt, err := a.jwtService.GenerateSessionToken(u.ID, u.Email, u.Role, sessionID.String(), now)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to create session token: %w", err)
	}

	err = a.sessionRepo.Create(ctx, auth.Session{
		ID:        sessionID.String(),
		UserID:    u.ID,
		UserAgent: sessionTrackReq.UserAgent,
		IPAddress: sessionTrackReq.IPAddress,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	})
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to save session: %w", err)
	}

	return auth.SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      userservice.ToUserResponse(u),
	}, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.SessionResponse, error) {
	if err := loginReq.Validate(); err != nil {
		return auth.SessionResponse{}, err
	}

	userData, err := a.userRepo.GetByEmail(ctx, normalizeEmail(loginReq.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.SessionResponse{}, auth.ErrInvalidCredentials
		}
		return auth.SessionResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !userData.HasPassword() {
		return auth.SessionResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.SessionResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueSession(ctx, userData, sessionTrackReq)
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, registerReq auth.RegisterRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.SessionResponse, error) {
	if err := registerReq.Validate(); err != nil {
		return auth.SessionResponse{}, err
	}

	email := normalizeEmail(registerReq.Email)
	exists, err := a.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.SessionResponse{}, user.ErrUserEmailExists
	}

	hashed, err := HashPassword(registerReq.Password)
	if err != nil {
		return auth.SessionResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var response auth.SessionResponse
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err := a.userRepo.Create(txCtx, user.User{
			Name:         strings.TrimSpace(registerReq.Name),
			Email:        email,
			PasswordHash: &hashed,
			Role:         user.RoleUser,
		})
		if err != nil {
			if errors.Is(err, user.ErrUserEmailExists) {
				return err
			}
			return fmt.Errorf("failed to create user: %w", err)
		}

		response, err = a.issueSession(txCtx, created, sessionTrackReq)
		return err
	})
	if err != nil {
		return auth.SessionResponse{}, err
	}

	slog.Info("User registered", "user_id", response.User.ID)
	return response, nil
}

// LoginWithGoogle implements auth.AuthService.
// An existing account with the same email is linked; otherwise a new
// password-less account is created.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, profile auth.GoogleProfile, sessionTrackReq auth.SessionTrackingRequest) (auth.SessionResponse, error) {
	email := normalizeEmail(profile.Email)

	var response auth.SessionResponse
	err := a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		userData, err := a.userRepo.GetByEmail(txCtx, email)
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			name := strings.TrimSpace(profile.Name)
			if name == "" {
				name = email
			}
			provider := "google"
			userData, err = a.userRepo.Create(txCtx, user.User{
				Name:            name,
				Email:           email,
				Role:            user.RoleUser,
				OAuthProvider:   &provider,
				OAuthProviderID: &profile.ID,
			})
			if err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to get user data by email: %w", err)
		case userData.OAuthProviderID == nil:
			userData, err = a.userRepo.LinkGoogleAccount(txCtx, profile.ID, email)
			if err != nil {
				return fmt.Errorf("failed to link google account: %w", err)
			}
		}

		response, err = a.issueSession(txCtx, userData, sessionTrackReq)
		return err
	})
	if err != nil {
		return auth.SessionResponse{}, err
	}
	return response, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context) error {
	identity, err := auth.IdentityFromContext(ctx)
	if err != nil {
		return err
	}
	if err := a.sessionRepo.Delete(ctx, identity.SessionID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// CheckSession implements auth.AuthService.
func (a *AuthServiceImpl) CheckSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return auth.ErrSessionNotFound
	}
	session, err := a.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.IsExpired(a.now()) {
		return auth.ErrSessionNotFound
	}
	return nil
}

// PurgeExpiredSessions implements auth.AuthService.
func (a *AuthServiceImpl) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return a.sessionRepo.DeleteExpired(ctx, a.now())
}
