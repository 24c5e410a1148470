package auth

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timecard-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timecard-backend-go/internal/testfixtures"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

var trackReq = auth.SessionTrackingRequest{UserAgent: "go-test", IPAddress: "127.0.0.1"}

type authFixture struct {
	store *testfixtures.Store
	clock *testfixtures.Clock
	jwt   jwt.Service
	svc   auth.AuthService
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	store := testfixtures.NewStore()
	clock := testfixtures.NewClock(time.Now())
	jwtService, err := jwt.NewJWTService(testSecret, "168h", false)
	require.NoError(t, err)
	return authFixture{
		store: store,
		clock: clock,
		jwt:   jwtService,
		svc:   NewAuthService(testfixtures.Transactor{}, store.Users(), store.Sessions(), jwtService, clock.NowFunc()),
	}
}

// contextFor verifies token like the auth middleware does and returns the
// resulting request context.
func (f authFixture) contextFor(t *testing.T, token string) context.Context {
	t.Helper()
	decoded, err := jwtauth.VerifyToken(f.jwt.JWTAuth(), token)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), decoded, nil)
}

func registerReq(email string) auth.RegisterRequest {
	return auth.RegisterRequest{Name: "Taro", Email: email, Password: "password123", ConfirmPassword: "password123"}
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newAuthFixture(t)

	resp, err := f.svc.Register(context.Background(), registerReq("Taro@Example.com"), trackReq)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "taro@example.com", resp.User.Email)
	assert.Equal(t, "user", resp.User.Role)
	assert.Equal(t, 1, f.store.SessionCount())

	stored, err := f.store.Users().GetByEmail(context.Background(), "taro@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, "password123", *stored.PasswordHash)
}

func TestAuthService_Register_Errors(t *testing.T) {
	f := newAuthFixture(t)

	mismatch := registerReq("a@example.com")
	mismatch.ConfirmPassword = "different1"
	_, err := f.svc.Register(context.Background(), mismatch, trackReq)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = f.svc.Register(context.Background(), registerReq("a@example.com"), trackReq)
	require.NoError(t, err)
	_, err = f.svc.Register(context.Background(), registerReq("a@example.com"), trackReq)
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.Register(context.Background(), registerReq("login@example.com"), trackReq)
	require.NoError(t, err)

	resp, err := f.svc.Login(context.Background(), auth.LoginRequest{Email: "login@example.com", Password: "password123"}, trackReq)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = f.svc.Login(context.Background(), auth.LoginRequest{Email: "login@example.com", Password: "wrong-password"}, trackReq)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// unknown email gets the same error
	_, err = f.svc.Login(context.Background(), auth.LoginRequest{Email: "nobody@example.com", Password: "password123"}, trackReq)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_LoginGoogleOnlyAccountHasNoPassword(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.LoginWithGoogle(context.Background(), auth.GoogleProfile{ID: "g-1", Email: "g@example.com", Name: "G"}, trackReq)
	require.NoError(t, err)

	_, err = f.svc.Login(context.Background(), auth.LoginRequest{Email: "g@example.com", Password: "anything1"}, trackReq)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_LoginWithGoogle_LinksExistingUser(t *testing.T) {
	f := newAuthFixture(t)
	registered, err := f.svc.Register(context.Background(), registerReq("link@example.com"), trackReq)
	require.NoError(t, err)

	resp, err := f.svc.LoginWithGoogle(context.Background(), auth.GoogleProfile{ID: "g-2", Email: "link@example.com"}, trackReq)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)
	require.NotNil(t, resp.User.OAuthProvider)
	assert.Equal(t, "google", *resp.User.OAuthProvider)
}

func TestAuthService_LogoutEndsSession(t *testing.T) {
	f := newAuthFixture(t)
	resp, err := f.svc.Register(context.Background(), registerReq("out@example.com"), trackReq)
	require.NoError(t, err)

	ctx := f.contextFor(t, resp.Token)
	identity, err := auth.IdentityFromContext(ctx)
	require.NoError(t, err)
	require.NoError(t, f.svc.CheckSession(ctx, identity.SessionID))

	require.NoError(t, f.svc.Logout(ctx))
	assert.ErrorIs(t, f.svc.CheckSession(ctx, identity.SessionID), auth.ErrSessionNotFound)
	assert.Equal(t, 0, f.store.SessionCount())
}

func TestAuthService_SessionExpiry(t *testing.T) {
	f := newAuthFixture(t)
	resp, err := f.svc.Register(context.Background(), registerReq("exp@example.com"), trackReq)
	require.NoError(t, err)
	identity, err := auth.IdentityFromContext(f.contextFor(t, resp.Token))
	require.NoError(t, err)

	f.clock.Advance(7*24*time.Hour + time.Minute)
	assert.ErrorIs(t, f.svc.CheckSession(context.Background(), identity.SessionID), auth.ErrSessionNotFound)

	purged, err := f.svc.PurgeExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
	assert.Equal(t, 0, f.store.SessionCount())
}

func TestAuthService_CheckSessionRejectsEmptyID(t *testing.T) {
	f := newAuthFixture(t)
	assert.ErrorIs(t, f.svc.CheckSession(context.Background(), ""), auth.ErrSessionNotFound)
}
