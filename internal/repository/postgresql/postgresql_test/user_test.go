package postgresql_test

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timecard-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timecard-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func createTestUser(t *testing.T, repo user.UserRepository, email string) user.User {
	t.Helper()
	return createTestUserCtx(t, context.Background(), repo, email)
}

func createTestUserCtx(t *testing.T, ctx context.Context, repo user.UserRepository, email string) user.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	hashedStr := string(hashed)

	created, err := repo.Create(ctx, user.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: &hashedStr,
		Role:         user.RoleUser,
	})
	require.NoError(t, err)
	return created
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(setup.DB)

	created := createTestUser(t, repo, "test@example.com")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, user.RoleUser, created.Role)

	byEmail, err := repo.GetByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test User", byID.Name)

	exists, err := repo.ExistsByEmail(ctx, "test@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewUserRepository(setup.DB)

	createTestUser(t, repo, "dup@example.com")
	_, err := repo.Create(context.Background(), user.User{Name: "Other", Email: "dup@example.com", Role: user.RoleUser})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestUserRepository_NotFound(t *testing.T) {
	setup := NewTestDatabase(t)
	repo := postgresql.NewUserRepository(setup.DB)

	_, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_UpdateProfileAndLinkGoogle(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(setup.DB)

	created := createTestUser(t, repo, "profile@example.com")

	updated, err := repo.UpdateProfile(ctx, created.ID, "Renamed", user.RoleManager)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, user.RoleManager, updated.Role)

	linked, err := repo.LinkGoogleAccount(ctx, "google-123", "profile@example.com")
	require.NoError(t, err)
	require.NotNil(t, linked.OAuthProviderID)
	assert.Equal(t, "google-123", *linked.OAuthProviderID)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
