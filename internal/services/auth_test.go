package services_test

import (
	"context"
	"testing"
	"time"

	"project-tracker/internal/models"
	"project-tracker/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	st, _ := newTestStore(t)
	register := services.NewRegisterService(st)
	auth := services.NewAuthService(st, "test-secret", time.Hour, 24*time.Hour)
	ctx := context.Background()

	user, err := register.RegisterUser(ctx, services.RegistrationRequest{
		Username: "alice",
		Password: "correct-horse",
		Role:     models.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleManager, user.Role)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	loggedIn, err := auth.LoginUser(ctx, "alice", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, err = auth.LoginUser(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = auth.LoginUser(ctx, "nobody", "correct-horse")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	st, _ := newTestStore(t)
	register := services.NewRegisterService(st)
	ctx := context.Background()

	_, err := register.RegisterUser(ctx, services.RegistrationRequest{
		Username: "alice",
		Password: "correct-horse",
		Role:     models.RoleViewer,
	})
	require.NoError(t, err)

	_, err = register.RegisterUser(ctx, services.RegistrationRequest{
		Username: "alice",
		Password: "another-pass",
		Role:     models.RoleEditor,
	})
	assert.ErrorIs(t, err, services.ErrDuplicateUsername)
}

func TestRegisterValidatesRole(t *testing.T) {
	st, _ := newTestStore(t)
	register := services.NewRegisterService(st)

	_, err := register.RegisterUser(context.Background(), services.RegistrationRequest{
		Username: "bob",
		Password: "correct-horse",
		Role:     "Admin",
	})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestLoginDoesNotMutateRole(t *testing.T) {
	st, _ := newTestStore(t)
	register := services.NewRegisterService(st)
	auth := services.NewAuthService(st, "test-secret", time.Hour, 24*time.Hour)
	ctx := context.Background()

	user, err := register.RegisterUser(ctx, services.RegistrationRequest{
		Username: "carol",
		Password: "correct-horse",
		Role:     models.RoleViewer,
	})
	require.NoError(t, err)

	_, err = auth.LoginUser(ctx, "carol", "correct-horse")
	require.NoError(t, err)

	stored, err := st.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleViewer, stored.Role, "login must never overwrite the stored role")
}

func TestTokenRefreshRotates(t *testing.T) {
	st, _ := newTestStore(t)
	register := services.NewRegisterService(st)
	auth := services.NewAuthService(st, "test-secret", time.Hour, 24*time.Hour)
	ctx := context.Background()

	user, err := register.RegisterUser(ctx, services.RegistrationRequest{
		Username: "dave",
		Password: "correct-horse",
		Role:     models.RoleEditor,
	})
	require.NoError(t, err)

	access, refresh, err := auth.GenerateToken(ctx, user)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	newAccess, newRefresh, expiresIn, err := auth.RefreshToken(ctx, refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEqual(t, refresh, newRefresh)
	assert.Equal(t, int64(3600), expiresIn)

	// Old refresh token is single-use.
	_, _, _, err = auth.RefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	st, _ := newTestStore(t)
	register := services.NewRegisterService(st)
	auth := services.NewAuthService(st, "test-secret", time.Hour, 24*time.Hour)
	ctx := context.Background()

	user, err := register.RegisterUser(ctx, services.RegistrationRequest{
		Username: "erin",
		Password: "correct-horse",
		Role:     models.RoleManager,
	})
	require.NoError(t, err)

	_, refresh, err := auth.GenerateToken(ctx, user)
	require.NoError(t, err)

	require.NoError(t, auth.RevokeToken(ctx, refresh))

	// Revoked token can no longer be exchanged.
	_, _, _, err = auth.RefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Logout is idempotent.
	assert.NoError(t, auth.RevokeToken(ctx, refresh))
	assert.NoError(t, auth.RevokeToken(ctx, "never-issued"))
}
