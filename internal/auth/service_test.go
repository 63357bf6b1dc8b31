package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aruna-2201/zidio-prj/internal/auth"
	"github.com/aruna-2201/zidio-prj/internal/models"
	"github.com/aruna-2201/zidio-prj/internal/storage/memory"
)

func newService(t *testing.T) (*auth.Service, *memory.Store, *auth.TokenManager) {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.SeedDefaultRoles(context.Background()))
	tokens := auth.NewTokenManager("test-secret", "jobportal-test", 5*time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(store, tokens, logger), store, tokens
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, tokens := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Ann", "ann@x.com", "pw123", models.RoleStudent))

	resp, err := svc.Login(ctx, "ann@x.com", "pw123", models.RoleStudent, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "Ann", resp.Name)
	assert.Equal(t, "ann@x.com", resp.Email)
	assert.Equal(t, "student", resp.Role)
	assert.Contains(t, resp.Avatar, "ui-avatars.com")

	claims, err := tokens.Decode(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", claims.Subject)
	assert.Contains(t, claims.Roles, models.RoleStudent)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Ann", "ann@x.com", "pw123", models.RoleStudent))
	err := svc.Register(ctx, "Ann Again", "ann@x.com", "other", models.RoleStudent)
	assert.ErrorIs(t, err, auth.ErrDuplicateEmail)
	assert.Equal(t, 1, store.UserCount(), "failed registration must not mutate the store")
}

func TestRegisterUnknownRole(t *testing.T) {
	svc, store, _ := newService(t)

	err := svc.Register(context.Background(), "Ann", "ann@x.com", "pw123", "ROLE_WIZARD")
	assert.ErrorIs(t, err, auth.ErrRoleNotFound)
	assert.Equal(t, 0, store.UserCount())
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Ann", "ann@x.com", "pw123", models.RoleStudent))

	_, err := svc.Login(ctx, "ann@x.com", "wrong", models.RoleStudent, time.Now())
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@x.com", "pw123", models.RoleStudent, time.Now())
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownRole(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Ann", "ann@x.com", "pw123", models.RoleStudent))

	_, err := svc.Login(ctx, "ann@x.com", "pw123", "ROLE_WIZARD", time.Now())
	assert.ErrorIs(t, err, auth.ErrRoleNotFound)
}

func TestLoginRoleNotHeld(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Ann", "ann@x.com", "pw123", models.RoleStudent))

	_, err := svc.Login(ctx, "ann@x.com", "pw123", models.RoleAdmin, time.Now())
	assert.ErrorIs(t, err, auth.ErrAccessDenied, "valid credentials alone must not grant an unheld role")
}

// The access check narrows to the requested role, but the minted token
// carries the user's full role set.
func TestLoginTokenCarriesAllRoles(t *testing.T) {
	svc, store, tokens := newService(t)
	ctx := context.Background()

	student, err := store.FindRoleByName(ctx, models.RoleStudent)
	require.NoError(t, err)
	admin, err := store.FindRoleByName(ctx, models.RoleAdmin)
	require.NoError(t, err)

	hash, err := auth.HashPassword("pw123")
	require.NoError(t, err)
	_, err = store.SaveUser(ctx, models.User{
		FullName:     "Dual Role",
		Email:        "dual@x.com",
		PasswordHash: hash,
		Roles:        []models.Role{student, admin},
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, "dual@x.com", "pw123", models.RoleStudent, time.Now())
	require.NoError(t, err)

	claims, err := tokens.Decode(resp.Token)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{models.RoleStudent, models.RoleAdmin}, claims.Roles)
	assert.Equal(t, "student", resp.Role, "summary role is the first assigned role")
}
