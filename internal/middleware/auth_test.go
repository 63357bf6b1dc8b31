package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aruna-2201/zidio-prj/internal/auth"
	"github.com/aruna-2201/zidio-prj/internal/middleware"
	"github.com/aruna-2201/zidio-prj/internal/models"
	"github.com/aruna-2201/zidio-prj/internal/storage/memory"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func seedUser(t *testing.T, store *memory.Store, email string, roles ...string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.SeedDefaultRoles(ctx))
	var assigned []models.Role
	for _, name := range roles {
		role, err := store.FindRoleByName(ctx, name)
		require.NoError(t, err)
		assigned = append(assigned, role)
	}
	_, err := store.SaveUser(ctx, models.User{FullName: "Ann", Email: email, PasswordHash: "x", Roles: assigned})
	require.NoError(t, err)
}

// runAuthenticate sends one request through the authenticator and returns the
// principal the downstream handler observed.
func runAuthenticate(t *testing.T, tokens *auth.TokenManager, store *memory.Store, now time.Time, authHeader string) *middleware.Principal {
	t.Helper()
	var seen *middleware.Principal
	handler := middleware.Authenticate(tokens, store, discard, func() time.Time { return now })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = middleware.PrincipalFromContext(r.Context())
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "authenticator must never abort the pipeline")
	return seen
}

func TestAuthenticateNoHeader(t *testing.T) {
	tokens := auth.NewTokenManager("s", "i", time.Hour)
	store := memory.NewStore()

	assert.Nil(t, runAuthenticate(t, tokens, store, time.Now(), ""))
	assert.Nil(t, runAuthenticate(t, tokens, store, time.Now(), "Basic abc"))
}

func TestAuthenticateBadToken(t *testing.T) {
	tokens := auth.NewTokenManager("s", "i", time.Hour)
	store := memory.NewStore()
	seedUser(t, store, "ann@x.com", models.RoleStudent)

	assert.Nil(t, runAuthenticate(t, tokens, store, time.Now(), "Bearer not-a-token"))

	other := auth.NewTokenManager("other-key", "i", time.Hour)
	token, err := other.Mint("ann@x.com", []string{models.RoleStudent}, time.Now())
	require.NoError(t, err)
	assert.Nil(t, runAuthenticate(t, tokens, store, time.Now(), "Bearer "+token))
}

func TestAuthenticateUnknownSubject(t *testing.T) {
	tokens := auth.NewTokenManager("s", "i", time.Hour)
	store := memory.NewStore()

	token, err := tokens.Mint("ghost@x.com", []string{models.RoleStudent}, time.Now())
	require.NoError(t, err)
	assert.Nil(t, runAuthenticate(t, tokens, store, time.Now(), "Bearer "+token))
}

func TestAuthenticateExpiredToken(t *testing.T) {
	tokens := auth.NewTokenManager("s", "i", time.Hour)
	store := memory.NewStore()
	seedUser(t, store, "ann@x.com", models.RoleStudent)

	minted := time.Unix(1_700_000_000, 0)
	token, err := tokens.Mint("ann@x.com", []string{models.RoleStudent}, minted)
	require.NoError(t, err)

	expiry := minted.Add(time.Hour)
	assert.NotNil(t, runAuthenticate(t, tokens, store, expiry, "Bearer "+token),
		"expiry exactly equal to now is still valid")
	assert.Nil(t, runAuthenticate(t, tokens, store, expiry.Add(time.Second), "Bearer "+token))
}

func TestAuthenticateSuccess(t *testing.T) {
	tokens := auth.NewTokenManager("s", "i", time.Hour)
	store := memory.NewStore()
	seedUser(t, store, "ann@x.com", models.RoleStudent)

	token, err := tokens.Mint("ann@x.com", []string{models.RoleStudent, models.RoleAdmin}, time.Now())
	require.NoError(t, err)

	principal := runAuthenticate(t, tokens, store, time.Now(), "Bearer "+token)
	require.NotNil(t, principal)
	assert.Equal(t, "ann@x.com", principal.User.Email)
	// Authorities come from the token's claim snapshot, not the store.
	assert.Equal(t, []string{models.RoleStudent, models.RoleAdmin}, principal.Authorities)
	assert.True(t, principal.HasAuthority(models.RoleAdmin))
	assert.False(t, principal.HasAuthority(models.RoleRecruiter))
}

func TestRequireAuth(t *testing.T) {
	handler := middleware.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	ctx := middleware.ContextWithPrincipal(req.Context(), &middleware.Principal{})
	handler.ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	handler := middleware.RequireRole(models.RoleStudent)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// No principal at all.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/profile/1", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Principal without the required authority.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/profile/1", nil)
	ctx := middleware.ContextWithPrincipal(req.Context(), &middleware.Principal{Authorities: []string{models.RoleRecruiter}})
	handler.ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"access denied"}`, rec.Body.String())

	// Principal with the required authority.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/profile/1", nil)
	ctx = middleware.ContextWithPrincipal(req.Context(), &middleware.Principal{Authorities: []string{models.RoleStudent}})
	handler.ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
}
