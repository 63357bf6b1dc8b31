package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aruna-2201/zidio-prj/internal/auth"
	"github.com/aruna-2201/zidio-prj/internal/models"
	"github.com/aruna-2201/zidio-prj/internal/storage"
)

const bearerPrefix = "Bearer "

// Principal is the authenticated identity for one request. Authorities come
// from the token's claim snapshot, not a fresh store read.
type Principal struct {
	User        models.User
	Authorities []string
}

// HasAuthority reports whether the principal holds the named authority.
func (p *Principal) HasAuthority(name string) bool {
	for _, a := range p.Authorities {
		if a == name {
			return true
		}
	}
	return false
}

type contextKeyPrincipal struct{}

// PrincipalFromContext returns the request's principal, or nil when the
// request is unauthenticated.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, ok := ctx.Value(contextKeyPrincipal{}).(*Principal)
	if !ok {
		return nil
	}
	return p
}

// ContextWithPrincipal stores a principal on the context. Exposed for tests.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextKeyPrincipal{}, p)
}

// Authenticate extracts and validates a bearer token, re-resolves the subject
// against the user store, and attaches a Principal to the request context.
// Every failure degrades to an unauthenticated request; rejection is the
// authorization middleware's job. The clock is injected so the expiry
// boundary is testable.
func Authenticate(tokens *auth.TokenManager, users storage.UserStore, logger *slog.Logger, now func() time.Time) func(http.Handler) http.Handler {
	if now == nil {
		now = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) || PrincipalFromContext(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Decode(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				logger.Warn("token decode failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.FindUserByEmail(r.Context(), claims.Subject)
			if err != nil {
				if !errors.Is(err, storage.ErrNotFound) {
					logger.Error("resolve token subject", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			if claims.Subject != user.Email || claims.Expired(now()) {
				logger.Warn("invalid token for user", "subject", claims.Subject)
				next.ServeHTTP(w, r)
				return
			}

			principal := &Principal{User: user, Authorities: claims.Roles}
			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
		})
	}
}
