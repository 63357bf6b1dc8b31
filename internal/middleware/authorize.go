package middleware

import (
	"net/http"

	"github.com/aruna-2201/zidio-prj/internal/http/respond"
)

// RequireAuth rejects requests with no authenticated principal.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if PrincipalFromContext(r.Context()) == nil {
			respond.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole gates a route on a specific authority. Missing principal yields
// 401; a principal without the authority yields 403.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r.Context())
			if principal == nil {
				respond.Error(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if !principal.HasAuthority(role) {
				respond.Error(w, http.StatusForbidden, "access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
