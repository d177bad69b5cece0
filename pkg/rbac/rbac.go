// Package rbac gates routes on the role stored with the caller's user record.
package rbac

import (
	"context"
	"net/http"

	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/auth"
	"github.com/holisticagro/agromart/pkg/logger"
	"github.com/holisticagro/agromart/pkg/response"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// RoleResolver looks up the role of the user registered under phone.
// It returns "" with a nil error when no such user exists.
type RoleResolver interface {
	RoleOf(ctx context.Context, phone string) (string, error)
}

// RequireRole allows the request only when the authenticated caller's user
// record carries role. It must run after middleware.Authenticate and does
// exactly one lookup per request.
func RequireRole(resolver RoleResolver, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := auth.FromContext(r.Context())
			if !ok {
				response.Fail(w, r, apperr.Unauthenticated())
				return
			}

			got, err := resolver.RoleOf(r.Context(), id.Phone)
			if err != nil {
				response.Fail(w, r, apperr.Store(err, ""))
				return
			}
			if got != role {
				logger.WithCtx(r.Context()).Info("role check failed", "want", role, "got", got)
				response.Fail(w, r, apperr.Forbidden())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is RequireRole(resolver, RoleAdmin).
func RequireAdmin(resolver RoleResolver) func(http.Handler) http.Handler {
	return RequireRole(resolver, RoleAdmin)
}
