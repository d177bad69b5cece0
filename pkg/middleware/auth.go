package middleware

import (
	"net/http"
	"strings"

	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/auth"
	"github.com/holisticagro/agromart/pkg/logger"
	"github.com/holisticagro/agromart/pkg/response"
)

// Verifier turns a raw bearer token into an identity.
type Verifier interface {
	Verify(raw string) (*auth.Identity, error)
}

// Authenticate rejects requests without a valid bearer token and stores
// the verified identity in the request context.
//
// A missing Authorization header answers 401 "No Token". Any header whose
// token part (the text after the first space) does not verify answers 401
// "Invalid Token".
func Authenticate(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.Fail(w, r, apperr.Unauthenticated())
				return
			}

			id, err := v.Verify(bearerToken(header))
			if err != nil {
				response.Fail(w, r, err)
				return
			}

			ctx := auth.WithIdentity(r.Context(), id)
			ctx = logger.InjectLogger(ctx, logger.WithCtx(ctx).With("phone", id.Phone))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) string {
	_, token, found := strings.Cut(header, " ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}
