// Package middleware provides the HTTP middleware chain.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/cache"
	appctx "github.com/holisticagro/agromart/pkg/ctx"
	"github.com/holisticagro/agromart/pkg/logger"
	"github.com/holisticagro/agromart/pkg/metrics"
	"github.com/holisticagro/agromart/pkg/response"
)

// RateLimit allows each client IP max requests per window within scope.
// When the counter store is unreachable the request is let through and
// the failure logged.
//
//	middleware.RateLimit(counter, "global", 200, time.Minute)
func RateLimit(counter cache.Counter, scope string, max int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if counter == nil || max <= 0 || window <= 0 {
			return next
		}
		retryAfter := strconv.Itoa(int(window.Seconds()))

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "rl:" + scope + ":" + appctx.ClientIP(r)
			count, err := counter.IncrWithTTL(r.Context(), key, window)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("rate limiter unavailable", "scope", scope, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if count > int64(max) {
				metrics.RateLimited.WithLabelValues(scope).Inc()
				w.Header().Set("Retry-After", retryAfter)
				response.Fail(w, r, apperr.New(apperr.CodeRateLimited, ""))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
