// Package kernel assembles the HTTP handler: global middleware, the
// metrics endpoint and the API routes.
package kernel

import (
	"net/http"
	"time"

	"github.com/holisticagro/agromart/app/routes"
	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/bind"
	"github.com/holisticagro/agromart/pkg/cache"
	"github.com/holisticagro/agromart/pkg/metrics"
	"github.com/holisticagro/agromart/pkg/middleware"
	"github.com/holisticagro/agromart/pkg/reqid"
	"github.com/holisticagro/agromart/pkg/response"
	"github.com/holisticagro/agromart/pkg/router"
)

// Options tunes the global middleware.
type Options struct {
	CORSOrigins []string
	// Counter backs both rate limits; nil disables them.
	Counter                cache.Counter
	RateLimitPerMinute     int
	AuthRateLimitPerMinute int
	MaxBodyBytes           int64
}

// NewRouter builds the router with the global middleware stack
// (outermost first):
//
//  1. Prometheus metrics, for total latency
//  2. Recovery, before anything can panic
//  3. Request ID, before anything logs
//  4. Logger
//  5. CORS
//  6. Per-IP rate limit
func NewRouter(deps routes.Deps, opts Options) *router.Router {
	if opts.MaxBodyBytes > 0 {
		bind.MaxBodyBytes = opts.MaxBodyBytes
	}

	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.NewCORSOptions(opts.CORSOrigins)))
	r.Use(middleware.RateLimit(opts.Counter, "global", opts.RateLimitPerMinute, time.Minute))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.Fail(w, req, apperr.NotFound("Route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/metrics", "metrics", metrics.Handler())

	if deps.AuthLimit == nil && opts.Counter != nil {
		deps.AuthLimit = middleware.RateLimit(opts.Counter, "auth", opts.AuthRateLimitPerMinute, time.Minute)
	}
	routes.RegisterAPI(r, deps)
	return r
}
