package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/logger"
	"github.com/holisticagro/agromart/pkg/response"
)

// Recovery turns a panic in a downstream handler into a logged 500.
//
//	r.Use(metrics.Middleware())
//	r.Use(reqid.Middleware())
//	r.Use(middleware.Logger)
//	r.Use(middleware.Recovery)
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.WithCtx(r.Context()).Error("panic recovered",
				"panic", fmt.Sprintf("%v", rec),
				"stack", string(debug.Stack()),
			)
			response.Fail(w, r, apperr.Store(fmt.Errorf("panic: %v", rec), ""))
		}()
		next.ServeHTTP(w, r)
	})
}
