// Package ctx provides the request context agromart handlers receive.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context:
//
//	func ShowProduct(c *ctx.Context) {
//	    rec, err := catalog.Find(c.Context(), "products", c.Param("id"))
//	    if err != nil {
//	        c.Fail(err)
//	        return
//	    }
//	    c.Success(rec)
//	}
//
//	router.Get("/product/{id}", "products.show", ctx.Wrap(ShowProduct))
package ctx

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/holisticagro/agromart/pkg/apperr"
	"github.com/holisticagro/agromart/pkg/auth"
	"github.com/holisticagro/agromart/pkg/bind"
	"github.com/holisticagro/agromart/pkg/response"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// Param returns a URL path parameter (e.g. "/user/{phone}" → c.Param("phone")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Query returns a query-string value, "" if absent.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// ClientIP returns the client address, preferring the first X-Forwarded-For hop.
func (c *Context) ClientIP() string {
	return ClientIP(c.R)
}

// ClientIP is the address used for logging and rate limiting.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
	}
	if real := r.Header.Get("X-Real-Ip"); real != "" {
		return real
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// Identity returns the verified caller. Handlers behind the authentication
// middleware can rely on ok being true.
func (c *Context) Identity() (*auth.Identity, bool) {
	return auth.FromContext(c.Context())
}

// BindJSON decodes the JSON body into dest and runs validation. On failure
// it writes the response (400 for malformed bodies, 422 for field errors)
// and returns false.
//
//	var in RegisterInput
//	if !c.BindJSON(&in) {
//	    return
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Fail(err)
		return false
	}
	if len(errs) > 0 {
		response.ValidationError(c.W, errs)
		return false
	}
	return true
}

// BindObject decodes an opaque, non-empty JSON object. On failure it writes
// a 400 and returns ok=false.
func (c *Context) BindObject() (map[string]any, bool) {
	obj, err := bind.Object(c.R)
	if err != nil {
		c.Fail(err)
		return nil, false
	}
	return obj, true
}

// Success sends a 200 envelope with data.
func (c *Context) Success(data any) {
	response.Success(c.W, data)
}

// Message sends a 200 envelope with a message and optional data.
func (c *Context) Message(message string, data any) {
	response.Message(c.W, message, data)
}

// Created sends a 201 envelope.
func (c *Context) Created(message string, data any) {
	response.Created(c.W, message, data)
}

// Fail renders err through response.Fail.
func (c *Context) Fail(err error) {
	response.Fail(c.W, c.R, err)
}

// BadRequest renders a VALIDATION_ERROR with message.
func (c *Context) BadRequest(message string) {
	c.Fail(apperr.Validation(message))
}
