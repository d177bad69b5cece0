package rbac_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/holisticagro/agromart/pkg/auth"
	"github.com/holisticagro/agromart/pkg/rbac"
)

type stubResolver struct {
	roles map[string]string
	err   error
	calls int
}

func (s *stubResolver) RoleOf(_ context.Context, phone string) (string, error) {
	s.calls++
	return s.roles[phone], s.err
}

func serve(resolver rbac.RoleResolver, phone string) *httptest.ResponseRecorder {
	h := rbac.RequireAdmin(resolver)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodDelete, "/delete-job/1", nil)
	if phone != "" {
		req = req.WithContext(auth.WithIdentity(req.Context(), &auth.Identity{Phone: phone}))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequireAdmin(t *testing.T) {
	resolver := &stubResolver{roles: map[string]string{"01700000000": "admin", "01800000000": "customer"}}

	assert.Equal(t, http.StatusNoContent, serve(resolver, "01700000000").Code)
	assert.Equal(t, http.StatusForbidden, serve(resolver, "01800000000").Code)
	assert.Equal(t, http.StatusForbidden, serve(resolver, "01900000000").Code)
	assert.Equal(t, 3, resolver.calls)
}

func TestRequireAdminWithoutIdentity(t *testing.T) {
	resolver := &stubResolver{}
	assert.Equal(t, http.StatusUnauthorized, serve(resolver, "").Code)
	assert.Zero(t, resolver.calls)
}

func TestRequireAdminStoreFailure(t *testing.T) {
	resolver := &stubResolver{err: errors.New("server selection timeout")}
	rec := serve(resolver, "01700000000")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "server selection")
}
