package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pulseboard-dev/pulseboard/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Session.CookieName = "__pulseboard_session"
	cfg.Session.Secret = "test-secret"

	h, err := NewHandler(cfg, nil, nil, nil)
	require.NoError(t, err)

	return h
}

func nextCounter(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingCookie(t *testing.T) {
	h := newTestHandler(t)

	called := false
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)

	h.auth(nextCounter(&called)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, called, "unauthenticated requests must be rejected before the handler runs")
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	h := newTestHandler(t)

	called := false
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	req.AddCookie(&http.Cookie{Name: h.config.Session.CookieName, Value: "not.a.token"})

	h.auth(nextCounter(&called)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, called)
}

func TestRequireAdminForbidsOperators(t *testing.T) {
	h := newTestHandler(t)

	called := false
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req = req.WithContext(context.WithValue(req.Context(), RoleCtxKey, "operator"))

	h.requireAdmin(nextCounter(&called)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, called, "role check must run before any data is touched")
}

func TestRequireAdminPassesAdmins(t *testing.T) {
	h := newTestHandler(t)

	called := false
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req = req.WithContext(context.WithValue(req.Context(), RoleCtxKey, "admin"))

	h.requireAdmin(nextCounter(&called)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, called)
}
