package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type stubAuthorizer struct {
	authenticated bool
	admin         bool
}

func (s *stubAuthorizer) IsAuthenticated(ctx context.Context, sessionID string) bool {
	return s.authenticated
}

func (s *stubAuthorizer) IsAdmin(ctx context.Context, sessionID string) bool {
	return s.admin
}

func doGuarded(t *testing.T, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.GET("/guarded", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, mw)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthRedirectsAnonymousToLogin(t *testing.T) {
	rec := doGuarded(t, RequireAuth(&stubAuthorizer{}))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireAuthPassesAuthenticated(t *testing.T) {
	rec := doGuarded(t, RequireAuth(&stubAuthorizer{authenticated: true}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRequireAdminRedirectsAnonymousToLogin(t *testing.T) {
	rec := doGuarded(t, RequireAdmin(&stubAuthorizer{}))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireAdminRedirectsNonAdminToHome(t *testing.T) {
	rec := doGuarded(t, RequireAdmin(&stubAuthorizer{authenticated: true}))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestRequireAdminPassesAdmin(t *testing.T) {
	rec := doGuarded(t, RequireAdmin(&stubAuthorizer{authenticated: true, admin: true}))

	assert.Equal(t, http.StatusOK, rec.Code)
}
