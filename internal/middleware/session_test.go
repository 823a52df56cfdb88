package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newSessionEcho(capture *string) *echo.Echo {
	e := echo.New()
	e.Use(Session())
	e.GET("/", func(c echo.Context) error {
		*capture = SessionID(c)

		// request contextにも同じIDが入っていること
		sid, ok := SessionIDFromContext(c.Request().Context())
		if !ok || sid != *capture {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.NoContent(http.StatusOK)
	})
	return e
}

func TestSessionIssuesCookieWhenMissing(t *testing.T) {
	var sid string
	e := newSessionEcho(&sid)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, uuid.Validate(sid))

	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, ck := range cookies {
		if ck.Name == SessionCookieName {
			found = ck
		}
	}
	if assert.NotNil(t, found) {
		assert.Equal(t, sid, found.Value)
		assert.True(t, found.HttpOnly)
	}
}

func TestSessionReusesExistingCookie(t *testing.T) {
	var sid string
	e := newSessionEcho(&sid)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "existing-session"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "existing-session", sid)
	assert.Empty(t, rec.Result().Cookies())
}
