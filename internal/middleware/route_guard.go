package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Authorizer は認証状態の判定役。セッション単位で評価する。
type Authorizer interface {
	IsAuthenticated(ctx context.Context, sessionID string) bool
	IsAdmin(ctx context.Context, sessionID string) bool
}

// RequireAuth は requiresAuth 付きルートのガード。
// 未認証なら /login へリダイレクトする。
// 状態は持たず、ナビゲーションごとに毎回評価し直す。
func RequireAuth(authz Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := SessionID(c)
			if !authz.IsAuthenticated(c.Request().Context(), sid) {
				return c.Redirect(http.StatusFound, "/login")
			}
			return next(c)
		}
	}
}

// RequireAdmin は requiresAdmin 付きルートのガード。
// 未認証なら /login、認証済みでも管理者でなければ / へ返す。
func RequireAdmin(authz Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			sid := SessionID(c)

			if !authz.IsAuthenticated(ctx, sid) {
				return c.Redirect(http.StatusFound, "/login")
			}
			if !authz.IsAdmin(ctx, sid) {
				return c.Redirect(http.StatusFound, "/")
			}
			return next(c)
		}
	}
}
