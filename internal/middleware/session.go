package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "storefront_session"

	// echo contextのキー
	CtxSessionIDKey = "session_id"
)

type sessionCtxKey struct{}

// Session は各リクエストにブラウザセッションIDを割り当てる。
// cookieが無ければuuidを発行する。カートとトークンの
// ストレージキーはこのIDで名前空間を分ける。
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sid string
			if ck, err := c.Cookie(SessionCookieName); err == nil && ck.Value != "" {
				sid = ck.Value
			} else {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookieName,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(CtxSessionIDKey, sid)

			// gateway側のTokenSourceが辿れるようにrequest contextにも入れる
			req := c.Request()
			c.SetRequest(req.WithContext(ContextWithSessionID(req.Context(), sid)))

			return next(c)
		}
	}
}

func ContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sessionID)
}

func SessionIDFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(sessionCtxKey{}).(string)
	return sid, ok && sid != ""
}

// SessionID はechoコンテキストからセッションIDを取り出す。
func SessionID(c echo.Context) string {
	sid, _ := c.Get(CtxSessionIDKey).(string)
	return sid
}
