package handler

import (
	"encoding/json"
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/gateway"
	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
)

// 認証のHTTP。ログイン自体はバックエンドが行い、
// こちらは発行されたトークンをセッションに預かるだけ。
type AuthHandler struct {
	gw   *gateway.Client
	auth *auth.Service
}

// DI
func NewAuthHandler(gw *gateway.Client, authSvc *auth.Service) *AuthHandler {
	return &AuthHandler{gw: gw, auth: authSvc}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/auth")

	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.POST("/logout", h.logout)
	g.GET("/me", h.me)
}

func (h *AuthHandler) register(c echo.Context) error {
	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.gw.RegisterUser(c.Request().Context(), body)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSONBlob(http.StatusOK, out)
}

// loginResponse のうちトークンだけ型で受けて、残りはそのまま返す。
type loginResult struct {
	Token string `json:"token"`
}

func (h *AuthHandler) login(c echo.Context) error {
	var body map[string]interface{}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	ctx := c.Request().Context()

	out, err := h.gw.Login(ctx, body)
	if err != nil {
		return writeError(c, err)
	}

	var res loginResult
	if jsonErr := json.Unmarshal(out, &res); jsonErr == nil && res.Token != "" {
		if err := h.auth.SetToken(ctx, middleware.SessionID(c), res.Token); err != nil {
			return writeError(c, err)
		}
	}

	return c.JSONBlob(http.StatusOK, out)
}

func (h *AuthHandler) logout(c echo.Context) error {
	if err := h.auth.ClearToken(c.Request().Context(), middleware.SessionID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"loggedOut": true})
}

// 保存済みトークンで現在ユーザーを引く。
func (h *AuthHandler) me(c echo.Context) error {
	ctx := c.Request().Context()

	if !h.auth.IsAuthenticated(ctx, middleware.SessionID(c)) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.gw.CurrentUserProfile(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSONBlob(http.StatusOK, out)
}
