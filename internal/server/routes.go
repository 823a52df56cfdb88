package server

import (
	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes は全ハンドラをechoに載せる。
// ガード（認証・管理者）の適用はここで決める。
func RegisterRoutes(e *echo.Echo, deps Deps) {
	requireAuth := middleware.RequireAuth(deps.Auth)
	requireAdmin := middleware.RequireAdmin(deps.Auth)

	handler.NewAuthHandler(deps.Gateway, deps.Auth).RegisterRoutes(e)
	handler.NewCartHandler(deps.Storage, deps.Gateway).RegisterRoutes(e)
	handler.NewProductHandler(deps.Gateway).RegisterRoutes(e)
	handler.NewOrderHandler(deps.Gateway, deps.Storage, deps.Mailer, deps.Events, nil).RegisterRoutes(e, requireAuth)
	handler.NewProfileHandler(deps.Gateway).RegisterRoutes(e, requireAuth)
	handler.NewAdminHandler(deps.Gateway, deps.Mailer, deps.Events, nil).RegisterRoutes(e, requireAdmin)
	handler.NewPageHandler(deps.Gateway, deps.Storage).RegisterRoutes(e, requireAuth, requireAdmin)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
