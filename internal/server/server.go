// Package server はechoサーバーの組み立てと起動。
package server

import (
	"context"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/gateway"
	"storefront/internal/middleware"
	"storefront/internal/notify"
	repo "storefront/internal/repository"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Server struct {
	e    *echo.Echo
	port string
}

// Deps はルーティングに必要な協力者。eventsはnil可。
type Deps struct {
	Storage repo.ClientStorage
	Auth    *auth.Service
	Gateway *gateway.Client
	Mailer  *notify.EmailSender
	Events  *notify.Dispatcher
}

func New(cfg config.Config, deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(middleware.Session())
	e.Use(middleware.Prometheus())

	RegisterRoutes(e, deps)

	return &Server{e: e, port: cfg.Port}
}

func (s *Server) Start() error {
	return s.e.Start(":" + s.port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
