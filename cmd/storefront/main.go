package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/gateway"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/middleware"
	"storefront/internal/notify"
	repo "storefront/internal/repository"
	"storefront/internal/server"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

// gateway.TokenSource を auth.Service に橋渡しする。
// セッションIDはリクエストのcontext経由で届く。
type sessionTokenSource struct {
	auth *auth.Service
}

func (s *sessionTokenSource) Token(ctx context.Context) string {
	sid, ok := middleware.SessionIDFromContext(ctx)
	if !ok {
		return ""
	}
	return s.auth.Token(ctx, sid)
}

func main() {
	// .envは無くてもよい（コンテナでは環境変数直渡し）
	_ = godotenv.Load()

	logger := log.New("storefront")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	storage := buildStorage(cfg, logger)
	authSvc := auth.NewService(storage, cfg.JWTSecret)
	gw := gateway.New(cfg.BackendBaseURL, &sessionTokenSource{auth: authSvc}, log.New("gateway"))
	mailer := notify.NewEmailSender(cfg, log.New("notify"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var events *notify.Dispatcher
	if cfg.RabbitMQURL != "" {
		events, err = notify.NewDispatcher(cfg.RabbitMQURL, cfg.OrderEventQueue, log.New("notify"))
		if err != nil {
			logger.Fatalf("rabbitmq: %v", err)
		}
		defer events.Close()

		if err := events.StartConsumer(ctx, mailer); err != nil {
			logger.Fatalf("rabbitmq consumer: %v", err)
		}
	}

	srv := server.New(cfg, server.Deps{
		Storage: storage,
		Auth:    authSvc,
		Gateway: gw,
		Mailer:  mailer,
		Events:  events,
	})

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	logger.Infof("listening on :%s (backend %s)", cfg.Port, cfg.BackendBaseURL)
	if err := srv.Start(); err != nil {
		logger.Infof("server stopped: %v", err)
	}
}

// セッションストレージ。devではDBが無ければインメモリで動かす。
func buildStorage(cfg config.Config, logger *log.Logger) repo.ClientStorage {
	gormDB, err := db.Connect(cfg)
	if err != nil {
		if cfg.GoEnv == "prod" {
			logger.Fatalf("db: %v", err)
		}
		logger.Warnf("db unavailable, falling back to in-memory storage: %v", err)
		return infraRepo.NewClientStorageMemory()
	}

	if err := gormDB.AutoMigrate(&infraRepo.StorageEntry{}); err != nil {
		logger.Fatalf("migrate: %v", err)
	}
	return infraRepo.NewClientStorageGorm(gormDB)
}
