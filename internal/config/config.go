package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Configはアプリ全体の設定
type Config struct {
	Port  string // サーバーポート（8080）
	GoEnv string // dev/prod

	// リモートバックエンド（全ての永続状態の持ち主）
	BackendBaseURL string // 例: http://localhost:8080/tymelesstyre

	// セッションストレージ用DB。DATABASE_URLが優先。
	// devでは未設定ならインメモリにフォールバックする。
	DatabaseURL      string
	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// バックエンドが発行するJWTの検証用。空ならクレームのみ読む。
	JWTSecret string

	// EmailJS（トランザクションメール）
	EmailAPIBaseURL                string
	EmailServiceID                 string
	EmailPublicKey                 string
	EmailTemplateOrderConfirmation string
	EmailTemplateOrderShipped      string

	// 注文イベントのキュー。URLが空ならキュー配信は無効。
	RabbitMQURL     string
	OrderEventQueue string
}

// Loadは環境変数から設定を組み立てる
func Load() (Config, error) {
	pgPort, err := atoiEnv("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:  getenv("PORT", "3000"),
		GoEnv: getenv("GO_ENV", "dev"),

		BackendBaseURL: getenv("BACKEND_BASE_URL", "http://localhost:8080/tymelesstyre"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenvFromFile("POSTGRES_PASSWORD_FILE", "POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "storefront"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		JWTSecret: getenvFromFile("JWT_SECRET_FILE", "JWT_SECRET", ""),

		EmailAPIBaseURL:                getenv("EMAILJS_API_BASE_URL", "https://api.emailjs.com"),
		EmailServiceID:                 getenv("EMAILJS_SERVICE_ID", "service_vrhiix6"),
		EmailPublicKey:                 getenv("EMAILJS_PUBLIC_KEY", "tgFTeXRSQiEA52Sk4"),
		EmailTemplateOrderConfirmation: getenv("EMAILJS_TEMPLATE_ORDER_CONFIRMATION", "template_3mz138e"),
		EmailTemplateOrderShipped:      getenv("EMAILJS_TEMPLATE_ORDER_SHIPPED", "template_japst9p"),

		RabbitMQURL:     os.Getenv("RABBITMQ_URL"),
		OrderEventQueue: getenv("ORDER_EVENT_QUEUE", "storefront_order_events"),
	}

	//必須チェック
	if cfg.BackendBaseURL == "" {
		return Config{}, fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if cfg.GoEnv == "prod" {
		if cfg.DatabaseURL == "" && cfg.PostgresPassword == "" {
			return Config{}, fmt.Errorf("DATABASE_URL or POSTGRES_PASSWORD is required in prod")
		}
		if cfg.JWTSecret == "" {
			return Config{}, fmt.Errorf("JWT_SECRET is required in prod")
		}
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

// シークレットはファイル経由（Docker secretsなど）でも受け取れる
func getenvFromFile(fileKey string, envKey string, def string) string {
	if path := os.Getenv(fileKey); path != "" {
		if content, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return getenv(envKey, def)
}

func atoiEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
