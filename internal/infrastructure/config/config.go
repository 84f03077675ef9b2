package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8000"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"SECRET_KEY"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`

	// AllowedOrigin is the browser origin accepted by CORS and by the
	// WebSocket handshake.
	AllowedOrigin string `env:"ALLOWED_ORIGIN, default=http://localhost:3000"`

	// BackendTimeout bounds every non-stream call to a backend. Exceeding
	// it is treated the same as a connection failure.
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT, default=30s"`

	Backends BackendConfig
}

// BackendConfig holds the single fixed base address of each backend.
// Addresses are resolved once at process start and never change at runtime.
type BackendConfig struct {
	AuthURL     string `env:"AUTH_SERVICE_URL,     default=http://localhost:8001"`
	UserURL     string `env:"USER_SERVICE_URL,     default=http://localhost:8002"`
	MatchingURL string `env:"MATCHING_SERVICE_URL, default=http://localhost:8003"`
	ChatURL     string `env:"CHAT_SERVICE_URL,     default=http://localhost:8004"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger *slog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Error("Failed to load configuration", "error", err)
		panic(err)
	}
	return &cfg
}
