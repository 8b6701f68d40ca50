package main

import (
	"log/slog"
	"strings"
	"time"

	"github.com/betledger/betledger/internal/config"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT" envDefault:"8080"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" envDefault:"INFO"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	// AdminEmails is a comma-separated list; matching addresses register as
	// admins.
	AdminEmails string `env:"ADMIN_EMAILS" envDefault:""`

	// MetricsPort is optional; empty disables the metrics side server.
	MetricsPort string `env:"METRICS_PORT" envDefault:""`

	Postgres config.PostgresConfig
	Redis    config.RedisConfig
	Kafka    config.KafkaConfig
}

func (c *apiConfig) adminEmailList() []string {
	if c.AdminEmails == "" {
		return nil
	}

	parts := strings.Split(c.AdminEmails, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
