package config

import "time"

type PostgresConfig struct {
	DSN             string        `env:"PG_DSN"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" envDefault:"10"`
	ConnMaxIdleTime time.Duration `env:"PG_CONN_MAX_IDLE_TIME" envDefault:"5m"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// RedisConfig is optional; an empty Addr disables the match-list cache.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:""`
	Password string        `env:"REDIS_PASSWORD" envDefault:""`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_CACHE_TTL" envDefault:"30s"`
}

// KafkaConfig is optional; empty Brokers disables ledger event publishing.
type KafkaConfig struct {
	Brokers string `env:"KAFKA_BROKERS" envDefault:""`
}
