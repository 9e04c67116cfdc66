package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	GraphQL GraphQLConfig `yaml:"graphql"`
	PubSub  PubSubConfig  `yaml:"pubsub"`
	Notify  NotifyConfig  `yaml:"notify"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// SeedDemo loads demo users and recognitions at startup. The store is
	// in-process, so seeding happens on every boot or not at all.
	SeedDemo bool `yaml:"seed_demo" env:"SERVER_SEED_DEMO" env-default:"false"`
}

// GraphQLConfig holds GraphQL server settings.
type GraphQLConfig struct {
	PlaygroundEnabled    bool `yaml:"playground_enabled"    env:"GRAPHQL_PLAYGROUND_ENABLED"    env-default:"false"`
	IntrospectionEnabled bool `yaml:"introspection_enabled" env:"GRAPHQL_INTROSPECTION_ENABLED" env-default:"false"`
	ComplexityLimit      int  `yaml:"complexity_limit"      env:"GRAPHQL_COMPLEXITY_LIMIT"      env-default:"300"`
}

// PubSubConfig holds event fan-out settings.
type PubSubConfig struct {
	// Buffer is the per-subscriber queue size. A subscriber that falls
	// this far behind starts losing events (at-most-once delivery).
	Buffer int `yaml:"buffer" env:"PUBSUB_BUFFER" env-default:"16"`
}

// NotifyConfig holds the polling-fallback cadences.
type NotifyConfig struct {
	BatchInterval time.Duration `yaml:"batch_interval" env:"NOTIFY_BATCH_INTERVAL" env-default:"10m"`
	PollInterval  time.Duration `yaml:"poll_interval"  env:"NOTIFY_POLL_INTERVAL"  env-default:"5s"`
	// DigestUsers is a comma-separated list of user IDs for whom the
	// server runs in-process digest workers (batch + poll). Empty
	// disables the workers; clients normally use subscriptions instead.
	DigestUsers string `yaml:"digest_users" env:"NOTIFY_DIGEST_USERS" env-default:""`
}

// DigestUserIDs parses DigestUsers into UUIDs.
func (c NotifyConfig) DigestUserIDs() ([]uuid.UUID, error) {
	if strings.TrimSpace(c.DigestUsers) == "" {
		return nil, nil
	}
	parts := strings.Split(c.DigestUsers, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		id, err := uuid.Parse(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// RateLimitConfig holds per-caller request limiting settings.
type RateLimitConfig struct {
	Enabled bool `yaml:"enabled" env:"RATE_LIMIT_ENABLED" env-default:"false"`
	// PerMinute is the request budget per caller (user ID when the
	// identity header is present, remote address otherwise).
	PerMinute int `yaml:"per_minute" env:"RATE_LIMIT_PER_MINUTE" env-default:"120"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"X-User-Id,X-Request-Id,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
