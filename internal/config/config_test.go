package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "15s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"
  seed_demo: true

graphql:
  playground_enabled: true
  introspection_enabled: true
  complexity_limit: 200

pubsub:
  buffer: 32

notify:
  batch_interval: "15m"
  poll_interval: "10s"

log:
  level: "debug"
  format: "text"

cors:
  allowed_origins: "https://kudos.example.com"
  allow_credentials: false

rate_limit:
  enabled: true
  per_minute: 60
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Server
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}
	if !cfg.Server.SeedDemo {
		t.Error("server.seed_demo should be true")
	}

	// GraphQL
	if !cfg.GraphQL.PlaygroundEnabled {
		t.Error("graphql.playground_enabled should be true")
	}
	if cfg.GraphQL.ComplexityLimit != 200 {
		t.Errorf("graphql.complexity_limit = %d, want 200", cfg.GraphQL.ComplexityLimit)
	}

	// PubSub / Notify
	if cfg.PubSub.Buffer != 32 {
		t.Errorf("pubsub.buffer = %d, want 32", cfg.PubSub.Buffer)
	}
	if cfg.Notify.BatchInterval != 15*time.Minute {
		t.Errorf("notify.batch_interval = %v, want 15m", cfg.Notify.BatchInterval)
	}
	if cfg.Notify.PollInterval != 10*time.Second {
		t.Errorf("notify.poll_interval = %v, want 10s", cfg.Notify.PollInterval)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}

	// CORS
	if cfg.CORS.AllowedOrigins != "https://kudos.example.com" {
		t.Errorf("cors.allowed_origins = %q", cfg.CORS.AllowedOrigins)
	}
	if cfg.CORS.AllowCredentials {
		t.Error("cors.allow_credentials should be false")
	}

	// Rate limit
	if !cfg.RateLimit.Enabled {
		t.Error("rate_limit.enabled should be true")
	}
	if cfg.RateLimit.PerMinute != 60 {
		t.Errorf("rate_limit.per_minute = %d, want 60", cfg.RateLimit.PerMinute)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Notify.BatchInterval != 10*time.Minute {
		t.Errorf("notify.batch_interval = %v, want 10m (default)", cfg.Notify.BatchInterval)
	}
	if cfg.Notify.PollInterval != 5*time.Second {
		t.Errorf("notify.poll_interval = %v, want 5s (default)", cfg.Notify.PollInterval)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_PortOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for port 0")
	}

	cfg.Server.Port = 70000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for port > 65535")
	}
}

func TestValidate_PubSubBufferZero(t *testing.T) {
	cfg := validConfig()
	cfg.PubSub.Buffer = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for pubsub buffer 0")
	}
}

func TestValidate_NotifyIntervals(t *testing.T) {
	cfg := validConfig()
	cfg.Notify.BatchInterval = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero batch interval")
	}

	cfg = validConfig()
	cfg.Notify.PollInterval = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero poll interval")
	}

	// The fast poll must actually be faster than the slow batch.
	cfg = validConfig()
	cfg.Notify.PollInterval = cfg.Notify.BatchInterval
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for poll interval >= batch interval")
	}
}

func TestValidate_DigestUsersMalformed(t *testing.T) {
	cfg := validConfig()
	cfg.Notify.DigestUsers = "not-a-uuid"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for malformed digest user list")
	}
}

func TestValidate_ComplexityLimitNegative(t *testing.T) {
	cfg := validConfig()
	cfg.GraphQL.ComplexityLimit = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative complexity limit")
	}
}

func TestValidate_RateLimitPerMinute(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.PerMinute = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for enabled rate limit with zero budget")
	}

	// Disabled limiter ignores the budget.
	cfg.RateLimit.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDigestUserIDs_Empty(t *testing.T) {
	cfg := NotifyConfig{DigestUsers: "  "}

	ids, err := cfg.DigestUserIDs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids != nil {
		t.Errorf("expected nil, got %v", ids)
	}
}

func TestDigestUserIDs_ValidList(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	cfg := NotifyConfig{DigestUsers: a.String() + " , " + b.String()}

	ids, err := cfg.DigestUserIDs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("len = %d, want 2", len(ids))
	}
	if ids[0] != a || ids[1] != b {
		t.Errorf("ids = %v, want [%v %v]", ids, a, b)
	}
}

func TestDigestUserIDs_Invalid(t *testing.T) {
	cfg := NotifyConfig{DigestUsers: uuid.NewString() + ",oops"}

	if _, err := cfg.DigestUserIDs(); err == nil {
		t.Fatal("expected error for invalid entry")
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		GraphQL: GraphQLConfig{
			ComplexityLimit: 300,
		},
		PubSub: PubSubConfig{Buffer: 16},
		Notify: NotifyConfig{
			BatchInterval: 10 * time.Minute,
			PollInterval:  5 * time.Second,
		},
	}
}
