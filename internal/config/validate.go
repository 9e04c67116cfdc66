package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range (got %d)", c.Server.Port)
	}
	if c.PubSub.Buffer < 1 {
		return fmt.Errorf("pubsub.buffer must be >= 1 (got %d)", c.PubSub.Buffer)
	}
	if c.Notify.BatchInterval <= 0 {
		return fmt.Errorf("notify.batch_interval must be > 0 (got %v)", c.Notify.BatchInterval)
	}
	if c.Notify.PollInterval <= 0 {
		return fmt.Errorf("notify.poll_interval must be > 0 (got %v)", c.Notify.PollInterval)
	}
	if c.Notify.PollInterval >= c.Notify.BatchInterval {
		return fmt.Errorf("notify.poll_interval must be shorter than batch_interval")
	}
	if _, err := c.Notify.DigestUserIDs(); err != nil {
		return fmt.Errorf("notify.digest_users: %w", err)
	}
	if c.GraphQL.ComplexityLimit < 0 {
		return fmt.Errorf("graphql.complexity_limit must be >= 0 (got %d)", c.GraphQL.ComplexityLimit)
	}
	if c.RateLimit.Enabled && c.RateLimit.PerMinute < 1 {
		return fmt.Errorf("rate_limit.per_minute must be >= 1 when enabled (got %d)", c.RateLimit.PerMinute)
	}
	return nil
}
