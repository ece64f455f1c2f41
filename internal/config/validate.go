package config

import (
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %s)", c.Auth.AccessTokenTTL)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be >= 0 (got %d)", c.Server.RateLimitPerMinute)
	}
	if c.Redis.Enabled() && c.Redis.CountTTL <= 0 {
		return fmt.Errorf("redis.count_ttl must be > 0 (got %s)", c.Redis.CountTTL)
	}
	if err := c.Notifications.validate(); err != nil {
		return fmt.Errorf("notifications: %w", err)
	}
	if c.Retention.DeclinedInvitations < 0 || c.Retention.AuditLog < 0 {
		return fmt.Errorf("retention periods must be >= 0")
	}
	return nil
}

// Validate checks the client configuration.
func (c *ClientConfig) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL (got %q)", c.BaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be > 0 (got %s)", c.RequestTimeout)
	}
	if err := c.Notifications.validate(); err != nil {
		return fmt.Errorf("notifications: %w", err)
	}
	return nil
}

func (n *NotificationsConfig) validate() error {
	if n.RecentWindow <= 0 {
		return fmt.Errorf("recent_window must be > 0 (got %s)", n.RecentWindow)
	}
	if n.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be > 0 (got %s)", n.PollInterval)
	}
	if n.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be > 0 (got %s)", n.FetchTimeout)
	}
	return nil
}
