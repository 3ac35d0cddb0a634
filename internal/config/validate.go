package config

import (
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an http(s) URL (got %q)", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must be >= 0 (got %s)", c.API.Timeout)
	}
	if c.API.Retries < 0 {
		return fmt.Errorf("api.retries must be >= 0 (got %d)", c.API.Retries)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must be >= 0 (got %v)", c.API.RateLimit)
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("cache.size must be > 0 (got %d)", c.Cache.Size)
	}
	if c.Profile.UserID <= 0 {
		return fmt.Errorf("profile.user_id must be > 0 (got %d)", c.Profile.UserID)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}
