// Package config loads greenpath settings from config.yaml, the environment
// and .env files.
package config

import (
	"time"

	"greenpath/internal/api"
	"greenpath/internal/model"
)

// Config is the root application configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Cache     CacheConfig     `yaml:"cache"`
	Profile   ProfileConfig   `yaml:"profile"`
	Log       LogConfig       `yaml:"log"`
	DevServer DevServerConfig `yaml:"devserver"`
}

// APIConfig holds REST backend settings.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"   env:"GREENPATH_API_URL"        env-default:"http://localhost:8080"`
	Timeout   time.Duration `yaml:"timeout"    env:"GREENPATH_API_TIMEOUT"    env-default:"10s"`
	Retries   int           `yaml:"retries"    env:"GREENPATH_API_RETRIES"    env-default:"0"`
	RateLimit float64       `yaml:"rate_limit" env:"GREENPATH_API_RATE_LIMIT" env-default:"10"`
	Burst     int           `yaml:"burst"      env:"GREENPATH_API_BURST"      env-default:"5"`
}

// CacheConfig bounds the number of cached resources.
type CacheConfig struct {
	Size int `yaml:"size" env:"GREENPATH_CACHE_SIZE" env-default:"128"`
}

// ProfileConfig identifies the signed-in customer.
type ProfileConfig struct {
	UserID       int64  `yaml:"user_id"       env:"GREENPATH_USER_ID"       env-default:"1"`
	FullName     string `yaml:"full_name"     env:"GREENPATH_FULL_NAME"`
	Email        string `yaml:"email"         env:"GREENPATH_EMAIL"`
	Phone        string `yaml:"phone"         env:"GREENPATH_PHONE"`
	SocialPoints int    `yaml:"social_points" env:"GREENPATH_SOCIAL_POINTS" env-default:"0"`
}

// LogConfig holds logging settings. An empty File means <config dir>/greenpath.log.
type LogConfig struct {
	Level  string `yaml:"level"  env:"GREENPATH_LOG_LEVEL"  env-default:"info"`
	Pretty bool   `yaml:"pretty" env:"GREENPATH_LOG_PRETTY" env-default:"false"`
	File   string `yaml:"file"   env:"GREENPATH_LOG_FILE"`
}

// DevServerConfig holds settings for the local development backend.
type DevServerConfig struct {
	Addr   string `yaml:"addr"    env:"GREENPATH_DEVSERVER_ADDR" env-default:":8080"`
	DBPath string `yaml:"db_path" env:"GREENPATH_DEVSERVER_DB"`
}

// Client returns the REST client settings.
func (c *Config) Client() api.Config {
	return api.Config{
		BaseURL:   c.API.BaseURL,
		Timeout:   c.API.Timeout,
		Retries:   c.API.Retries,
		RateLimit: c.API.RateLimit,
		Burst:     c.API.Burst,
	}
}

// UserProfile returns the configured customer.
func (c *Config) UserProfile() model.Profile {
	return model.Profile{
		UserID:       c.Profile.UserID,
		FullName:     c.Profile.FullName,
		Email:        c.Profile.Email,
		Phone:        c.Profile.Phone,
		SocialPoints: c.Profile.SocialPoints,
	}
}
