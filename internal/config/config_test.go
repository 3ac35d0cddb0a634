package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
api:
  base_url: "https://greenpath.example.com"
  timeout: "5s"
  retries: 2
cache:
  size: 64
profile:
  user_id: 42
  full_name: "Asha Verma"
  email: "asha@example.com"
  phone: "9876543210"
log:
  level: "debug"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)

	cfg, err := Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, "https://greenpath.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2, cfg.API.Retries)
	assert.Equal(t, 64, cfg.Cache.Size)
	assert.Equal(t, int64(42), cfg.Profile.UserID)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join(dir, "greenpath.log"), cfg.Log.File)
	assert.Equal(t, filepath.Join(dir, "devserver.db"), cfg.DevServer.DBPath)

	p := cfg.UserProfile()
	assert.Equal(t, "Asha Verma", p.FullName)
	assert.Equal(t, 5*time.Second, cfg.Client().Timeout)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("GREENPATH_API_URL", "http://localhost:9999")
	t.Setenv("GREENPATH_CACHE_SIZE", "8")

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.API.BaseURL)
	assert.Equal(t, 8, cfg.Cache.Size)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 0, cfg.API.Retries)
	assert.Equal(t, 128, cfg.Cache.Size)
	assert.Equal(t, int64(1), cfg.Profile.UserID)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), true)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad url", func(c *Config) { c.API.BaseURL = "localhost" }},
		{"negative retries", func(c *Config) { c.API.Retries = -1 }},
		{"zero cache", func(c *Config) { c.Cache.Size = 0 }},
		{"no user", func(c *Config) { c.Profile.UserID = 0 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				API:     APIConfig{BaseURL: "http://localhost:8080", Timeout: time.Second},
				Cache:   CacheConfig{Size: 1},
				Profile: ProfileConfig{UserID: 1},
				Log:     LogConfig{Level: "info"},
			}
			require.NoError(t, cfg.Validate())
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, Save(path, Settings{
		BaseURL: "https://api.greenpath.example.com",
		Profile: ProfileConfig{UserID: 7, FullName: "Rohan Mehta", Email: "rohan@example.com"},
	}))
	assert.True(t, Exists(path))

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "https://api.greenpath.example.com", cfg.API.BaseURL)
	assert.Equal(t, int64(7), cfg.Profile.UserID)
	assert.Equal(t, "rohan@example.com", cfg.Profile.Email)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
}

func TestResolve(t *testing.T) {
	path, explicit, err := Resolve("/tmp/custom.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.yaml", path)
	assert.True(t, explicit)

	t.Setenv(PathEnv, "/tmp/env.yaml")
	path, explicit, err = Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.yaml", path)
	assert.True(t, explicit)
}
