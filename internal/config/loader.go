package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// PathEnv overrides the config file location.
const PathEnv = "GREENPATH_CONFIG"

// Dir returns ~/.greenpath, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, ".greenpath")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// Resolve picks the config file path: the flag value, then GREENPATH_CONFIG,
// then <config dir>/config.yaml. explicit reports whether the user chose it.
func Resolve(flagPath string) (path string, explicit bool, err error) {
	if flagPath != "" {
		return flagPath, true, nil
	}
	if env := os.Getenv(PathEnv); env != "" {
		return env, true, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", false, err
	}
	return filepath.Join(dir, "config.yaml"), false, nil
}

// LoadDotEnv loads .env then .env.local from the working directory. Variables
// already set in the environment win. Missing files are ignored.
func LoadDotEnv() error {
	for _, name := range []string{".env", ".env.local"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", name, err)
		}
	}
	return nil
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags). A missing file is
// an error only when the path was chosen explicitly.
func Load(path string, explicit bool) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if cfg.Log.File == "" || cfg.DevServer.DBPath == "" {
		dir := filepath.Dir(path)
		if cfg.Log.File == "" {
			cfg.Log.File = filepath.Join(dir, "greenpath.log")
		}
		if cfg.DevServer.DBPath == "" {
			cfg.DevServer.DBPath = filepath.Join(dir, "devserver.db")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Exists reports whether a config file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Settings is the part of the configuration captured during onboarding.
type Settings struct {
	BaseURL string
	Profile ProfileConfig
}

type savedAPI struct {
	BaseURL string `yaml:"base_url"`
}

type savedConfig struct {
	API     savedAPI      `yaml:"api"`
	Profile ProfileConfig `yaml:"profile"`
}

// Save writes onboarding settings to path. Everything else keeps its
// default and can be added to the file by hand.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}
	data, err := yaml.Marshal(savedConfig{API: savedAPI{BaseURL: s.BaseURL}, Profile: s.Profile})
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
