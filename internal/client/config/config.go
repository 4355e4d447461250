package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the filekeeper CLI.
type Config struct {
	ServerURL   string        `default:"http://127.0.0.1:5000" validate:"required,url"`
	Timeout     time.Duration `default:"30s" validate:"gt=0"`
	SessionFile string        `validate:"required"`
}

// DefaultSessionFile lives in the user's config directory, or the temp dir
// when that is unknown.
func DefaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "filekeeper", "session")
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() error {
	if err := defaults.Set(c); err != nil {
		return fmt.Errorf("config defaults: %w", err)
	}
	if c.SessionFile == "" {
		c.SessionFile = DefaultSessionFile()
	}
	return nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags. Later sources take precedence.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := cfg.LoadDefaults(); err != nil {
		return nil, err
	}
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
