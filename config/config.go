// Package config handles the daemon's file configuration.
//
// The config lives at $XDG_CONFIG_HOME/slipway/config.yaml (defaulting to
// ~/.config/slipway/config.yaml). An absent file is not an error: every
// field has a working default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the daemon settings.
type Config struct {
	// Listen is the API server's bind address.
	Listen string `yaml:"listen"`
	// DataDir holds the deployment database.
	DataDir string `yaml:"data_dir"`
	// LogLevel: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// Path returns the config file location. It respects XDG_CONFIG_HOME,
// falling back to ~/.config/slipway/config.yaml.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".config", "slipway", "config.yaml")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "slipway", "config.yaml")
}

// Default returns the built-in settings.
func Default() Config {
	dataDir := filepath.Join(os.TempDir(), "slipway")
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".local", "share", "slipway")
	}
	return Config{
		Listen:   ":3000",
		DataDir:  dataDir,
		LogLevel: "info",
	}
}

// Load reads the config file at path (the default location when path is
// empty), filling unset fields with defaults. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Listen == "" {
		cfg.Listen = Default().Listen
	}
	if cfg.DataDir == "" {
		cfg.DataDir = Default().DataDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = Default().LogLevel
	}
	return cfg, nil
}

// DBPath returns the deployment database location under the data dir.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "deployments.db")
}
