// Package config provides configuration management for workdeck.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the default config file name
	ConfigFileName = "config.yaml"
	// WorkdeckDir is the workdeck configuration directory
	WorkdeckDir = ".workdeck"
	// DBFileName is the default SQLite database file name
	DBFileName = "workdeck.db"
)

// Config is the root configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// DatabaseConfig selects and locates the workspace store.
type DatabaseConfig struct {
	// Dialect is "sqlite" (default) or "postgres"
	Dialect string `yaml:"dialect"`
	// Path is the SQLite database file (default .workdeck/workdeck.db)
	Path string `yaml:"path,omitempty"`
	// DSN is the PostgreSQL connection string
	DSN string `yaml:"dsn,omitempty"`
}

// DashboardConfig tunes dashboard computation.
type DashboardConfig struct {
	// ActivityLimit caps the activity feed length (default 20)
	ActivityLimit int `yaml:"activity_limit"`
	// DefaultPeriod is the overview period when none is given (default month)
	DefaultPeriod string `yaml:"default_period"`
	// DefaultUser scopes the activity feed when --user is not passed
	DefaultUser string `yaml:"default_user,omitempty"`
}

// Default returns the built-in configuration defaults.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Dialect: "sqlite",
			Path:    filepath.Join(WorkdeckDir, DBFileName),
		},
		Dashboard: DashboardConfig{
			ActivityLimit: 20,
			DefaultPeriod: "month",
		},
	}
}

// DSN returns the connection string for the configured dialect.
func (c *Config) DSN() string {
	if c.Database.Dialect == "postgres" {
		return c.Database.DSN
	}
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(WorkdeckDir, DBFileName)
}

// RequireInit errors unless the current directory has been initialized.
func RequireInit() error {
	if _, err := os.Stat(WorkdeckDir); err != nil {
		return fmt.Errorf("not a workdeck workspace (run: workdeck init)")
	}
	return nil
}

// WriteDefault writes the default config file to the given path,
// creating parent directories as needed.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
