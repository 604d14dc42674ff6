package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load loads configuration in layers. Later sources override earlier:
//  1. Built-in defaults
//  2. User config (~/.workdeck/config.yaml) - optional
//  3. Workspace config (.workdeck/config.yaml) - optional
//  4. Environment variables (WORKDECK_*)
func Load() (*Config, error) {
	cfg := Default()

	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, WorkdeckDir, ConfigFileName)
		if _, err := os.Stat(userPath); err == nil {
			if err := mergeFromFile(cfg, userPath); err != nil {
				slog.Warn("failed to load user config", "path", userPath, "error", err)
			}
		}
	}

	workspacePath := filepath.Join(WorkdeckDir, ConfigFileName)
	if _, err := os.Stat(workspacePath); err == nil {
		if err := mergeFromFile(cfg, workspacePath); err != nil {
			return nil, err // workspace config errors are fatal
		}
	}

	applyEnv(cfg)

	return cfg, nil
}

// LoadFile loads configuration from an explicit file over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := mergeFromFile(cfg, path); err != nil {
		return nil, err
	}
	applyEnv(cfg)
	return cfg, nil
}

// mergeFromFile merges configuration from a yaml file into cfg.
func mergeFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides config values from WORKDECK_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("WORKDECK_DB_DIALECT"); v != "" {
		cfg.Database.Dialect = v
	}
	if v := os.Getenv("WORKDECK_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("WORKDECK_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("WORKDECK_ACTIVITY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Dashboard.ActivityLimit = n
		} else {
			slog.Warn("ignoring invalid WORKDECK_ACTIVITY_LIMIT", "value", v)
		}
	}
	if v := os.Getenv("WORKDECK_DEFAULT_PERIOD"); v != "" {
		cfg.Dashboard.DefaultPeriod = v
	}
	if v := os.Getenv("WORKDECK_DEFAULT_USER"); v != "" {
		cfg.Dashboard.DefaultUser = v
	}
}
