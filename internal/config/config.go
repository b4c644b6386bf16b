// SPDX-License-Identifier: MPL-2.0

// Package config loads tfreg settings from a config file, environment
// variables, and defaults, in that order of increasing precedence for env
// over file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for config directory resolution.
	AppName = "tfreg"
	// EnvPrefix prefixes environment overrides (TFREG_DATABASE_PATH etc.).
	EnvPrefix = "TFREG"
)

// Config holds all tfreg settings.
type Config struct {
	// DatabasePath is the SQLite database file holding the module catalog.
	DatabasePath string `mapstructure:"database_path"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
	// GlamourTheme selects the markdown rendering theme for docs output.
	GlamourTheme string `mapstructure:"glamour_theme"`
	// SeedBuiltins controls whether the builtin catalog is registered on startup.
	SeedBuiltins bool `mapstructure:"seed_builtins"`
}

// configFilePathOverride allows --config to bypass directory resolution.
var configFilePathOverride string

// SetConfigFilePathOverride points Load at an explicit config file.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

// DefaultDatabasePath returns ~/.blackroad/terraform-modules.db.
func DefaultDatabasePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".blackroad", "terraform-modules.db"), nil
}

// ConfigDir returns the tfreg configuration directory using platform
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application
// Support, and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
func ConfigDir() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads the configuration. A missing config file is not an error; the
// defaults and environment overrides still apply.
func Load() (*Config, error) {
	v := viper.New()

	dbPath, err := DefaultDatabasePath()
	if err != nil {
		return nil, err
	}
	v.SetDefault("database_path", dbPath)
	v.SetDefault("log_level", "warn")
	v.SetDefault("glamour_theme", "auto")
	v.SetDefault("seed_builtins", true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFilePathOverride != "" {
		v.SetConfigFile(configFilePathOverride)
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
