// Package config defines the bake configuration, loaded through viper from
// defaults, an optional config file, and BAKE_-prefixed environment variables.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete bake configuration
type Config struct {
	Document   DocumentConfig   `mapstructure:"document"`
	Shell      ShellConfig      `mapstructure:"shell"`
	Resolution ResolutionConfig `mapstructure:"resolution"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// DocumentConfig controls how the task document is located
type DocumentConfig struct {
	// Filename is the well-known document name searched for (default: "Bashfile")
	Filename string `mapstructure:"filename"`
	// MaxDepth bounds the ancestor search from the working directory (default: 4)
	MaxDepth int `mapstructure:"max_depth"`
}

// ShellConfig controls the subordinate interpreter used for task scripts
type ShellConfig struct {
	// Path is the interpreter binary (default: "bash")
	Path string `mapstructure:"path"`
	// Interactive passes -i to the interpreter so interactive aliases and
	// functions from the init file are available (default: true)
	Interactive bool `mapstructure:"interactive"`
}

// ResolutionConfig controls dependency resolution behavior
type ResolutionConfig struct {
	// LegacyOrder enables the historical insertion-driven expansion, which
	// does not detect dependency cycles (default: false)
	LegacyOrder bool `mapstructure:"legacy_order"`
}

// LoggingConfig controls structured log output
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR (default: "WARN")
	Level string `mapstructure:"level"`
}

// Default returns the built-in configuration values
func Default() *Config {
	return &Config{
		Document: DocumentConfig{
			Filename: "Bashfile",
			MaxDepth: 4,
		},
		Shell: ShellConfig{
			Path:        "bash",
			Interactive: true,
		},
		Resolution: ResolutionConfig{
			LegacyOrder: false,
		},
		Logging: LoggingConfig{
			Level: "WARN",
		},
	}
}

// SetDefaults registers all default values with viper.
// Must be called before reading any config file so that defaults are
// available even when no file exists.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("document.filename", defaults.Document.Filename)
	viper.SetDefault("document.max_depth", defaults.Document.MaxDepth)

	viper.SetDefault("shell.path", defaults.Shell.Path)
	viper.SetDefault("shell.interactive", defaults.Shell.Interactive)

	viper.SetDefault("resolution.legacy_order", defaults.Resolution.LegacyOrder)

	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Load unmarshals the current viper state into a Config
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bake")
	}
	// Fall back to ~/.config/bake
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bake"
	}
	return filepath.Join(home, ".config", "bake")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
