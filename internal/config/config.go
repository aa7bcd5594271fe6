// Package config manages cedar's tool-level configuration via Viper.
//
// Tool configuration lives in .cedar.yml (or wherever --config points) with
// CEDAR_-prefixed environment variable overrides. It covers how the tool
// behaves — logging and watch settings — and never overlaps with the project
// manifest, which stays the single source of truth for what gets built.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds cedar's tool-level settings.
type Config struct {
	Log   LogConfig   `yaml:"log"`
	Watch WatchConfig `yaml:"watch"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// WatchConfig controls the watch command.
type WatchConfig struct {
	// Debounce groups rapid filesystem events into one rebuild.
	Debounce time.Duration `yaml:"debounce"`
	// Ignore lists directory names skipped while watching.
	Ignore []string `yaml:"ignore"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
			Ignore:   []string{"build", ".git"},
		},
	}
}

// Load resolves the configuration from viper, falling back to defaults for
// anything unset. Viper must already have read the config file and bound the
// environment; the root command does that once at startup.
func Load() (*Config, error) {
	cfg := Default()

	if viper.IsSet("log.level") {
		cfg.Log.Level = viper.GetString("log.level")
	}
	if viper.IsSet("log.format") {
		cfg.Log.Format = viper.GetString("log.format")
	}
	if viper.IsSet("watch.debounce") {
		cfg.Watch.Debounce = viper.GetDuration("watch.debounce")
	}
	if viper.IsSet("watch.ignore") {
		cfg.Watch.Ignore = viper.GetStringSlice("watch.ignore")
	}

	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return nil, fmt.Errorf("log.format must be \"text\" or \"json\", got %q", cfg.Log.Format)
	}
	if cfg.Watch.Debounce <= 0 {
		return nil, fmt.Errorf("watch.debounce must be positive, got %s", cfg.Watch.Debounce)
	}

	return cfg, nil
}

// Write serializes the configuration as YAML to path. Used by scaffolding to
// seed new projects with a default .cedar.yml.
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
