// Package config provides configuration loading from YAML files.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Player  PlayerConfig  `yaml:"player"`
	Library LibraryConfig `yaml:"library"`
	Engine  EngineConfig  `yaml:"engine"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Output string `yaml:"output" default:"stdout"`
	File   string `yaml:"file"`
}

// PlayerConfig represents playback store configuration.
type PlayerConfig struct {
	TickIntervalMs int `yaml:"tick_interval_ms" default:"500" validate:"gte=100,lte=5000"`
}

// LibraryConfig represents music library configuration.
type LibraryConfig struct {
	Dir string `yaml:"dir" default:"./music" validate:"required"`
}

// EngineConfig represents playback engine configuration.
type EngineConfig struct {
	Type     string         `yaml:"type" default:"beep" validate:"oneof=beep null"`
	Settings map[string]any `yaml:"settings"`
}

// Load loads configuration from a YAML file. A missing file is not an
// error: defaults apply, so the player runs without any config at all.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	case os.IsNotExist(err):
		// Fall through to defaults.
	default:
		return nil, errors.Wrap(err, "failed to read config file")
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("PLAYERD_LIBRARY_DIR"); v != "" {
		c.Library.Dir = v
	}
	if v := os.Getenv("PLAYERD_ENGINE"); v != "" {
		c.Engine.Type = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}
