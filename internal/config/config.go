// Package config provides configuration management for the article builder.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrNoOrigins           = errors.New("build.origins must list at least one origin")
	ErrEmptyOriginName     = errors.New("origin name is required")
	ErrDuplicateOrigin     = errors.New("origin listed more than once")
	ErrMissingRawDir       = errors.New("build.raw_dir is required")
	ErrMissingOutputPath   = errors.New("build.output is required")
	ErrMissingPattern      = errors.New("build.pattern is required")
	ErrInvalidMinContent   = errors.New("build.min_content_length must be non-negative")
	ErrInvalidLogLevel     = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidIndentLength = errors.New("output.indent must be between 0 and 8")
)

// Built-in defaults.
const (
	DefaultRawDir           = "data/raw"
	DefaultOutputPath       = "data/processed/articles.json"
	DefaultPattern          = "*.jsonl"
	DefaultMinContentLength = 200
	DefaultIndent           = 2
)

// DefaultOrigins are the fixed upstream providers, in processing order.
var DefaultOrigins = []string{"bbc", "espn", "skysports"}

// Config represents the complete builder configuration.
type Config struct {
	Build   BuildConfig   `yaml:"build"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// BuildConfig describes where batches come from and how records are filtered.
type BuildConfig struct {
	RawDir           string   `yaml:"raw_dir"`
	Origins          []string `yaml:"origins"`
	Pattern          string   `yaml:"pattern"`
	Output           string   `yaml:"output"`
	DefaultSource    string   `yaml:"default_source"`
	MinContentLength int      `yaml:"min_content_length"`
}

// OutputConfig defines how the consolidated document is written.
type OutputConfig struct {
	Indent int `yaml:"indent"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			RawDir:           DefaultRawDir,
			Origins:          append([]string(nil), DefaultOrigins...),
			Pattern:          DefaultPattern,
			Output:           DefaultOutputPath,
			MinContentLength: DefaultMinContentLength,
		},
		Output: OutputConfig{
			Indent: DefaultIndent,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file. Fields the file leaves
// out keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	return data, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Build.Origins) == 0 {
		return ErrNoOrigins
	}

	seen := make(map[string]bool, len(c.Build.Origins))

	for i, origin := range c.Build.Origins {
		if origin == "" {
			return fmt.Errorf("%w: origins[%d]", ErrEmptyOriginName, i)
		}

		if seen[origin] {
			return fmt.Errorf("%w: %s", ErrDuplicateOrigin, origin)
		}

		seen[origin] = true
	}

	if c.Build.RawDir == "" {
		return ErrMissingRawDir
	}

	if c.Build.Output == "" {
		return ErrMissingOutputPath
	}

	if c.Build.Pattern == "" {
		return ErrMissingPattern
	}

	if _, err := filepath.Match(c.Build.Pattern, ""); err != nil {
		return fmt.Errorf("build.pattern is invalid glob: %w", err)
	}

	if c.Build.MinContentLength < 0 {
		return ErrInvalidMinContent
	}

	if c.Output.Indent < 0 || c.Output.Indent > 8 {
		return ErrInvalidIndentLength
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// OriginDirs returns the batch directory of every origin, in processing order.
func (c *Config) OriginDirs() []string {
	dirs := make([]string, 0, len(c.Build.Origins))
	for _, origin := range c.Build.Origins {
		dirs = append(dirs, filepath.Join(c.Build.RawDir, origin))
	}

	return dirs
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Origins: %v, RawDir: %s, Output: %s, MinContent: %d}",
		c.Build.Origins,
		c.Build.RawDir,
		c.Build.Output,
		c.Build.MinContentLength,
	)
}
