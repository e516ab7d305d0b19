// Package config loads the optional devkit settings file.
// Settings only affect presentation (logging, indentation, colors);
// they never change what a tool computes.
package config

import (
	"fmt"
	"io"
	"slices"

	"dario.cat/mergo"

	"github.com/roelfdiedericks/devkit/internal/logging"
	"github.com/roelfdiedericks/devkit/internal/paths"
)

// Color modes for error styling
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultIndent is the JSON indentation used when nothing is configured
const DefaultIndent = 2

// Config represents the merged devkit configuration
type Config struct {
	LogLevel  string `yaml:"log_level" toml:"log_level" json:"log_level"`
	LogCaller bool   `yaml:"log_caller" toml:"log_caller" json:"log_caller"`
	Indent    *int   `yaml:"indent" toml:"indent" json:"indent"` // nil means DefaultIndent, 0 means compact
	Color     string `yaml:"color" toml:"color" json:"color"`

	// Path is the file the config was loaded from, empty for defaults
	Path string `yaml:"-" toml:"-" json:"-"`
}

// Default returns the built-in configuration. Indent stays nil so that a
// file setting it to 0 is still merged in.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Color:    ColorAuto,
	}
}

// Load resolves the config file and merges it over the defaults.
// explicit is the --config flag value and may be empty.
func Load(explicit string) (*Config, error) {
	cfg := Default()

	path, err := paths.ConfigPath(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		logging.L_debug("config: no config file, using defaults")
		return cfg, nil
	}

	file, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(cfg, file, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to merge config %s: %w", path, err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	logging.L_debug("config: loaded", "path", path, "log_level", cfg.LogLevel, "indent", cfg.IndentWidth(), "color", cfg.Color)
	return cfg, nil
}

// Validate checks every setting
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Indent != nil && (*c.Indent < 0 || *c.Indent > 8) {
		return fmt.Errorf("indent must be between 0 and 8, got %d", *c.Indent)
	}
	if !slices.Contains([]string{ColorAuto, ColorAlways, ColorNever}, c.Color) {
		return fmt.Errorf("color must be one of auto, always, never, got %q", c.Color)
	}
	return nil
}

// IndentWidth returns the number of spaces used for JSON output
func (c *Config) IndentWidth() int {
	if c.Indent == nil {
		return DefaultIndent
	}
	return *c.Indent
}

// Logging builds the logger settings. debug forces the debug level.
func (c *Config) Logging(out io.Writer, debug bool) *logging.Config {
	lc := logging.DefaultConfig()
	lc.Output = out
	lc.ShowCaller = c.LogCaller
	if level, err := logging.ParseLevel(c.LogLevel); err == nil {
		lc.Level = level
	}
	if debug {
		lc.Level = logging.LevelDebug
	}
	return lc
}
