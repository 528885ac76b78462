// Package config provides configuration management for wmx.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/wikimacro/internal/logging"
	"github.com/open-cli-collective/wikimacro/pkg/render"
	"github.com/open-cli-collective/wikimacro/pkg/syntax"
	"github.com/open-cli-collective/wikimacro/pkg/transform"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultSyntax       = "xwiki/2.0"
	DefaultOutputFormat = "xhtml"
	DefaultLogLevel     = "warn"
)

// Config holds the wmx configuration.
type Config struct {
	MaxDepth       int      `yaml:"max_depth,omitempty"`
	Syntax         string   `yaml:"syntax,omitempty"`
	OutputFormat   string   `yaml:"output_format,omitempty"`
	LogLevel       string   `yaml:"log_level,omitempty"`
	DisabledMacros []string `yaml:"disabled_macros,omitempty"`
}

// Validate checks that every set field holds a usable value.
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Syntax != "" {
		if _, err := syntax.Parse(c.Syntax); err != nil {
			return err
		}
	}
	if c.OutputFormat != "" {
		if _, err := render.ParseFormat(c.OutputFormat); err != nil {
			return err
		}
	}
	if c.LogLevel != "" {
		if _, err := logging.ParseLevel(c.LogLevel); err != nil {
			return err
		}
	}
	for _, id := range c.DisabledMacros {
		if strings.TrimSpace(id) == "" {
			return errors.New("disabled_macros must not contain empty ids")
		}
	}
	return nil
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.MaxDepth == 0 {
		c.MaxDepth = transform.DefaultMaxDepth
	}
	if c.Syntax == "" {
		c.Syntax = DefaultSyntax
	}
	if c.OutputFormat == "" {
		c.OutputFormat = DefaultOutputFormat
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("WMX_MAX_DEPTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WMX_MAX_DEPTH %q: %w", v, err)
		}
		c.MaxDepth = n
	}
	if v := os.Getenv("WMX_SYNTAX"); v != "" {
		c.Syntax = v
	}
	if v := os.Getenv("WMX_FORMAT"); v != "" {
		c.OutputFormat = v
	}
	if v := os.Getenv("WMX_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("WMX_DISABLED_MACROS"); v != "" {
		c.DisabledMacros = SplitList(v)
	}
	return nil
}

// SplitList splits a comma separated list, dropping blank entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "wmx", "config.yml")
	}

	// Fall back to ~/.config/wmx/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".wmx", "config.yml")
	}

	return filepath.Join(home, ".config", "wmx", "config.yml")
}

// ResolvePath returns path, or the default path when path is empty.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	return DefaultConfigPath()
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment
// variables. A missing file yields an empty configuration.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	if err := cfg.LoadFromEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}
