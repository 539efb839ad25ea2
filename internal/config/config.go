// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete tasks-cli configuration.
type Config struct {
	// Task service client settings
	API APIConfig `toml:"api" yaml:"api"`

	// Interactive shell settings
	Shell ShellConfig `toml:"shell" yaml:"shell"`

	// Output settings
	UI UIConfig `toml:"ui" yaml:"ui"`

	// Source is the file the config was read from; empty for defaults.
	Source string `toml:"-" yaml:"-"`
}

// APIConfig configures the task service client.
type APIConfig struct {
	// BaseURL of the task service
	BaseURL string `toml:"base_url" yaml:"base_url"`

	// Timeout per request as a Go duration string (e.g. "10s")
	Timeout string `toml:"timeout" yaml:"timeout"`

	// RequestsPerSecond is a client-side rate limit; 0 disables it
	RequestsPerSecond float64 `toml:"requests_per_second" yaml:"requests_per_second"`

	// UserAgent sent with each request
	UserAgent string `toml:"user_agent" yaml:"user_agent"`
}

// ShellConfig configures the interactive shell.
type ShellConfig struct {
	// Prompt printed before each line
	Prompt string `toml:"prompt" yaml:"prompt"`

	// History enables the persistent history file
	History bool `toml:"history" yaml:"history"`

	// HistoryLimit caps the number of saved history entries
	HistoryLimit int `toml:"history_limit" yaml:"history_limit"`
}

// UIConfig configures terminal output.
type UIConfig struct {
	// Color is one of auto, always, never
	Color string `toml:"color" yaml:"color"`
}

// Color modes accepted by UIConfig.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           "http://localhost:8080",
			Timeout:           "10s",
			RequestsPerSecond: 5,
			UserAgent:         "tasks-cli",
		},
		Shell: ShellConfig{
			Prompt:       "tasks> ",
			History:      true,
			HistoryLimit: 500,
		},
		UI: UIConfig{
			Color: ColorAuto,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the tasks-cli configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".tasks-cli"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathYAML returns the path to the YAML config file.
func ConfigPathYAML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// HistoryPath returns the path of the shell history file.
func HistoryPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from ~/.tasks-cli. TOML is tried first, then
// YAML, then built-in defaults. Environment overrides are applied last.
//
// A config file that exists but cannot be decoded does not abort start-up:
// defaults are returned together with the load error.
func Load() (*Config, error) {
	var loadErr error

	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathYAML} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		if err != nil {
			loadErr = err
			break
		}
		return cfg, nil
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, loadErr
}

// LoadTOML decodes a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadYAML decodes a YAML file into cfg.
func LoadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read YAML file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode YAML file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. The format is chosen by extension; anything that is not
// .yaml or .yml is read as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := LoadYAML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load YAML config from %s: %w", path, err)
		}
	default:
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}
	cfg.Source = path

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SetDefaults fills in zero values left by a partial config file.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.Timeout == "" {
		c.API.Timeout = defaults.API.Timeout
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = defaults.API.UserAgent
	}

	if c.Shell.Prompt == "" {
		c.Shell.Prompt = defaults.Shell.Prompt
	}
	if c.Shell.HistoryLimit <= 0 {
		c.Shell.HistoryLimit = defaults.Shell.HistoryLimit
	}

	if c.UI.Color == "" {
		c.UI.Color = defaults.UI.Color
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Host == "" {
		errs = append(errs, ValidationError{Field: "api.base_url", Message: fmt.Sprintf("invalid URL %q", c.API.BaseURL)})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, ValidationError{Field: "api.base_url", Message: "scheme must be http or https"})
	}

	if d, err := time.ParseDuration(c.API.Timeout); err != nil {
		errs = append(errs, ValidationError{Field: "api.timeout", Message: fmt.Sprintf("invalid duration %q", c.API.Timeout)})
	} else if d <= 0 {
		errs = append(errs, ValidationError{Field: "api.timeout", Message: "must be positive"})
	}

	if c.API.RequestsPerSecond < 0 {
		errs = append(errs, ValidationError{Field: "api.requests_per_second", Message: "must not be negative"})
	}

	switch c.UI.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, ValidationError{Field: "ui.color", Message: fmt.Sprintf("must be auto, always or never (got %q)", c.UI.Color)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TimeoutDuration returns API.Timeout parsed, or the default on error.
func (c *Config) TimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(c.API.Timeout); err == nil && d > 0 {
		return d
	}
	return 10 * time.Second
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - TASKS_API_URL: overrides api.base_url
//   - TASKS_TIMEOUT: overrides api.timeout
//   - TASKS_RATE_LIMIT: overrides api.requests_per_second
//   - TASKS_NO_COLOR: set to "1" or "true" to force ui.color = never
func (c *Config) ApplyEnvOverrides() {
	if url := os.Getenv("TASKS_API_URL"); url != "" {
		c.API.BaseURL = url
	}

	if timeout := os.Getenv("TASKS_TIMEOUT"); timeout != "" {
		c.API.Timeout = timeout
	}

	if limit := os.Getenv("TASKS_RATE_LIMIT"); limit != "" {
		if rps, err := strconv.ParseFloat(limit, 64); err == nil {
			c.API.RequestsPerSecond = rps
		}
	}

	if noColor := os.Getenv("TASKS_NO_COLOR"); noColor != "" {
		if noColor == "1" || strings.ToLower(noColor) == "true" {
			c.UI.Color = ColorNever
		}
	}
}
