// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for Viabus commands.
//
// Configuration is loaded from a single file specified by:
//   - VIABUS_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. The config file may
// contain environment-specific sections (development, staging,
// production) that override base values when the environment matches.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for Viabus.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Inventory configures the backend inventory client.
	Inventory InventoryConfig `yaml:"inventory"`

	// Polling configures the seat availability poller.
	Polling PollingConfig `yaml:"polling"`

	// Layout configures seat-map rendering.
	Layout LayoutConfig `yaml:"layout"`

	// EnvironmentOverrides contains per-environment overrides.
	// These are applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Inventory *InventoryConfig `yaml:"inventory,omitempty"`
	Polling   *PollingConfig   `yaml:"polling,omitempty"`
	Layout    *LayoutConfig    `yaml:"layout,omitempty"`
}

// InventoryConfig configures the backend inventory client.
type InventoryConfig struct {
	// BaseURL is the inventory API root, e.g. https://api.viabus.example.
	BaseURL string `yaml:"base_url"`

	// RequestTimeout bounds each API request.
	// Default: 15s
	RequestTimeout string `yaml:"request_timeout"`
}

// PollingConfig configures the seat availability poller.
type PollingConfig struct {
	// Interval between availability refreshes.
	// Default: 5s
	Interval string `yaml:"interval"`

	// FetchOnStart runs one refresh immediately when the seat map opens.
	// Default: true
	FetchOnStart bool `yaml:"fetch_on_start"`
}

// LayoutConfig configures seat-map rendering.
type LayoutConfig struct {
	// CatalogFile is an optional JSONC file of per-bus-type layout
	// templates used when a seat map arrives without coordinates.
	// Empty means the built-in coach template.
	CatalogFile string `yaml:"catalog_file"`
}

// Default returns the default configuration. These defaults are used
// as a base before loading the config file; the config file itself is
// required because there is no sensible default BaseURL.
func Default() *Config {
	return &Config{
		Environment: Development,
		Inventory: InventoryConfig{
			RequestTimeout: "15s",
		},
		Polling: PollingConfig{
			Interval:     "5s",
			FetchOnStart: true,
		},
	}
}

// Load loads configuration from the VIABUS_CONFIG environment variable.
//
// This is the only way to load configuration without an explicit path.
// There are no fallbacks or defaults - if VIABUS_CONFIG is not set, this fails.
func Load() (*Config, error) {
	configPath := os.Getenv("VIABUS_CONFIG")
	if configPath == "" {
		return nil, fmt.Errorf("VIABUS_CONFIG environment variable not set; " +
			"set it to the path of your viabus.yaml config file, or use --config flag")
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
//
// The config file is the single source of truth. Environment variables
// do not override config values. The only expansion performed is
// ${HOME} and similar path variables for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}

	if overrides == nil {
		return
	}

	if overrides.Inventory != nil {
		if overrides.Inventory.BaseURL != "" {
			c.Inventory.BaseURL = overrides.Inventory.BaseURL
		}
		if overrides.Inventory.RequestTimeout != "" {
			c.Inventory.RequestTimeout = overrides.Inventory.RequestTimeout
		}
	}

	if overrides.Polling != nil {
		if overrides.Polling.Interval != "" {
			c.Polling.Interval = overrides.Polling.Interval
		}
		// FetchOnStart is a bool, so we always apply it from overrides.
		c.Polling.FetchOnStart = overrides.Polling.FetchOnStart
	}

	if overrides.Layout != nil {
		if overrides.Layout.CatalogFile != "" {
			c.Layout.CatalogFile = overrides.Layout.CatalogFile
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Layout.CatalogFile = expandVars(c.Layout.CatalogFile, vars)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Inventory.BaseURL == "" {
		errs = append(errs, fmt.Errorf("inventory.base_url is required"))
	} else if _, err := url.ParseRequestURI(c.Inventory.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("inventory.base_url: %w", err))
	}

	if _, err := c.RequestTimeout(); err != nil {
		errs = append(errs, fmt.Errorf("inventory.request_timeout: %w", err))
	}
	if _, err := c.PollInterval(); err != nil {
		errs = append(errs, fmt.Errorf("polling.interval: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// RequestTimeout parses the inventory request timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	return parsePositiveDuration(c.Inventory.RequestTimeout)
}

// PollInterval parses the availability poll interval.
func (c *Config) PollInterval() (time.Duration, error) {
	return parsePositiveDuration(c.Polling.Interval)
}

func parsePositiveDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %s must be positive", s)
	}
	return d, nil
}
