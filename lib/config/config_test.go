// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Environment != Development {
		t.Errorf("expected environment=development, got %s", cfg.Environment)
	}

	if cfg.Inventory.RequestTimeout != "15s" {
		t.Errorf("expected request_timeout=15s, got %s", cfg.Inventory.RequestTimeout)
	}

	if cfg.Polling.Interval != "5s" {
		t.Errorf("expected interval=5s, got %s", cfg.Polling.Interval)
	}

	if !cfg.Polling.FetchOnStart {
		t.Error("expected fetch_on_start=true by default")
	}
}

func TestLoad_RequiresViabusConfig(t *testing.T) {
	// Save and restore VIABUS_CONFIG.
	origConfig := os.Getenv("VIABUS_CONFIG")
	defer os.Setenv("VIABUS_CONFIG", origConfig)

	// Unset VIABUS_CONFIG - Load() should fail.
	os.Unsetenv("VIABUS_CONFIG")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when VIABUS_CONFIG not set, got nil")
	}

	expectedMsg := "VIABUS_CONFIG environment variable not set"
	if err.Error()[:len(expectedMsg)] != expectedMsg {
		t.Errorf("expected error message to start with %q, got %q", expectedMsg, err.Error())
	}
}

func TestLoad_WithViabusConfig(t *testing.T) {
	// Save and restore VIABUS_CONFIG.
	origConfig := os.Getenv("VIABUS_CONFIG")
	defer os.Setenv("VIABUS_CONFIG", origConfig)

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "viabus.yaml")

	configContent := `
environment: staging
inventory:
  base_url: https://staging.api.viabus.example
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	os.Setenv("VIABUS_CONFIG", configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Environment != Staging {
		t.Errorf("expected environment=staging, got %s", cfg.Environment)
	}

	if cfg.Inventory.BaseURL != "https://staging.api.viabus.example" {
		t.Errorf("expected staging base URL, got %s", cfg.Inventory.BaseURL)
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "viabus.yaml")

	configContent := `
environment: staging

inventory:
  base_url: https://api.viabus.example
  request_timeout: 30s

polling:
  interval: 10s
  fetch_on_start: false

layout:
  catalog_file: /etc/viabus/layouts.jsonc
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Environment != Staging {
		t.Errorf("expected environment=staging, got %s", cfg.Environment)
	}

	if cfg.Inventory.BaseURL != "https://api.viabus.example" {
		t.Errorf("expected base_url=https://api.viabus.example, got %s", cfg.Inventory.BaseURL)
	}

	timeout, err := cfg.RequestTimeout()
	if err != nil || timeout != 30*time.Second {
		t.Errorf("expected request_timeout=30s, got %v (%v)", timeout, err)
	}

	interval, err := cfg.PollInterval()
	if err != nil || interval != 10*time.Second {
		t.Errorf("expected interval=10s, got %v (%v)", interval, err)
	}

	if cfg.Polling.FetchOnStart {
		t.Error("expected fetch_on_start=false")
	}

	if cfg.Layout.CatalogFile != "/etc/viabus/layouts.jsonc" {
		t.Errorf("expected catalog_file=/etc/viabus/layouts.jsonc, got %s", cfg.Layout.CatalogFile)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "viabus.yaml")

	configContent := `
environment: production

inventory:
  base_url: https://dev.api.viabus.example

polling:
  interval: 5s
  fetch_on_start: true

production:
  inventory:
    base_url: https://api.viabus.example
  polling:
    interval: 15s
    fetch_on_start: false
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	// Production overrides should be applied.
	if cfg.Inventory.BaseURL != "https://api.viabus.example" {
		t.Errorf("expected production base URL, got %s", cfg.Inventory.BaseURL)
	}

	interval, err := cfg.PollInterval()
	if err != nil || interval != 15*time.Second {
		t.Errorf("expected interval=15s from production override, got %v (%v)", interval, err)
	}

	if cfg.Polling.FetchOnStart {
		t.Error("expected fetch_on_start=false from production override")
	}
}

func TestEnvVarsDoNotOverride(t *testing.T) {
	// Verify that environment variables do NOT override config file values.
	// The config file is the single source of truth.

	origBase := os.Getenv("VIABUS_BASE_URL")
	origEnv := os.Getenv("VIABUS_ENVIRONMENT")
	defer func() {
		os.Setenv("VIABUS_BASE_URL", origBase)
		os.Setenv("VIABUS_ENVIRONMENT", origEnv)
	}()

	os.Setenv("VIABUS_BASE_URL", "https://env.viabus.example")
	os.Setenv("VIABUS_ENVIRONMENT", "staging")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "viabus.yaml")

	configContent := `
environment: development
inventory:
  base_url: https://file.viabus.example
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Environment != Development {
		t.Errorf("expected environment=development from file, got %s (env vars should not override)", cfg.Environment)
	}

	if cfg.Inventory.BaseURL != "https://file.viabus.example" {
		t.Errorf("expected base URL from file, got %s (env vars should not override)", cfg.Inventory.BaseURL)
	}
}

func TestExpandVars(t *testing.T) {
	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/viabus/layouts.jsonc",
			vars:     map[string]string{"HOME": "/home/user"},
			expected: "/home/user/viabus/layouts.jsonc",
		},
		{
			input:    "${MISSING:-default}",
			vars:     map[string]string{},
			expected: "default",
		},
		{
			input:    "${PRESENT:-default}",
			vars:     map[string]string{"PRESENT": "value"},
			expected: "value",
		},
		{
			input:    "${A}/${B}",
			vars:     map[string]string{"A": "first", "B": "second"},
			expected: "first/second",
		},
		{
			input:    "no variables here",
			vars:     map[string]string{},
			expected: "no variables here",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Inventory.BaseURL = "https://api.viabus.example"
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid environment",
			modify: func(c *Config) {
				c.Environment = "invalid"
			},
			wantErr: true,
		},
		{
			name: "missing base URL",
			modify: func(c *Config) {
				c.Inventory.BaseURL = ""
			},
			wantErr: true,
		},
		{
			name: "unparseable timeout",
			modify: func(c *Config) {
				c.Inventory.RequestTimeout = "soon"
			},
			wantErr: true,
		},
		{
			name: "negative poll interval",
			modify: func(c *Config) {
				c.Polling.Interval = "-5s"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
