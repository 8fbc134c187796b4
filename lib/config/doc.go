// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the viabus
// client.
//
// Configuration is loaded from a single file specified by either the
// VIABUS_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks, no ~/.config discovery,
// and no automatic file search. This ensures deterministic, auditable
// configuration with no hidden overrides.
//
// The configuration file supports environment-specific sections
// (development, staging, production) that override base values when
// [Config].Environment matches. A production section typically points
// at the live inventory API while the base values target a local
// backend.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- inventory endpoint, polling cadence, layout catalog
//   - [Default] -- returns a Config with development defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other viabus packages.
package config
