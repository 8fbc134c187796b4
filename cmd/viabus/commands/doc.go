// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the viabus command tree and wires the
// application together: config file → inventory client → session
// store → hold coordinator → availability poller → TUI program.
package commands
