// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the viabus CLI.
//
// The central type is [Command], which represents a named subcommand
// with optional nested [Command.Subcommands], a [pflag.FlagSet]
// factory, and a Run function. Commands are assembled into a tree in
// cmd/viabus/commands and dispatched via [Command.Execute], which
// handles flag parsing, subcommand routing, and structured help output
// with examples.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3).
//
// [NewCommandLogger] builds the slog logger for plain commands: text
// to a terminal, JSON when stderr is redirected. [NewProgramLogger]
// builds the logger used while a TUI owns the terminal: records go to
// a JSON file, or nowhere.
package cli
