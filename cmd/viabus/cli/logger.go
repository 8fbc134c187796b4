// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for plain (non-TUI)
// command output. When stderr is a terminal it uses slog.TextHandler
// for human-readable output; when stderr is piped or redirected (CI,
// scripts) it uses slog.JSONHandler for machine-parseable output.
func NewCommandLogger() *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

// NewProgramLogger creates the logger used while a TUI owns the
// terminal. Writing to stderr would tear the alternate screen, so
// records go to the JSON file at path, or nowhere when path is empty.
// The returned close function flushes and closes the file; it is
// non-nil in both cases.
func NewProgramLogger(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		handler := slog.NewJSONHandler(io.Discard, nil)
		return slog.New(handler), func() error { return nil }, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	options := &slog.HandlerOptions{Level: slog.LevelDebug}
	return slog.New(slog.NewJSONHandler(file, options)), file.Close, nil
}
