// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package seatpoll

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/viabus-travel/viabus/lib/clock"
	"github.com/viabus-travel/viabus/lib/testutil"
)

const testTimeout = 5 * time.Second

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startPoller returns a running poller plus a channel that receives
// once per fetch.
func startPoller(t *testing.T, clk clock.Clock, cfg Config) (*Poller, chan struct{}) {
	t.Helper()
	fetches := make(chan struct{}, 16)
	cfg.Fetch = func(ctx context.Context) error {
		fetches <- struct{}{}
		return nil
	}
	cfg.Clock = clk
	cfg.Logger = discardLogger()
	poller, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(poller.Close)
	return poller, fetches
}

func TestPollerRequiresFetch(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error for missing Fetch")
	}
}

func TestPollerFetchesEachInterval(t *testing.T) {
	clk := clock.Fake(time.Unix(1000, 0))
	_, fetches := startPoller(t, clk, Config{Interval: 5 * time.Second})

	for cycle := range 3 {
		clk.WaitForTimers(1)
		clk.Advance(5 * time.Second)
		testutil.RequireReceive(t, fetches, testTimeout, "fetch for cycle %d", cycle)
	}
}

func TestPollerFetchOnStart(t *testing.T) {
	clk := clock.Fake(time.Unix(1000, 0))
	_, fetches := startPoller(t, clk, Config{Interval: 5 * time.Second, FetchOnStart: true})

	testutil.RequireReceive(t, fetches, testTimeout, "initial fetch")
	testutil.RequireNoReceive(t, fetches, 50*time.Millisecond, "no fetch before first interval")
}

func TestPollerHiddenSkipsFetches(t *testing.T) {
	clk := clock.Fake(time.Unix(1000, 0))
	poller, fetches := startPoller(t, clk, Config{Interval: 5 * time.Second})

	poller.SetVisible(false)
	for range 6 {
		clk.WaitForTimers(1)
		clk.Advance(5 * time.Second)
	}
	testutil.RequireNoReceive(t, fetches, 50*time.Millisecond, "no fetches while hidden")

	// Restoring visibility refreshes immediately, without waiting
	// out the interval.
	poller.SetVisible(true)
	testutil.RequireReceive(t, fetches, testTimeout, "catch-up fetch on show")
	testutil.RequireNoReceive(t, fetches, 50*time.Millisecond, "exactly one catch-up fetch")
}

func TestPollerSetVisibleIdempotent(t *testing.T) {
	clk := clock.Fake(time.Unix(1000, 0))
	poller, fetches := startPoller(t, clk, Config{Interval: 5 * time.Second})

	// Re-announcing an already-visible surface must not fetch.
	poller.SetVisible(true)
	testutil.RequireNoReceive(t, fetches, 50*time.Millisecond, "no fetch for redundant show")
}

func TestPollerPoke(t *testing.T) {
	clk := clock.Fake(time.Unix(1000, 0))
	poller, fetches := startPoller(t, clk, Config{Interval: 5 * time.Second})

	poller.Poke()
	testutil.RequireReceive(t, fetches, testTimeout, "poked fetch")
}

func TestPollerSwallowsFetchErrors(t *testing.T) {
	clk := clock.Fake(time.Unix(1000, 0))
	fetches := make(chan struct{}, 16)
	poller, err := New(Config{
		Interval: 5 * time.Second,
		Clock:    clk,
		Logger:   discardLogger(),
		Fetch: func(ctx context.Context) error {
			fetches <- struct{}{}
			return fmt.Errorf("inventory unreachable")
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer poller.Close()

	for cycle := range 2 {
		clk.WaitForTimers(1)
		clk.Advance(5 * time.Second)
		testutil.RequireReceive(t, fetches, testTimeout, "cycle %d survives fetch error", cycle)
	}
}

func TestPollerCloseStopsLoop(t *testing.T) {
	clk := clock.Fake(time.Unix(1000, 0))
	poller, fetches := startPoller(t, clk, Config{Interval: 5 * time.Second})

	clk.WaitForTimers(1)
	poller.Close()
	clk.Advance(time.Minute)
	testutil.RequireNoReceive(t, fetches, 50*time.Millisecond, "no fetches after Close")

	// Close is idempotent.
	poller.Close()
}
