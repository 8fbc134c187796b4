// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package seatpoll

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/viabus-travel/viabus/lib/clock"
)

// DefaultInterval is the refresh cadence used when Config.Interval is
// zero.
const DefaultInterval = 5 * time.Second

// Config configures a Poller.
type Config struct {
	// Fetch refreshes seat availability. Its error is logged, never
	// propagated; the next cycle retries regardless.
	Fetch func(ctx context.Context) error

	// Interval between fetches, measured from the end of one fetch
	// to the start of the next. Zero means DefaultInterval.
	Interval time.Duration

	// FetchOnStart runs one fetch immediately when the poller
	// starts instead of waiting out the first interval.
	FetchOnStart bool

	// Logger for fetch failures. Nil means slog.Default.
	Logger *slog.Logger

	// Clock drives the interval. Nil means the real clock.
	Clock clock.Clock
}

// Poller periodically invokes a fetch function from its own
// goroutine. Create one with New, stop it with Close.
type Poller struct {
	fetch        func(ctx context.Context) error
	interval     time.Duration
	fetchOnStart bool
	logger       *slog.Logger
	clk          clock.Clock

	ctx    context.Context
	cancel context.CancelFunc
	wake   chan struct{}
	done   chan struct{}

	mu      sync.Mutex
	visible bool
}

// New validates the configuration and starts the polling loop. The
// poller starts visible.
func New(cfg Config) (*Poller, error) {
	if cfg.Fetch == nil {
		return nil, fmt.Errorf("seatpoll: Fetch is required")
	}
	if cfg.Interval < 0 {
		return nil, fmt.Errorf("seatpoll: negative interval %v", cfg.Interval)
	}
	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Poller{
		fetch:        cfg.Fetch,
		interval:     cfg.Interval,
		fetchOnStart: cfg.FetchOnStart,
		logger:       cfg.Logger,
		clk:          cfg.Clock,
		ctx:          ctx,
		cancel:       cancel,
		wake:         make(chan struct{}, 1),
		done:         make(chan struct{}),
		visible:      true,
	}
	go p.run()
	return p, nil
}

// SetVisible pauses or resumes fetching. Hiding keeps the loop
// ticking but skips the fetch on each cycle; showing again triggers
// an immediate fetch so the view catches up without waiting out the
// interval.
func (p *Poller) SetVisible(visible bool) {
	p.mu.Lock()
	resumed := visible && !p.visible
	p.visible = visible
	p.mu.Unlock()
	if resumed {
		p.Poke()
	}
}

// Poke requests an immediate fetch. If a fetch is already running the
// request coalesces into one fetch right after it finishes.
func (p *Poller) Poke() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Close stops the polling loop and waits for any in-flight fetch to
// return. Safe to call more than once.
func (p *Poller) Close() {
	p.cancel()
	<-p.done
}

func (p *Poller) run() {
	defer close(p.done)

	if p.fetchOnStart {
		p.runFetch()
	}
	for {
		timer := p.clk.After(p.interval)
		select {
		case <-p.ctx.Done():
			return
		case <-timer:
			p.runFetch()
		case <-p.wake:
			p.runFetch()
		}
	}
}

func (p *Poller) runFetch() {
	p.mu.Lock()
	visible := p.visible
	p.mu.Unlock()
	if !visible {
		return
	}
	if err := p.fetch(p.ctx); err != nil {
		if p.ctx.Err() != nil {
			return
		}
		p.logger.Warn("seat status refresh failed", "error", err)
	}
}
