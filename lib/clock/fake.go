// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake returns a FakeClock frozen at initial. Time moves only through
// Advance. Safe for concurrent use.
func Fake(initial time.Time) *FakeClock {
	fake := &FakeClock{current: initial}
	fake.registered = sync.NewCond(&fake.mu)
	return fake
}

// FakeClock is a deterministic Clock for tests. Timers and tickers
// fire, in deadline order, when Advance moves the clock past their
// deadline. AfterFunc callbacks run synchronously inside Advance, so
// they must not call Advance themselves.
type FakeClock struct {
	mu         sync.Mutex
	current    time.Time
	pending    []*fakeTimer
	registered *sync.Cond
}

// fakeTimer is one scheduled event: a one-shot (After, AfterFunc) or
// a repeating ticker (interval > 0).
type fakeTimer struct {
	deadline time.Time
	interval time.Duration
	ch       chan time.Time // nil for AfterFunc
	fn       func()         // nil for channel timers
	dead     bool           // stopped or fired
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// After returns a channel that receives once the clock advances by d.
// If d <= 0 the channel receives immediately.
func (c *FakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan time.Time, 1)
	if d <= 0 {
		ch <- c.current
		return ch
	}
	c.addLocked(&fakeTimer{deadline: c.current.Add(d), ch: ch})
	return ch
}

// AfterFunc schedules f to run when the clock advances by d. If
// d <= 0, f runs synchronously before AfterFunc returns.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	if d <= 0 {
		f()
		return &Timer{stop: func() bool { return false }}
	}

	c.mu.Lock()
	timer := &fakeTimer{deadline: c.current.Add(d), fn: f}
	c.addLocked(timer)
	c.mu.Unlock()

	return &Timer{stop: func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if timer.dead {
			return false
		}
		timer.dead = true
		return true
	}}
}

// NewTicker returns a Ticker firing every d fake-time units. Panics
// if d <= 0.
func (c *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive ticker interval")
	}

	c.mu.Lock()
	ch := make(chan time.Time, 1)
	timer := &fakeTimer{deadline: c.current.Add(d), interval: d, ch: ch}
	c.addLocked(timer)
	c.mu.Unlock()

	return &Ticker{
		C: ch,
		stop: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			timer.dead = true
		},
	}
}

// Advance moves the clock forward by d, firing every timer whose
// deadline falls within the new window, in deadline order. Tickers
// spanning several intervals fire once per interval; ticks that find
// the channel buffer full are dropped, matching time.Ticker.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	target := c.current
	c.mu.Unlock()

	for {
		next := c.takeNextExpiredBefore(target)
		if next == nil {
			return
		}
		if next.fn != nil {
			next.fn()
		} else {
			select {
			case next.ch <- target:
			default:
			}
		}
	}
}

// PendingCount reports the number of live timers and tickers. Tests
// use this to assert that a component cleaned up its timers.
func (c *FakeClock) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, timer := range c.pending {
		if !timer.dead {
			count++
		}
	}
	return count
}

// WaitForTimers blocks until at least n timers or tickers are
// registered. Bridges the race between a goroutine scheduling its
// timer and the test advancing the clock.
func (c *FakeClock) WaitForTimers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		count := 0
		for _, timer := range c.pending {
			if !timer.dead {
				count++
			}
		}
		if count >= n {
			return
		}
		c.registered.Wait()
	}
}

// addLocked registers a timer. Caller holds c.mu.
func (c *FakeClock) addLocked(timer *fakeTimer) {
	c.pending = append(c.pending, timer)
	c.registered.Broadcast()
}

// takeNextExpiredBefore removes and returns the earliest-deadline live
// timer at or before target, rescheduling tickers for their next
// interval. Returns nil when nothing is due.
func (c *FakeClock) takeNextExpiredBefore(target time.Time) *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.SliceStable(c.pending, func(i, j int) bool {
		return c.pending[i].deadline.Before(c.pending[j].deadline)
	})

	for index, timer := range c.pending {
		if timer.dead {
			continue
		}
		if timer.deadline.After(target) {
			break
		}
		if timer.interval > 0 {
			fired := *timer
			timer.deadline = timer.deadline.Add(timer.interval)
			return &fired
		}
		timer.dead = true
		c.pending = append(c.pending[:index], c.pending[index+1:]...)
		return timer
	}
	return nil
}
