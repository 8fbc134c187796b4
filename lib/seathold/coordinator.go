// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package seathold

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/zeebo/blake3"

	"github.com/viabus-travel/viabus/lib/booking"
	"github.com/viabus-travel/viabus/lib/clock"
	"github.com/viabus-travel/viabus/lib/inventory"
	"github.com/viabus-travel/viabus/lib/session"
)

// eventBuffer sizes the Events channel. Sends never block; an event
// the consumer is too slow to take is dropped and logged.
const eventBuffer = 64

// Config configures a Coordinator.
type Config struct {
	// Store holds the booking session the coordinator mutates.
	Store *session.Store

	// Inventory is the backend used for holds, releases, and
	// availability refreshes.
	Inventory inventory.Service

	// Logger for background request outcomes. Nil means
	// slog.Default.
	Logger *slog.Logger

	// Clock drives the expiry timer and countdown. Nil means the
	// real clock.
	Clock clock.Clock
}

// Coordinator owns the seat-hold state machine for one booking
// session. All methods are safe for concurrent use.
type Coordinator struct {
	store  *session.Store
	inv    inventory.Service
	logger *slog.Logger
	clk    clock.Clock

	ctx    context.Context
	cancel context.CancelFunc
	events chan Event
	wg     sync.WaitGroup

	mu              sync.Mutex
	closed          bool
	lastHeldKey     string
	expiryTimer     *clock.Timer
	countdownTicker *clock.Ticker
	countdownStop   chan struct{}
}

// New validates the configuration and returns a running Coordinator.
func New(cfg Config) (*Coordinator, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("seathold: Store is required")
	}
	if cfg.Inventory == nil {
		return nil, fmt.Errorf("seathold: Inventory is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.Real()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		store:  cfg.Store,
		inv:    cfg.Inventory,
		logger: cfg.Logger,
		clk:    cfg.Clock,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, eventBuffer),
	}, nil
}

// Events is the stream of state changes. Closed by Close.
func (c *Coordinator) Events() <-chan Event {
	return c.events
}

// ToggleSeat selects or deselects a seat. Selecting updates the
// local selection immediately and requests a hold for the whole
// selection in the background. Deselecting releases the seat
// best-effort and re-holds the remainder.
func (c *Coordinator) ToggleSeat(seat booking.Seat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	if c.store.IsSelected(seat.ID) {
		c.store.RemoveSeat(seat.ID)
		c.releaseLocked([]string{seat.ID})
		c.holdSelectionLocked("")
		return
	}

	if seat.Status != booking.SeatAvailable {
		c.emit(SelectionRejected{Seat: seat, Reason: "seat is no longer available"})
		return
	}

	c.store.AddSeat(seat)
	c.holdSelectionLocked(seat.ID)
}

// ClearSelection drops every selected seat, releasing any hold
// best-effort. Passenger drafts tied to the seats go with them.
func (c *Coordinator) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if ids := c.store.SelectedSeatIDs(); len(ids) > 0 {
		c.releaseLocked(ids)
	}
	c.teardownHoldLocked()
}

// RefreshAvailability fetches the trip's free seats and reconciles
// them into the seat map. Seats selected by this session always read
// as available; a held seat never becomes booked through polling,
// only through an explicit hold conflict. Intended as a seatpoll
// fetch function.
func (c *Coordinator) RefreshAvailability(ctx context.Context) error {
	trip, ok := c.store.Trip()
	if !ok {
		return nil
	}
	free, err := c.inv.RefreshSeatStatuses(ctx, trip.ID)
	if err != nil {
		return fmt.Errorf("seathold: refresh availability: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	snapshot, ok := c.store.SeatMap()
	if !ok {
		return nil
	}

	available := make(map[string]struct{}, len(free))
	for _, identifier := range free {
		available[booking.MatchKey(identifier)] = struct{}{}
	}
	isFree := func(seat booking.Seat) bool {
		if _, ok := available[booking.MatchKey(seat.ID)]; ok {
			return true
		}
		_, ok := available[booking.MatchKey(seat.Number)]
		return ok
	}

	for i := range snapshot.Seats {
		seat := &snapshot.Seats[i]
		switch {
		case c.store.IsSelected(seat.ID):
			seat.Status = booking.SeatAvailable
		case isFree(*seat):
			seat.Status = booking.SeatAvailable
		case seat.Status == booking.SeatHeld:
			// Stays held until a conflict proves otherwise.
		default:
			seat.Status = booking.SeatBooked
		}
	}
	snapshot.RefreshedAt = c.clk.Now()
	c.store.SetSeatMap(&snapshot)
	c.emit(AvailabilityUpdated{})
	return nil
}

// Close releases any held seats best-effort, clears the session's
// selection and hold, stops the timers, and closes the events
// channel. Safe to call more than once.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	ids := c.store.SelectedSeatIDs()
	trip, hasTrip := c.store.Trip()
	c.store.ClearSeats()
	c.stopExpiryLocked()
	c.stopCountdownLocked()
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()

	if len(ids) > 0 && hasTrip {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := c.inv.ReleaseSeats(ctx, trip.ID, ids); err != nil {
			c.logger.Debug("final seat release failed", "error", err)
		}
	}
	close(c.events)
}

// holdSelectionLocked requests a hold covering the current selection
// if its key differs from the last one held. An empty selection tears
// the hold down instead. Caller holds c.mu.
func (c *Coordinator) holdSelectionLocked(triggerSeatID string) {
	ids := c.store.SelectedSeatIDs()
	if len(ids) == 0 {
		c.teardownHoldLocked()
		return
	}

	key := selectionKey(ids)
	if key == c.lastHeldKey {
		return
	}
	trip, ok := c.store.Trip()
	if !ok {
		c.logger.Warn("seat selected with no trip in session")
		return
	}
	numbers := c.store.SelectedSeatNumbers()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		hold, err := c.inv.HoldSeats(c.ctx, trip.ID, ids, numbers)
		c.handleHoldResult(key, triggerSeatID, hold, err)
	}()
}

// handleHoldResult applies a hold response, unless the selection has
// moved on since the request was tagged.
func (c *Coordinator) handleHoldResult(key, triggerSeatID string, hold booking.Hold, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if key != selectionKey(c.store.SelectedSeatIDs()) {
		c.logger.Debug("discarding stale hold response", "key", key)
		return
	}

	if err == nil {
		c.lastHeldKey = key
		c.store.SetHoldInfo(hold.Token, hold.ExpiresAt)
		c.armExpiryLocked(hold.ExpiresAt)
		c.startCountdownLocked(hold.ExpiresAt)
		c.emit(HoldPlaced{Token: hold.Token, ExpiresAt: hold.ExpiresAt})
		return
	}

	if errors.Is(err, inventory.ErrConflict) && triggerSeatID != "" {
		taken := booking.Seat{ID: triggerSeatID}
		if snapshot, ok := c.store.SeatMap(); ok {
			for i := range snapshot.Seats {
				if snapshot.Seats[i].ID == triggerSeatID {
					snapshot.Seats[i].Status = booking.SeatBooked
					taken = snapshot.Seats[i]
				}
			}
			snapshot.RefreshedAt = c.clk.Now()
			c.store.SetSeatMap(&snapshot)
		}
		c.store.RemoveSeat(triggerSeatID)
		c.lastHeldKey = ""
		c.emit(SeatTaken{Seat: taken})
		c.holdSelectionLocked("")
		return
	}

	// Any other failure keeps the selection, unheld. Changing the
	// selection retries.
	c.logger.Warn("seat hold failed", "error", err)
	c.emit(HoldFailed{Err: err})
}

// expire runs when the hold TTL elapses.
func (c *Coordinator) expire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.expireLocked()
}

func (c *Coordinator) expireLocked() {
	if ids := c.store.SelectedSeatIDs(); len(ids) > 0 {
		c.releaseLocked(ids)
	}
	c.teardownHoldLocked()
	c.emit(HoldExpired{})
}

// teardownHoldLocked clears the selection, passenger drafts, and hold
// together and stops the timers. Caller holds c.mu.
func (c *Coordinator) teardownHoldLocked() {
	c.store.ClearSeats()
	c.stopExpiryLocked()
	c.stopCountdownLocked()
	c.lastHeldKey = ""
}

// releaseLocked releases seats in the background. Failures are
// logged only; the server TTL reclaims anything we miss.
func (c *Coordinator) releaseLocked(seatIDs []string) {
	trip, ok := c.store.Trip()
	if !ok {
		return
	}
	ids := slices.Clone(seatIDs)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.inv.ReleaseSeats(c.ctx, trip.ID, ids); err != nil && c.ctx.Err() == nil {
			c.logger.Debug("seat release failed", "seats", ids, "error", err)
		}
	}()
}

func (c *Coordinator) armExpiryLocked(expiresAt time.Time) {
	c.stopExpiryLocked()
	remaining := expiresAt.Sub(c.clk.Now())
	if remaining <= 0 {
		c.expireLocked()
		return
	}
	c.expiryTimer = c.clk.AfterFunc(remaining, c.expire)
}

func (c *Coordinator) stopExpiryLocked() {
	if c.expiryTimer != nil {
		c.expiryTimer.Stop()
		c.expiryTimer = nil
	}
}

// startCountdownLocked replaces the countdown goroutine with one
// ticking toward expiresAt. The ticker is created here so it exists
// before the HoldPlaced event goes out. Caller holds c.mu.
func (c *Coordinator) startCountdownLocked(expiresAt time.Time) {
	c.stopCountdownLocked()
	stop := make(chan struct{})
	ticker := c.clk.NewTicker(time.Second)
	c.countdownStop = stop
	c.countdownTicker = ticker

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-c.ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				remaining := expiresAt.Sub(c.clk.Now())
				c.emit(Countdown{Remaining: remaining, Display: FormatRemaining(remaining)})
				if remaining <= 0 {
					return
				}
			}
		}
	}()
}

func (c *Coordinator) stopCountdownLocked() {
	if c.countdownStop != nil {
		c.countdownTicker.Stop()
		close(c.countdownStop)
		c.countdownStop = nil
		c.countdownTicker = nil
	}
}

// emit delivers an event without blocking.
func (c *Coordinator) emit(event Event) {
	select {
	case c.events <- event:
	default:
		c.logger.Debug("dropping event, consumer is behind", "event", fmt.Sprintf("%T", event))
	}
}

// selectionKey digests a seat-id set into a tag that identifies the
// selection independent of ordering. The empty selection is "".
func selectionKey(seatIDs []string) string {
	if len(seatIDs) == 0 {
		return ""
	}
	sorted := make([]string, len(seatIDs))
	for i, id := range seatIDs {
		sorted[i] = booking.MatchKey(id)
	}
	slices.Sort(sorted)

	hasher := blake3.New()
	for _, id := range sorted {
		hasher.Write([]byte(id))
		hasher.Write([]byte{0})
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
