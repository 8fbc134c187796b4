// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package seathold

import (
	"fmt"
	"time"

	"github.com/viabus-travel/viabus/lib/booking"
)

// Event is a state change announced on Coordinator.Events. The
// concrete types below are the only implementations.
type Event interface {
	coordinatorEvent()
}

// HoldPlaced reports a successful hold covering the whole current
// selection.
type HoldPlaced struct {
	Token     string
	ExpiresAt time.Time
}

// HoldFailed reports a hold request that failed for a reason other
// than a seat conflict. The selection is kept but unheld.
type HoldFailed struct {
	Err error
}

// SeatTaken reports that another session took the seat before the
// hold landed. The seat has been marked booked and dropped from the
// selection.
type SeatTaken struct {
	Seat booking.Seat
}

// SelectionRejected reports an attempt to select a seat that is not
// available.
type SelectionRejected struct {
	Seat   booking.Seat
	Reason string
}

// HoldExpired reports that the hold ran out. The selection, passenger
// drafts, and hold have been cleared.
type HoldExpired struct{}

// Countdown is the once-per-second hold countdown tick.
type Countdown struct {
	Remaining time.Duration
	Display   string
}

// AvailabilityUpdated reports that a poll cycle reconciled seat
// statuses into the seat map.
type AvailabilityUpdated struct{}

func (HoldPlaced) coordinatorEvent()          {}
func (HoldFailed) coordinatorEvent()          {}
func (SeatTaken) coordinatorEvent()           {}
func (SelectionRejected) coordinatorEvent()   {}
func (HoldExpired) coordinatorEvent()         {}
func (Countdown) coordinatorEvent()           {}
func (AvailabilityUpdated) coordinatorEvent() {}

// FormatRemaining renders a countdown as MM:SS, or "Expired" once the
// duration reaches zero.
func FormatRemaining(remaining time.Duration) string {
	if remaining <= 0 {
		return "Expired"
	}
	total := int(remaining.Round(time.Second) / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
