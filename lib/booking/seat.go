// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package booking

import (
	"strings"
	"time"
)

// SeatStatus is the closed three-state availability of a seat as the
// client understands it. The inventory adapter folds whatever the
// backend reports (UNAVAILABLE, LOCKED, …) into these three.
type SeatStatus string

const (
	// SeatAvailable means the seat can be selected.
	SeatAvailable SeatStatus = "AVAILABLE"
	// SeatHeld means another session holds a time-bounded lock on the
	// seat. Held seats are not selectable but may come back.
	SeatHeld SeatStatus = "HELD"
	// SeatBooked means the seat is sold (or confirmed unavailable by
	// a conflict response) and will not come back for this trip.
	SeatBooked SeatStatus = "BOOKED"
)

// SeatType is the closed set of seat categories.
type SeatType string

const (
	SeatStandard SeatType = "STANDARD"
	SeatVIP      SeatType = "VIP"
	SeatSleeper  SeatType = "SLEEPER"
)

// NoPosition marks a seat row or column the backend did not supply.
// Seats without coordinates are placed by the fallback layout.
const NoPosition = -1

// Seat is one seat on one trip's bus.
type Seat struct {
	// ID is the stable server-assigned identifier.
	ID string
	// Number is the human label printed on the seat, e.g. "A1" or "12".
	Number string
	// Row and Column are zero-based grid coordinates, or NoPosition
	// when the backend supplied none.
	Row    int
	Column int
	// Deck is the zero-based deck index. Single-deck buses use 0.
	Deck int

	Type     SeatType
	Status   SeatStatus
	Price    float64
	Currency string
}

// Positioned reports whether the seat carries explicit coordinates.
func (s Seat) Positioned() bool {
	return s.Row != NoPosition && s.Column != NoPosition
}

// MatchKey returns the normalized form used when matching a seat
// against the identifiers in a poll result, which may carry ids or
// seat numbers in either case.
func MatchKey(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// SeatMapSnapshot is the client's cached view of a trip's seat map.
// It is replaced wholesale by loads and updated by reconciliation;
// RefreshedAt increases monotonically with each change.
type SeatMapSnapshot struct {
	LayoutID     string
	TripID       string
	BusType      string
	TotalRows    int
	TotalColumns int
	DeckCount    int
	Seats        []Seat
	RefreshedAt  time.Time
}

// SeatByID returns the seat with the given id, or false.
func (m *SeatMapSnapshot) SeatByID(id string) (Seat, bool) {
	for _, seat := range m.Seats {
		if seat.ID == id {
			return seat, true
		}
	}
	return Seat{}, false
}

// Hold is the time-bounded reservation covering the whole current
// selection. Token may be empty when the backend does not issue one;
// a zero ExpiresAt means no hold is active.
type Hold struct {
	Token     string
	ExpiresAt time.Time
}

// Active reports whether the hold has an expiry in the future of now.
func (h Hold) Active(now time.Time) bool {
	return !h.ExpiresAt.IsZero() && now.Before(h.ExpiresAt)
}
