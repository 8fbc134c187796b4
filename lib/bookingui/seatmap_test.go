// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package bookingui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/viabus-travel/viabus/lib/booking"
	"github.com/viabus-travel/viabus/lib/seatlayout"
	"github.com/viabus-travel/viabus/lib/session"
)

// seatMapSession builds a session holding a fallback-normalized map
// of n unpositioned seats.
func seatMapSession(n int) *session.Store {
	store := session.New()
	store.SetTrip(&booking.Trip{ID: "trip-1", OriginCity: "Hanoi", DestinationCity: "Sapa"})

	seats := make([]booking.Seat, n)
	for i := range seats {
		seats[i] = booking.Seat{
			ID:       fmt.Sprintf("seat-%d", i+1),
			Number:   fmt.Sprintf("%d", i+1),
			Row:      booking.NoPosition,
			Column:   booking.NoPosition,
			Status:   booking.SeatAvailable,
			Price:    20,
			Currency: "USD",
		}
	}
	normalized := seatlayout.Normalize(booking.SeatMapSnapshot{TripID: "trip-1", Seats: seats}, nil)
	store.SetSeatMap(&normalized)
	return store
}

func keyMsg(binding string) tea.KeyMsg {
	switch binding {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(binding)}
	}
}

func TestSeatMapCursorSkipsAisle(t *testing.T) {
	store := seatMapSession(13)
	m := NewSeatMap(DefaultTheme, DefaultKeyMap, store)
	m.Reset()

	seat, ok := m.CursorSeat()
	if !ok || seat.Number != "1" {
		t.Fatalf("cursor starts on %+v, want seat 1", seat)
	}

	// Row 0 occupies columns 0, 1, 3, 4. Moving right from column 1
	// must land on column 3, skipping the aisle.
	m, _ = m.Update(keyMsg("right"))
	m, _ = m.Update(keyMsg("right"))
	seat, _ = m.CursorSeat()
	if seat.Number != "3" || seat.Column != 3 {
		t.Fatalf("cursor on %+v, want seat 3 at column 3", seat)
	}
}

func TestSeatMapCursorStopsAtEdge(t *testing.T) {
	store := seatMapSession(13)
	m := NewSeatMap(DefaultTheme, DefaultKeyMap, store)
	m.Reset()

	// Left from the first seat has nowhere to go.
	m, _ = m.Update(keyMsg("left"))
	seat, _ := m.CursorSeat()
	if seat.Number != "1" {
		t.Fatalf("cursor moved off the grid to %+v", seat)
	}
}

func TestSeatMapCursorMovesBetweenRows(t *testing.T) {
	store := seatMapSession(13)
	m := NewSeatMap(DefaultTheme, DefaultKeyMap, store)
	m.Reset()

	m, _ = m.Update(keyMsg("down"))
	seat, _ := m.CursorSeat()
	if seat.Row != 1 || seat.Number != "5" {
		t.Fatalf("cursor on %+v, want seat 5 in row 1", seat)
	}

	m, _ = m.Update(keyMsg("down"))
	seat, _ = m.CursorSeat()
	if seat.Row != 2 || seat.Number != "9" {
		t.Fatalf("cursor on %+v, want seat 9 in row 2", seat)
	}
}

func TestSeatMapViewShowsSelectionSummary(t *testing.T) {
	store := seatMapSession(13)
	store.AddSeat(booking.Seat{ID: "seat-2", Number: "2", Price: 20, Currency: "USD"})

	m := NewSeatMap(DefaultTheme, DefaultKeyMap, store)
	m.Reset()
	m.SetCountdown("04:59")

	view := m.View()
	if !strings.Contains(view, "selected 2") {
		t.Errorf("view missing selection summary:\n%s", view)
	}
	if !strings.Contains(view, "04:59") {
		t.Errorf("view missing countdown:\n%s", view)
	}
	if !strings.Contains(view, "available") || !strings.Contains(view, "booked") {
		t.Errorf("view missing legend:\n%s", view)
	}
}

func TestSeatMapViewWithoutSnapshot(t *testing.T) {
	m := NewSeatMap(DefaultTheme, DefaultKeyMap, session.New())
	if view := m.View(); !strings.Contains(view, "loading") {
		t.Errorf("empty-session view = %q", view)
	}
}
