// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package seatlayout

import (
	"fmt"
	"testing"

	"github.com/viabus-travel/viabus/lib/booking"
)

func unpositionedSeats(count int) []booking.Seat {
	seats := make([]booking.Seat, count)
	for i := range seats {
		seats[i] = booking.Seat{
			ID:     fmt.Sprintf("seat-%d", i+1),
			Number: fmt.Sprintf("%d", i+1),
			Row:    booking.NoPosition,
			Column: booking.NoPosition,
			Status: booking.SeatAvailable,
		}
	}
	return seats
}

func TestNormalizePassThrough(t *testing.T) {
	snapshot := booking.SeatMapSnapshot{
		TotalRows:    2,
		TotalColumns: 3,
		Seats: []booking.Seat{
			{ID: "a", Number: "1", Row: 0, Column: 0},
			{ID: "b", Number: "2", Row: 1, Column: 2},
		},
	}

	got := Normalize(snapshot, nil)
	if got.TotalRows != 2 || got.TotalColumns != 3 {
		t.Fatalf("pass-through changed grid size: %dx%d", got.TotalRows, got.TotalColumns)
	}
	for i, seat := range got.Seats {
		if seat.Row != snapshot.Seats[i].Row || seat.Column != snapshot.Seats[i].Column {
			t.Fatalf("pass-through moved seat %q to (%d,%d)", seat.ID, seat.Row, seat.Column)
		}
	}
}

func TestNormalizeFallbackThirteenSeats(t *testing.T) {
	snapshot := booking.SeatMapSnapshot{Seats: unpositionedSeats(13)}

	got := Normalize(snapshot, nil)
	if got.TotalRows != 3 {
		t.Fatalf("TotalRows = %d, want 3", got.TotalRows)
	}
	if got.TotalColumns != 5 {
		t.Fatalf("TotalColumns = %d, want 5", got.TotalColumns)
	}

	wantColumns := map[int][]int{
		0: {0, 1, 3, 4},
		1: {0, 1, 3, 4},
		2: {0, 1, 2, 3, 4},
	}
	byRow := make(map[int][]int)
	for _, seat := range got.Seats {
		byRow[seat.Row] = append(byRow[seat.Row], seat.Column)
	}
	for row, want := range wantColumns {
		columns := byRow[row]
		if len(columns) != len(want) {
			t.Fatalf("row %d has %d seats, want %d", row, len(columns), len(want))
		}
		for i, column := range columns {
			if column != want[i] {
				t.Fatalf("row %d columns = %v, want %v", row, columns, want)
			}
		}
	}

	// Seat numbers fill left to right, top to bottom.
	if got.Seats[0].Number != "1" || got.Seats[0].Row != 0 || got.Seats[0].Column != 0 {
		t.Fatalf("first seat = %+v", got.Seats[0])
	}
	last := got.Seats[len(got.Seats)-1]
	if last.Number != "13" || last.Row != 2 || last.Column != 4 {
		t.Fatalf("last seat = %+v", last)
	}
}

func TestNormalizeFallbackStopsWhenFiveRemain(t *testing.T) {
	// Seven seats: the first row stops after two so the final row
	// keeps its full five-across bench.
	snapshot := booking.SeatMapSnapshot{Seats: unpositionedSeats(7)}

	got := Normalize(snapshot, nil)
	if got.TotalRows != 2 {
		t.Fatalf("TotalRows = %d, want 2", got.TotalRows)
	}

	var rowCounts [2]int
	for _, seat := range got.Seats {
		rowCounts[seat.Row]++
	}
	if rowCounts[0] != 2 || rowCounts[1] != 5 {
		t.Fatalf("row counts = %v, want [2 5]", rowCounts)
	}
	if got.Seats[0].Column != 0 || got.Seats[1].Column != 1 {
		t.Fatalf("first row columns = %d,%d, want 0,1", got.Seats[0].Column, got.Seats[1].Column)
	}
}

func TestNormalizeFallbackFewSeats(t *testing.T) {
	snapshot := booking.SeatMapSnapshot{Seats: unpositionedSeats(3)}

	got := Normalize(snapshot, nil)
	if got.TotalRows != 1 {
		t.Fatalf("TotalRows = %d, want 1", got.TotalRows)
	}
	for i, seat := range got.Seats {
		if seat.Row != 0 || seat.Column != i {
			t.Fatalf("seat %d at (%d,%d), want (0,%d)", i, seat.Row, seat.Column, i)
		}
	}
}

func TestNormalizeFallbackEmpty(t *testing.T) {
	got := Normalize(booking.SeatMapSnapshot{}, nil)
	if got.TotalRows != 1 || got.TotalColumns != 5 || got.DeckCount != 1 {
		t.Fatalf("empty snapshot normalized to %dx%d decks=%d", got.TotalRows, got.TotalColumns, got.DeckCount)
	}
}

func TestNormalizeSortsByNumericSeatNumber(t *testing.T) {
	snapshot := booking.SeatMapSnapshot{Seats: []booking.Seat{
		{ID: "c", Number: "A10", Row: booking.NoPosition, Column: booking.NoPosition},
		{ID: "a", Number: "A2", Row: booking.NoPosition, Column: booking.NoPosition},
		{ID: "d", Number: "AISLE", Row: booking.NoPosition, Column: booking.NoPosition},
		{ID: "b", Number: "A9", Row: booking.NoPosition, Column: booking.NoPosition},
	}}

	got := Normalize(snapshot, nil)
	wantOrder := []string{"A2", "A9", "A10", "AISLE"}
	for i, want := range wantOrder {
		if got.Seats[i].Number != want {
			t.Fatalf("position %d has seat %q, want %q", i, got.Seats[i].Number, want)
		}
	}
}

func TestNormalizeMixedPositioningForcesFallback(t *testing.T) {
	snapshot := booking.SeatMapSnapshot{
		TotalRows:    4,
		TotalColumns: 4,
		Seats: []booking.Seat{
			{ID: "a", Number: "1", Row: 0, Column: 0},
			{ID: "b", Number: "2", Row: booking.NoPosition, Column: booking.NoPosition},
		},
	}

	got := Normalize(snapshot, nil)
	if got.TotalColumns != 5 {
		t.Fatalf("TotalColumns = %d, want fallback's 5", got.TotalColumns)
	}
	for _, seat := range got.Seats {
		if !seat.Positioned() {
			t.Fatalf("seat %q left unpositioned", seat.ID)
		}
	}
}

func TestDeckGrid(t *testing.T) {
	snapshot := Normalize(booking.SeatMapSnapshot{Seats: unpositionedSeats(7)}, nil)

	grid := DeckGrid(snapshot, 0)
	if len(grid) != 2 {
		t.Fatalf("grid has %d rows, want 2", len(grid))
	}
	for row := range grid {
		if len(grid[row]) != 5 {
			t.Fatalf("row %d has %d cells, want 5", row, len(grid[row]))
		}
	}
	if grid[0][2] != nil {
		t.Fatal("aisle cell (0,2) should be empty")
	}
	if grid[0][0] == nil || grid[0][0].Number != "1" {
		t.Fatalf("cell (0,0) = %+v, want seat 1", grid[0][0])
	}
	if grid[1][4] == nil || grid[1][4].Number != "7" {
		t.Fatalf("cell (1,4) = %+v, want seat 7", grid[1][4])
	}
}
