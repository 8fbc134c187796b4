// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package seatlayout

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/viabus-travel/viabus/lib/booking"
)

// Template describes how the fallback packs seats for one bus type.
type Template struct {
	// PatternColumns are the column indices used for every full row.
	// The default {0, 1, 3, 4} leaves a one-column aisle at index 2.
	PatternColumns []int
	// FinalRowColumns are the column indices of the last row, which
	// may span the aisle. Default {0, 1, 2, 3, 4}.
	FinalRowColumns []int
	// TotalColumns is the grid width. Default 5.
	TotalColumns int
}

// DefaultTemplate is the standard coach arrangement: two seats, an
// aisle, two seats, with a five-across bench at the back.
var DefaultTemplate = Template{
	PatternColumns:  []int{0, 1, 3, 4},
	FinalRowColumns: []int{0, 1, 2, 3, 4},
	TotalColumns:    5,
}

// Normalize returns a snapshot whose every seat has grid coordinates.
// Snapshots that arrive fully positioned with a declared grid size
// pass through unchanged; anything else is re-laid-out with the
// fallback algorithm using the given template (nil means
// DefaultTemplate).
func Normalize(snapshot booking.SeatMapSnapshot, template *Template) booking.SeatMapSnapshot {
	if template == nil {
		template = &DefaultTemplate
	}

	positioned := len(snapshot.Seats) > 0
	for _, seat := range snapshot.Seats {
		if !seat.Positioned() {
			positioned = false
			break
		}
	}
	if positioned && snapshot.TotalRows > 0 && snapshot.TotalColumns > 0 {
		return snapshot
	}

	return fallbackLayout(snapshot, *template)
}

// fallbackLayout assigns coordinates to every seat. The walk packs
// PatternColumns seats per row while more than len(FinalRowColumns)
// seats remain, stopping mid-row as soon as exactly that many are
// left, then places the remainder on the final row.
func fallbackLayout(snapshot booking.SeatMapSnapshot, template Template) booking.SeatMapSnapshot {
	sorted := make([]booking.Seat, len(snapshot.Seats))
	copy(sorted, snapshot.Seats)
	sort.SliceStable(sorted, func(i, j int) bool {
		left, right := seatNumberOrdinal(sorted[i].Number), seatNumberOrdinal(sorted[j].Number)
		if left != right {
			return left < right
		}
		return sorted[i].Number < sorted[j].Number
	})

	finalRowCapacity := len(template.FinalRowColumns)
	arranged := make([]booking.Seat, 0, len(sorted))
	cursor := 0
	row := 0

	for len(sorted)-cursor > finalRowCapacity {
		for _, column := range template.PatternColumns {
			if cursor >= len(sorted)-finalRowCapacity {
				break
			}
			seat := sorted[cursor]
			seat.Row = row
			seat.Column = column
			arranged = append(arranged, seat)
			cursor++
		}
		row++
	}

	if remaining := len(sorted) - cursor; remaining > 0 {
		for _, column := range template.FinalRowColumns[:remaining] {
			seat := sorted[cursor]
			seat.Row = row
			seat.Column = column
			arranged = append(arranged, seat)
			cursor++
		}
		row++
	}

	deckCount := 1
	for _, seat := range arranged {
		if seat.Deck+1 > deckCount {
			deckCount = seat.Deck + 1
		}
	}

	normalized := snapshot
	normalized.Seats = arranged
	normalized.TotalRows = max(row, 1)
	normalized.TotalColumns = template.TotalColumns
	normalized.DeckCount = deckCount
	return normalized
}

// seatNumberOrdinal extracts the numeric portion of a seat number
// ("A12" -> 12). Numbers without digits sort last.
func seatNumberOrdinal(number string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if digits == "" {
		return math.MaxInt
	}
	ordinal, err := strconv.Atoi(digits)
	if err != nil {
		// Digit runs long enough to overflow int sort last too.
		return math.MaxInt
	}
	return ordinal
}

// Grid is one deck's seats arranged as rows × columns. Cells without
// a seat are nil so the view can render aisle and gap placeholders.
type Grid [][]*booking.Seat

// DeckGrid builds the grid for one deck of a normalized snapshot.
// Seats with out-of-range coordinates are dropped rather than
// panicking on a malformed snapshot.
func DeckGrid(snapshot booking.SeatMapSnapshot, deck int) Grid {
	grid := make(Grid, snapshot.TotalRows)
	for row := range grid {
		grid[row] = make([]*booking.Seat, snapshot.TotalColumns)
	}
	for index := range snapshot.Seats {
		seat := &snapshot.Seats[index]
		if seat.Deck != deck || !seat.Positioned() {
			continue
		}
		if seat.Row < 0 || seat.Row >= snapshot.TotalRows || seat.Column < 0 || seat.Column >= snapshot.TotalColumns {
			continue
		}
		grid[seat.Row][seat.Column] = seat
	}
	return grid
}
