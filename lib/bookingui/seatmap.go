// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package bookingui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/viabus-travel/viabus/lib/booking"
	"github.com/viabus-travel/viabus/lib/seatlayout"
	"github.com/viabus-travel/viabus/lib/session"
)

// SeatMapModel is the seat selection page. It renders the deck grid
// from the session's seat map snapshot and moves a cursor across the
// occupied cells; empty cells (the aisle, gaps) are skipped.
type SeatMapModel struct {
	theme Theme
	keys  KeyMap
	store *session.Store

	deck      int
	cursorRow int
	cursorCol int

	countdown string
	err       error

	width  int
	height int
}

// NewSeatMap returns a seat map page over the session store.
func NewSeatMap(theme Theme, keys KeyMap, store *session.Store) SeatMapModel {
	return SeatMapModel{theme: theme, keys: keys, store: store}
}

// Reset moves the cursor to the first seat of the first deck. Called
// when a new trip's seat map is loaded.
func (m *SeatMapModel) Reset() {
	m.deck = 0
	m.cursorRow = 0
	m.cursorCol = 0
	m.countdown = ""
	m.err = nil
	if snapshot, ok := m.store.SeatMap(); ok {
		grid := seatlayout.DeckGrid(snapshot, m.deck)
		if seat, ok := firstSeat(grid); ok {
			m.cursorRow, m.cursorCol = seat.Row, seat.Column
		}
	}
}

// SetError puts the page into a terminal error state. The grid is not
// rendered until Reset loads a fresh snapshot; only the back and quit
// keys apply.
func (m *SeatMapModel) SetError(err error) {
	m.err = err
}

// SetCountdown updates the hold countdown shown in the summary line.
func (m *SeatMapModel) SetCountdown(display string) {
	m.countdown = display
}

// SetSize updates the available render area.
func (m *SeatMapModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// CursorSeat returns the seat under the cursor, if any.
func (m *SeatMapModel) CursorSeat() (booking.Seat, bool) {
	if m.err != nil {
		return booking.Seat{}, false
	}
	snapshot, ok := m.store.SeatMap()
	if !ok {
		return booking.Seat{}, false
	}
	grid := seatlayout.DeckGrid(snapshot, m.deck)
	if m.cursorRow < 0 || m.cursorRow >= len(grid) {
		return booking.Seat{}, false
	}
	row := grid[m.cursorRow]
	if m.cursorCol < 0 || m.cursorCol >= len(row) || row[m.cursorCol] == nil {
		return booking.Seat{}, false
	}
	return *row[m.cursorCol], true
}

// Update moves the cursor and switches decks. Seat toggling is the
// root model's job; it reads CursorSeat on Select.
func (m SeatMapModel) Update(msg tea.Msg) (SeatMapModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.err != nil {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.move(-1, 0)
	case key.Matches(keyMsg, m.keys.Down):
		m.move(1, 0)
	case key.Matches(keyMsg, m.keys.Left):
		m.move(0, -1)
	case key.Matches(keyMsg, m.keys.Right):
		m.move(0, 1)
	case key.Matches(keyMsg, m.keys.NextDeck):
		m.nextDeck()
	}
	return m, nil
}

// move walks one step in the given direction, then keeps walking
// until it lands on an occupied cell. Runs out of grid means no move.
func (m *SeatMapModel) move(deltaRow, deltaCol int) {
	snapshot, ok := m.store.SeatMap()
	if !ok {
		return
	}
	grid := seatlayout.DeckGrid(snapshot, m.deck)
	if len(grid) == 0 {
		return
	}

	row, col := m.cursorRow, m.cursorCol
	for {
		row += deltaRow
		col += deltaCol
		if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
			return
		}
		if grid[row][col] != nil {
			m.cursorRow, m.cursorCol = row, col
			return
		}
	}
}

// nextDeck cycles to the next deck, snapping the cursor to its first
// seat. Single-deck buses stay put.
func (m *SeatMapModel) nextDeck() {
	snapshot, ok := m.store.SeatMap()
	if !ok || snapshot.DeckCount <= 1 {
		return
	}
	m.deck = (m.deck + 1) % snapshot.DeckCount
	grid := seatlayout.DeckGrid(snapshot, m.deck)
	if seat, ok := firstSeat(grid); ok {
		m.cursorRow, m.cursorCol = seat.Row, seat.Column
	}
}

func firstSeat(grid seatlayout.Grid) (*booking.Seat, bool) {
	for _, row := range grid {
		for _, cell := range row {
			if cell != nil {
				return cell, true
			}
		}
	}
	return nil, false
}

// View renders the seat grid, legend, and selection summary. A load
// failure replaces the whole page with the error and a retreat hint.
func (m SeatMapModel) View() string {
	if m.err != nil {
		header := lipgloss.NewStyle().Foreground(m.theme.HeaderForeground).Bold(true)
		errStyle := lipgloss.NewStyle().Foreground(m.theme.NoticeError)
		faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)
		return header.Render("Seats") + "\n\n" +
			errStyle.Render("cannot load seat map: "+m.err.Error()) + "\n\n" +
			faint.Render("esc back · q quit")
	}

	snapshot, ok := m.store.SeatMap()
	if !ok {
		return lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("loading seat map...")
	}

	header := lipgloss.NewStyle().Foreground(m.theme.HeaderForeground).Bold(true)
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	var b strings.Builder
	title := "Seats"
	if trip, ok := m.store.Trip(); ok {
		title = fmt.Sprintf("Seats · %s → %s · %s",
			trip.OriginCity, trip.DestinationCity, trip.DepartureTime.Format("Mon 15:04"))
	}
	b.WriteString(header.Render(title))
	b.WriteString("\n")
	if snapshot.DeckCount > 1 {
		b.WriteString(faint.Render(fmt.Sprintf("deck %d/%d (tab to switch)", m.deck+1, snapshot.DeckCount)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	grid := seatlayout.DeckGrid(snapshot, m.deck)
	for rowIndex, row := range grid {
		for colIndex, cell := range row {
			if cell == nil {
				b.WriteString("     ")
				continue
			}
			b.WriteString(m.renderSeat(cell, rowIndex == m.cursorRow && colIndex == m.cursorCol))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderLegend())
	b.WriteString("\n")
	b.WriteString(m.renderSummary())
	return b.String()
}

// renderSeat draws one seat cell, e.g. "[12]".
func (m SeatMapModel) renderSeat(seat *booking.Seat, underCursor bool) string {
	style := lipgloss.NewStyle().Foreground(m.theme.SeatColor(seat.Status, m.store.IsSelected(seat.ID)))
	if underCursor {
		style = style.Background(m.theme.SeatCursorBackground).Bold(true)
	}
	return style.Render(fmt.Sprintf("[%3s]", seat.Number))
}

func (m SeatMapModel) renderLegend() string {
	entry := func(color lipgloss.Color, label string) string {
		return lipgloss.NewStyle().Foreground(color).Render("■ " + label)
	}
	return strings.Join([]string{
		entry(m.theme.SeatAvailable, "available"),
		entry(m.theme.SeatSelected, "selected"),
		entry(m.theme.SeatHeld, "held"),
		entry(m.theme.SeatBooked, "booked"),
	}, "   ")
}

// renderSummary shows the current selection, total price, and hold
// countdown.
func (m SeatMapModel) renderSummary() string {
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)
	numbers := m.store.SelectedSeatNumbers()
	if len(numbers) == 0 {
		return faint.Render("no seats selected")
	}

	price := lipgloss.NewStyle().Foreground(m.theme.PriceForeground)
	currency := "USD"
	if seats := m.store.SelectedSeats(); len(seats) > 0 && seats[0].Currency != "" {
		currency = seats[0].Currency
	}
	line := fmt.Sprintf("selected %s  ", strings.Join(numbers, ", ")) +
		price.Render(fmt.Sprintf("%.2f %s", m.store.TotalPrice(), currency))

	if m.countdown != "" {
		style := lipgloss.NewStyle().Foreground(m.theme.CountdownNormal)
		if strings.HasPrefix(m.countdown, "00:") || m.countdown == "Expired" {
			style = style.Foreground(m.theme.CountdownUrgent)
		}
		line += faint.Render("  ·  hold ") + style.Render(m.countdown)
	}
	return line
}
