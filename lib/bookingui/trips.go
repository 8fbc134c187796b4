// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package bookingui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/junegunn/fzf/src/util"

	"github.com/viabus-travel/viabus/lib/booking"
)

// tripMatch pairs a trip index with its fuzzy score for ranking.
type tripMatch struct {
	index     int
	score     int
	positions []int
}

// TripListModel is the trip search page: a filterable, ranked list of
// departures for the queried route and date.
type TripListModel struct {
	theme Theme
	keys  KeyMap

	trips   []booking.Trip
	matches []tripMatch
	cursor  int

	filter       string
	filterActive bool

	loading bool
	spinner spinner.Model
	err     error

	width  int
	height int
	slab   *util.Slab
}

// NewTripList returns an empty trip list in its loading state.
func NewTripList(theme Theme, keys KeyMap) TripListModel {
	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.HeaderForeground)),
	)
	return TripListModel{
		theme:   theme,
		keys:    keys,
		loading: true,
		spinner: spin,
		slab:    NewSlab(),
	}
}

// SetTrips installs search results and re-ranks against the current
// filter.
func (m *TripListModel) SetTrips(trips []booking.Trip) {
	m.trips = trips
	m.loading = false
	m.err = nil
	m.refilter()
}

// SetError puts the page into its error state.
func (m *TripListModel) SetError(err error) {
	m.loading = false
	m.err = err
}

// SetSize updates the available render area.
func (m *TripListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the trip under the cursor, if any.
func (m *TripListModel) Selected() (booking.Trip, bool) {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return booking.Trip{}, false
	}
	return m.trips[m.matches[m.cursor].index], true
}

// Update handles keys and spinner ticks for the trip list. Selection
// of a trip is signaled to the caller through Selected; this model
// only moves the cursor and maintains the filter.
func (m TripListModel) Update(msg tea.Msg) (TripListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.filterActive {
			return m.updateFilter(msg), nil
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.FilterActivate):
			m.filterActive = true
		}
	}
	return m, nil
}

// updateFilter handles keystrokes while the filter input is active.
func (m TripListModel) updateFilter(msg tea.KeyMsg) TripListModel {
	switch msg.Type {
	case tea.KeyEscape:
		m.filter = ""
		m.filterActive = false
		m.refilter()
	case tea.KeyEnter:
		m.filterActive = false
	case tea.KeyBackspace:
		if len(m.filter) > 0 {
			runes := []rune(m.filter)
			m.filter = string(runes[:len(runes)-1])
			m.refilter()
		}
	case tea.KeyRunes, tea.KeySpace:
		m.filter += string(msg.Runes)
		m.refilter()
	}
	return m
}

// refilter recomputes the ranked match list. An empty filter keeps
// the backend ordering; otherwise trips are ranked by fuzzy score
// against a composite of route, operator, and bus type.
func (m *TripListModel) refilter() {
	m.matches = m.matches[:0]
	pattern := []rune(m.filter)

	for index, trip := range m.trips {
		haystack := tripSearchText(trip)
		result := FuzzyMatch(haystack, pattern, m.slab)
		if result.Score <= 0 {
			continue
		}
		m.matches = append(m.matches, tripMatch{index: index, score: result.Score, positions: result.Positions})
	}
	if m.filter != "" {
		sort.SliceStable(m.matches, func(i, j int) bool {
			return m.matches[i].score > m.matches[j].score
		})
	}
	if m.cursor >= len(m.matches) {
		m.cursor = max(len(m.matches)-1, 0)
	}
}

// tripSearchText is the composite string the filter matches against.
func tripSearchText(trip booking.Trip) string {
	return strings.Join([]string{
		trip.OriginCity, trip.DestinationCity, trip.RouteName, trip.BusType,
	}, " ")
}

// View renders the trip list page.
func (m TripListModel) View() string {
	header := lipgloss.NewStyle().Foreground(m.theme.HeaderForeground).Bold(true)
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	var b strings.Builder
	b.WriteString(header.Render("Trips"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(faint.Render(" searching trips..."))
		return b.String()
	}
	if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(m.theme.NoticeError)
		b.WriteString(errStyle.Render("search failed: " + m.err.Error()))
		return b.String()
	}

	if m.filterActive || m.filter != "" {
		prompt := "/" + m.filter
		if m.filterActive {
			prompt += "▌"
		}
		b.WriteString(faint.Render(prompt))
		b.WriteString("\n")
	}

	if len(m.matches) == 0 {
		b.WriteString(faint.Render("no trips match"))
		return b.String()
	}

	normal := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	selected := lipgloss.NewStyle().
		Foreground(m.theme.SelectedForeground).
		Background(m.theme.SelectedBackground)
	price := lipgloss.NewStyle().Foreground(m.theme.PriceForeground)

	for position, match := range m.matches {
		trip := m.trips[match.index]
		line := fmt.Sprintf("%-7s %-28s %-10s %4dm  %2d seats",
			trip.DepartureTime.Format("15:04"),
			trip.OriginCity+" → "+trip.DestinationCity,
			trip.BusType,
			trip.DurationMinutes,
			trip.AvailableSeats,
		)
		if m.width > 0 {
			line = ansi.Truncate(line, m.width-14, "…")
		}
		amount := price.Render(fmt.Sprintf("  %8.2f %s", trip.BasePrice, trip.Currency))

		if position == m.cursor {
			b.WriteString(selected.Render("▸ " + line))
		} else {
			b.WriteString(normal.Render("  " + line))
		}
		b.WriteString(amount)
		b.WriteString("\n")
	}

	return b.String()
}
