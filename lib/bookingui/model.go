// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package bookingui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/viabus-travel/viabus/lib/booking"
	"github.com/viabus-travel/viabus/lib/inventory"
	"github.com/viabus-travel/viabus/lib/seathold"
	"github.com/viabus-travel/viabus/lib/seatlayout"
	"github.com/viabus-travel/viabus/lib/seatpoll"
	"github.com/viabus-travel/viabus/lib/session"
)

// Page identifies which view is active.
type Page int

const (
	// PageTrips is the trip search and selection list.
	PageTrips Page = iota
	// PageSeats is the seat map with live availability.
	PageSeats
	// PageForm is the passenger and contact details form.
	PageForm
	// PageDone shows the booking confirmation.
	PageDone
)

// noticeFadeDelay is how long a status bar notice stays visible.
const noticeFadeDelay = 4 * time.Second

// Config wires the booking flow's dependencies into the TUI.
type Config struct {
	// Store is the booking session shared with the coordinator.
	Store *session.Store

	// Inventory serves trip search, seat maps, and booking submission.
	Inventory inventory.Service

	// Coordinator owns seat holds. The model consumes its events.
	Coordinator *seathold.Coordinator

	// Poller refreshes availability; the model maps terminal focus
	// onto its visibility.
	Poller *seatpoll.Poller

	// Catalog provides fallback layout templates per bus type. Nil
	// uses the built-in coach template.
	Catalog *seatlayout.Catalog

	// Query and Filters seed the trip search.
	Query   booking.TripQuery
	Filters booking.TripFilters

	// TripID skips the search page and opens this trip directly.
	TripID string

	// PaymentProvider for submitted bookings. Default "CASH".
	PaymentProvider string

	// Logger for background command failures. Nil means slog.Default.
	Logger *slog.Logger
}

// Internal messages.
type coordinatorEventMsg struct{ event seathold.Event }

type tripsLoadedMsg struct {
	page booking.TripPage
	err  error
}

type seatMapReadyMsg struct{ err error }

type bookingDoneMsg struct {
	result inventory.BookingResult
	err    error
}

type noticeFadeMsg struct{ generation int }

// notice is a transient status bar message.
type notice struct {
	text  string
	color lipgloss.Color
}

// Model is the root bubbletea model for the booking flow.
type Model struct {
	cfg   Config
	theme Theme
	keys  KeyMap

	page  Page
	trips TripListModel
	seats SeatMapModel
	form  FormModel

	notice           notice
	noticeGeneration int

	submitting bool
	result     inventory.BookingResult

	width  int
	height int
}

// NewModel builds the root model. The caller owns the lifecycle of
// the coordinator and poller; the model only talks to them.
func NewModel(cfg Config) Model {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.PaymentProvider == "" {
		cfg.PaymentProvider = "CASH"
	}
	theme := DefaultTheme
	keys := DefaultKeyMap

	model := Model{
		cfg:   cfg,
		theme: theme,
		keys:  keys,
		trips: NewTripList(theme, keys),
		seats: NewSeatMap(theme, keys, cfg.Store),
	}
	if cfg.TripID != "" {
		model.page = PageSeats
	}
	return model
}

// Init starts the event listener and the initial data load.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{listenEvents(m.cfg.Coordinator.Events())}
	if m.cfg.TripID != "" {
		cmds = append(cmds, m.openTripCmd(m.cfg.TripID, true))
	} else {
		cmds = append(cmds, m.searchTripsCmd(), m.trips.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// listenEvents forwards one coordinator event into the message loop.
// Re-issued after every delivery.
func listenEvents(events <-chan seathold.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return coordinatorEventMsg{event: event}
	}
}

func (m Model) searchTripsCmd() tea.Cmd {
	inv, query, filters := m.cfg.Inventory, m.cfg.Query, m.cfg.Filters
	return func() tea.Msg {
		page, err := inv.SearchTrips(context.Background(), query, filters)
		return tripsLoadedMsg{page: page, err: err}
	}
}

// openTripCmd loads the seat map (and, when fetchTrip is set, the
// trip summary) into the session store and normalizes the layout.
func (m Model) openTripCmd(tripID string, fetchTrip bool) tea.Cmd {
	inv, store, catalog := m.cfg.Inventory, m.cfg.Store, m.cfg.Catalog
	return func() tea.Msg {
		ctx := context.Background()
		if fetchTrip {
			trip, err := inv.GetTrip(ctx, tripID)
			if err != nil {
				return seatMapReadyMsg{err: err}
			}
			store.SetTrip(&trip)
		}

		snapshot, err := inv.GetSeatMap(ctx, tripID)
		if err != nil {
			return seatMapReadyMsg{err: err}
		}
		template := catalog.Template(snapshot.BusType)
		normalized := seatlayout.Normalize(snapshot, &template)
		store.SetSeatMap(&normalized)
		return seatMapReadyMsg{}
	}
}

func (m Model) submitBookingCmd(request inventory.BookingRequest) tea.Cmd {
	inv := m.cfg.Inventory
	return func() tea.Msg {
		result, err := inv.CreateBooking(context.Background(), request)
		return bookingDoneMsg{result: result, err: err}
	}
}

// Update is the single message dispatcher.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.trips.SetSize(msg.Width, msg.Height)
		m.seats.SetSize(msg.Width, msg.Height)
		m.form.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.FocusMsg:
		if m.cfg.Poller != nil {
			m.cfg.Poller.SetVisible(true)
		}
		return m, nil

	case tea.BlurMsg:
		if m.cfg.Poller != nil {
			m.cfg.Poller.SetVisible(false)
		}
		return m, nil

	case coordinatorEventMsg:
		model, cmd := m.handleCoordinatorEvent(msg.event)
		return model, tea.Batch(cmd, listenEvents(m.cfg.Coordinator.Events()))

	case tripsLoadedMsg:
		if msg.err != nil {
			m.trips.SetError(msg.err)
		} else {
			m.trips.SetTrips(msg.page.Trips)
		}
		return m, nil

	case seatMapReadyMsg:
		if msg.err != nil {
			// Loading the trip or its seat map is fatal to the page.
			// The error view keeps the back and quit keys working.
			m.seats.SetError(msg.err)
			return m, nil
		}
		m.seats.Reset()
		if m.cfg.Poller != nil {
			m.cfg.Poller.Poke()
		}
		return m, nil

	case bookingDoneMsg:
		m.submitting = false
		if msg.err != nil {
			m.setNotice(fmt.Sprintf("booking failed: %v", msg.err), m.theme.NoticeError)
			return m, m.fadeNoticeCmd()
		}
		m.result = msg.result
		m.page = PageDone
		return m, nil

	case noticeFadeMsg:
		if msg.generation == m.noticeGeneration {
			m.notice = notice{}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Everything else (spinner ticks, textinput blinks) goes to the
	// active page.
	return m.updatePage(msg)
}

func (m Model) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.page {
	case PageTrips:
		m.trips, cmd = m.trips.Update(msg)
	case PageSeats:
		m.seats, cmd = m.seats.Update(msg)
	case PageForm:
		m.form, cmd = m.form.Update(msg)
	}
	return m, cmd
}

// quitAllowed reports whether plain "q" should quit, which it must
// not while a text input is capturing keystrokes.
func (m Model) quitAllowed() bool {
	if m.page == PageForm {
		return false
	}
	if m.page == PageTrips && m.trips.filterActive {
		return false
	}
	return true
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.quitAllowed() && key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.page {
	case PageTrips:
		return m.handleTripsKey(msg)
	case PageSeats:
		return m.handleSeatsKey(msg)
	case PageForm:
		return m.handleFormKey(msg)
	case PageDone:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleTripsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.trips.filterActive && key.Matches(msg, m.keys.Select) {
		trip, ok := m.trips.Selected()
		if !ok {
			return m, nil
		}
		m.cfg.Store.SetTrip(&trip)
		m.page = PageSeats
		if m.cfg.Poller != nil {
			m.cfg.Poller.SetVisible(true)
		}
		return m, m.openTripCmd(trip.ID, false)
	}

	var cmd tea.Cmd
	m.trips, cmd = m.trips.Update(msg)
	return m, cmd
}

func (m Model) handleSeatsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		if seat, ok := m.seats.CursorSeat(); ok {
			m.cfg.Coordinator.ToggleSeat(seat)
		}
		return m, nil

	case key.Matches(msg, m.keys.ClearSelection):
		m.cfg.Coordinator.ClearSelection()
		m.seats.SetCountdown("")
		return m, nil

	case key.Matches(msg, m.keys.Continue):
		seats := m.cfg.Store.SelectedSeats()
		if len(seats) == 0 {
			m.setNotice("select at least one seat first", m.theme.NoticeWarning)
			return m, m.fadeNoticeCmd()
		}
		m.form = NewForm(m.theme, m.keys, seats)
		m.form.SetSize(m.width, m.height)
		m.page = PageForm
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.cfg.TripID != "" {
			return m, tea.Quit
		}
		m.cfg.Coordinator.ClearSelection()
		m.seats.SetCountdown("")
		m.page = PageTrips
		return m, nil
	}

	var cmd tea.Cmd
	m.seats, cmd = m.seats.Update(msg)
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEscape:
		m.page = PageSeats
		return m, nil

	case msg.Type == tea.KeyEnter:
		if !m.form.OnLastField() {
			m.form.Advance()
			return m, nil
		}
		drafts, contact, ok := m.form.Submit()
		if !ok {
			return m, nil
		}
		m.cfg.Store.SetPassengers(drafts)
		m.cfg.Store.SetContact(&contact)

		trip, hasTrip := m.cfg.Store.Trip()
		if !hasTrip {
			m.setNotice("session lost its trip", m.theme.NoticeError)
			return m, m.fadeNoticeCmd()
		}
		m.submitting = true
		return m, m.submitBookingCmd(inventory.BookingRequest{
			TripID:          trip.ID,
			SeatCodes:       m.cfg.Store.SelectedSeatNumbers(),
			Passengers:      drafts,
			Contact:         contact,
			PaymentProvider: m.cfg.PaymentProvider,
		})
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// handleCoordinatorEvent folds a coordinator event into the view
// state.
func (m Model) handleCoordinatorEvent(event seathold.Event) (Model, tea.Cmd) {
	switch event := event.(type) {
	case seathold.HoldPlaced:
		m.setNotice("seats held until "+event.ExpiresAt.Format("15:04:05"), m.theme.NoticeInfo)
		return m, m.fadeNoticeCmd()

	case seathold.HoldFailed:
		m.setNotice(fmt.Sprintf("could not hold seats: %v", event.Err), m.theme.NoticeWarning)
		return m, m.fadeNoticeCmd()

	case seathold.SeatTaken:
		m.setNotice(fmt.Sprintf("seat %s was just taken", event.Seat.Number), m.theme.NoticeWarning)
		return m, m.fadeNoticeCmd()

	case seathold.SelectionRejected:
		m.setNotice(fmt.Sprintf("seat %s: %s", event.Seat.Number, event.Reason), m.theme.NoticeWarning)
		return m, m.fadeNoticeCmd()

	case seathold.HoldExpired:
		m.seats.SetCountdown("")
		if m.page == PageForm {
			m.page = PageSeats
		}
		m.setNotice("hold expired, selection cleared", m.theme.NoticeWarning)
		return m, m.fadeNoticeCmd()

	case seathold.Countdown:
		m.seats.SetCountdown(event.Display)
		return m, nil

	case seathold.AvailabilityUpdated:
		return m, nil
	}
	return m, nil
}

func (m *Model) setNotice(text string, color lipgloss.Color) {
	m.notice = notice{text: text, color: color}
	m.noticeGeneration++
}

func (m Model) fadeNoticeCmd() tea.Cmd {
	generation := m.noticeGeneration
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{generation: generation}
	})
}

// View renders the active page plus the status bar.
func (m Model) View() string {
	var page string
	switch m.page {
	case PageTrips:
		page = m.trips.View()
	case PageSeats:
		page = m.seats.View()
	case PageForm:
		page = m.form.View()
	case PageDone:
		page = m.confirmationView()
	}
	return page + "\n" + m.statusBar()
}

func (m Model) confirmationView() string {
	header := lipgloss.NewStyle().Foreground(m.theme.HeaderForeground).Bold(true)
	normal := lipgloss.NewStyle().Foreground(m.theme.NormalText)
	faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	var b strings.Builder
	b.WriteString(header.Render("Booking confirmed"))
	b.WriteString("\n\n")
	b.WriteString(normal.Render("reference: " + m.result.ReferenceCode))
	b.WriteString("\n")
	if m.result.Status != "" {
		b.WriteString(normal.Render("status:    " + m.result.Status))
		b.WriteString("\n")
	}
	if m.result.CheckoutURL != "" {
		b.WriteString(normal.Render("payment:   " + m.result.CheckoutURL))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(faint.Render("press any key to exit"))
	return b.String()
}

// statusBar renders the transient notice and context-sensitive help.
func (m Model) statusBar() string {
	if m.submitting {
		return lipgloss.NewStyle().Foreground(m.theme.FaintText).Render("submitting booking...")
	}
	if m.notice.text != "" {
		return lipgloss.NewStyle().Foreground(m.notice.color).Render(m.notice.text)
	}

	help := lipgloss.NewStyle().Foreground(m.theme.HelpText)
	switch m.page {
	case PageTrips:
		return help.Render("↑/↓ move · enter open · / filter · q quit")
	case PageSeats:
		return help.Render("↑↓←→ move · space toggle · c clear · b continue · esc back · q quit")
	case PageForm:
		return help.Render("tab next field · enter submit on last field · esc back")
	default:
		return ""
	}
}
