// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package bookingui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/viabus-travel/viabus/lib/booking"
)

// formField is one labeled text input in the passenger form.
type formField struct {
	label    string
	input    textinput.Model
	seatID   string // empty for contact fields
	bind     func(*booking.PassengerDraft, string)
	contact  func(*booking.ContactDetails, string)
	optional bool
}

// FormModel is the passenger details page: one name (and optional
// document id) per selected seat, plus booking-level contact details.
// The contact's phone and email are applied to every passenger draft,
// matching how the storefront submits guest bookings.
type FormModel struct {
	theme Theme
	keys  KeyMap

	fields []formField
	focus  int
	errMsg string

	width  int
	height int
}

// NewForm builds the form for the given selection. Call again
// whenever the selection changes; drafts for removed seats disappear
// with their fields.
func NewForm(theme Theme, keys KeyMap, seats []booking.Seat) FormModel {
	form := FormModel{theme: theme, keys: keys}

	newInput := func(placeholder string, limit int) textinput.Model {
		input := textinput.New()
		input.Placeholder = placeholder
		input.CharLimit = limit
		input.Prompt = ""
		input.Width = 32
		return input
	}

	for _, seat := range seats {
		form.fields = append(form.fields, formField{
			label:  fmt.Sprintf("Seat %s · passenger name", seat.Number),
			input:  newInput("full name", 80),
			seatID: seat.ID,
			bind:   func(draft *booking.PassengerDraft, value string) { draft.FullName = value },
		})
		form.fields = append(form.fields, formField{
			label:    fmt.Sprintf("Seat %s · document id", seat.Number),
			input:    newInput("optional", 32),
			seatID:   seat.ID,
			bind:     func(draft *booking.PassengerDraft, value string) { draft.DocumentID = value },
			optional: true,
		})
	}

	form.fields = append(form.fields,
		formField{
			label:   "Contact name",
			input:   newInput("full name", 80),
			contact: func(contact *booking.ContactDetails, value string) { contact.FullName = value },
		},
		formField{
			label:   "Contact phone",
			input:   newInput("+84...", 20),
			contact: func(contact *booking.ContactDetails, value string) { contact.Phone = value },
		},
		formField{
			label:   "Contact email",
			input:   newInput("you@example.com", 120),
			contact: func(contact *booking.ContactDetails, value string) { contact.Email = value },
		},
	)

	if len(form.fields) > 0 {
		form.fields[0].input.Focus()
	}
	return form
}

// SetSize updates the available render area.
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update routes keystrokes to the focused input and handles field
// navigation.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.NextField):
			m.setFocus((m.focus + 1) % len(m.fields))
			return m, nil
		case key.Matches(keyMsg, m.keys.PreviousField):
			m.setFocus((m.focus - 1 + len(m.fields)) % len(m.fields))
			return m, nil
		}
	}

	if m.focus < 0 || m.focus >= len(m.fields) {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd
}

func (m *FormModel) setFocus(index int) {
	if len(m.fields) == 0 {
		return
	}
	m.fields[m.focus].input.Blur()
	m.focus = index
	m.fields[m.focus].input.Focus()
	m.errMsg = ""
}

// OnLastField reports whether the focused field is the final one.
// Enter on the last field submits; on any other it advances.
func (m *FormModel) OnLastField() bool {
	return m.focus == len(m.fields)-1
}

// Advance moves focus to the next field.
func (m *FormModel) Advance() {
	m.setFocus((m.focus + 1) % len(m.fields))
}

// Submit validates and assembles the passenger drafts and contact
// details. On a validation failure the error is displayed inline and
// nothing is returned.
func (m *FormModel) Submit() ([]booking.PassengerDraft, booking.ContactDetails, bool) {
	var contact booking.ContactDetails
	for _, field := range m.fields {
		if field.contact != nil {
			field.contact(&contact, strings.TrimSpace(field.input.Value()))
		}
	}
	if err := contact.Validate(); err != nil {
		m.errMsg = err.Error()
		return nil, booking.ContactDetails{}, false
	}

	drafts := make(map[string]*booking.PassengerDraft)
	var order []string
	for _, field := range m.fields {
		if field.seatID == "" {
			continue
		}
		draft, ok := drafts[field.seatID]
		if !ok {
			draft = &booking.PassengerDraft{
				SeatID: field.seatID,
				Phone:  contact.Phone,
				Email:  contact.Email,
			}
			drafts[field.seatID] = draft
			order = append(order, field.seatID)
		}
		field.bind(draft, strings.TrimSpace(field.input.Value()))
	}

	result := make([]booking.PassengerDraft, 0, len(order))
	for _, seatID := range order {
		draft := *drafts[seatID]
		if err := draft.Validate(); err != nil {
			m.errMsg = err.Error()
			return nil, booking.ContactDetails{}, false
		}
		result = append(result, draft)
	}
	return result, contact, true
}

// View renders the form fields with the focused one highlighted.
func (m FormModel) View() string {
	header := lipgloss.NewStyle().Foreground(m.theme.HeaderForeground).Bold(true)
	label := lipgloss.NewStyle().Foreground(m.theme.FaintText)
	focused := lipgloss.NewStyle().Foreground(m.theme.HeaderForeground)

	var b strings.Builder
	b.WriteString(header.Render("Passengers"))
	b.WriteString("\n\n")

	for index, field := range m.fields {
		name := field.label
		if field.optional {
			name += " (optional)"
		}
		if index == m.focus {
			b.WriteString(focused.Render("▸ " + name))
		} else {
			b.WriteString(label.Render("  " + name))
		}
		b.WriteString("\n  ")
		b.WriteString(field.input.View())
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(m.theme.NoticeError).Render(m.errMsg))
		b.WriteString("\n")
	}
	return b.String()
}
