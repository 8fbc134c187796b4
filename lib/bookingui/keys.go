// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package bookingui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the booking TUI.
type KeyMap struct {
	// Navigation (context-sensitive: list movement or seat-grid
	// movement depending on the active page).
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Toggle the seat under the cursor, or pick the highlighted trip.
	Select key.Binding

	// Advance to the next page (seat map -> passenger form -> confirm).
	Continue key.Binding

	// Back returns to the previous page. Leaving the seat map
	// releases the selection.
	Back key.Binding

	// Seat map.
	NextDeck       key.Binding
	ClearSelection key.Binding

	// Trip list filter.
	FilterActivate key.Binding
	FilterClear    key.Binding

	// Form field movement.
	NextField     key.Binding
	PreviousField key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (h/j/k/l) alongside standard arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	Select: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "toggle seat"),
	),
	Continue: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "continue"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	NextDeck: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next deck"),
	),
	ClearSelection: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear seats"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear filter"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	PreviousField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-tab", "previous field"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
