// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package bookingui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/viabus-travel/viabus/lib/booking"
)

// Theme defines the color palette for the booking TUI. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row in lists.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Seat cell colors by state.
	SeatAvailable lipgloss.Color
	SeatSelected  lipgloss.Color
	SeatHeld      lipgloss.Color
	SeatBooked    lipgloss.Color

	// Seat cell under the cursor gets this background.
	SeatCursorBackground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Status bar notices.
	NoticeInfo    lipgloss.Color
	NoticeWarning lipgloss.Color
	NoticeError   lipgloss.Color

	// Countdown turns urgent below one minute.
	CountdownNormal lipgloss.Color
	CountdownUrgent lipgloss.Color

	// Price and money amounts.
	PriceForeground lipgloss.Color

	// Filter match highlighting.
	MatchBackground lipgloss.Color
}

// SeatColor returns the cell color for a seat, with the local
// selection taking precedence over the polled status.
func (theme Theme) SeatColor(status booking.SeatStatus, selected bool) lipgloss.Color {
	if selected {
		return theme.SeatSelected
	}
	switch status {
	case booking.SeatAvailable:
		return theme.SeatAvailable
	case booking.SeatHeld:
		return theme.SeatHeld
	case booking.SeatBooked:
		return theme.SeatBooked
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	SeatAvailable: lipgloss.Color("77"),
	SeatSelected:  lipgloss.Color("39"),
	SeatHeld:      lipgloss.Color("214"),
	SeatBooked:    lipgloss.Color("241"),

	SeatCursorBackground: lipgloss.Color("237"),

	HeaderForeground: lipgloss.Color("81"),
	BorderColor:      lipgloss.Color("238"),
	HelpText:         lipgloss.Color("241"),

	NoticeInfo:    lipgloss.Color("75"),
	NoticeWarning: lipgloss.Color("214"),
	NoticeError:   lipgloss.Color("203"),

	CountdownNormal: lipgloss.Color("252"),
	CountdownUrgent: lipgloss.Color("203"),

	PriceForeground: lipgloss.Color("114"),

	MatchBackground: lipgloss.Color("58"),
}
