// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

// Package bookingui implements the interactive booking flow as a
// bubbletea program.
//
// The flow is a sequence of pages: trip search, seat selection,
// passenger details, and a confirmation summary. The root [Model]
// routes keyboard input to the active page and owns the plumbing
// that the pages share: the booking session store, the seat-hold
// coordinator, and the availability poller.
//
// Coordinator events arrive through the bubbletea message loop (see
// listenEvents), so pages react to holds, conflicts, and expiry the
// same way they react to keystrokes. Terminal focus and blur map to
// the poller's visibility, pausing availability refreshes while the
// user is looking at another window.
package bookingui
