// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

// Package seathold coordinates seat selection against server-side
// holds.
//
// The [Coordinator] is the only writer of hold state. Toggling a seat
// updates the local selection immediately and requests a hold for the
// whole selection in the background, so the view never blocks on the
// network. Each hold request is tagged with a digest of the seat-id
// set it covers; a response whose tag no longer matches the current
// selection is discarded, which makes overlapping requests safe.
//
// A hold is all-or-nothing. When the server reports a conflict the
// seat that triggered the request is marked booked in the seat map,
// dropped from the selection, and the remainder is re-held. Any other
// hold failure leaves the selection intact but unheld; the user can
// retry by changing the selection.
//
// The coordinator owns the hold expiry timer and the one-second
// countdown ticker. When the expiry fires the selection, passenger
// drafts, and hold are cleared together and the seats are released
// best-effort; the server TTL is the backstop.
//
// State changes surface on [Coordinator.Events] for the view layer to
// consume.
package seathold
