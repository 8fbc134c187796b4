// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

// Package booking defines the canonical domain types shared by the
// seat-selection core: trips, seats, seat-map snapshots, holds, and
// the passenger/contact drafts collected before checkout.
//
// These types are the single vocabulary of the client. The inventory
// package normalizes whatever field shapes the backend emits into
// them at the service boundary; nothing downstream ever inspects raw
// wire payloads.
//
// Key exports:
//
//   - [Seat], [SeatStatus], [SeatType] -- the three-state seat model
//   - [SeatMapSnapshot] -- the cached view of a trip's seat map
//   - [Trip] -- immutable trip summary
//   - [Hold] -- token and expiry for the current selection
//   - [PassengerDraft], [ContactDetails] -- validated form drafts
package booking
