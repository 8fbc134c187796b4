// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

// Package inventory is the client's boundary with the external trip
// and seat-inventory service. It owns three things:
//
//   - the [Service] interface the booking core programs against,
//   - the HTTP implementation ([Client]) of that interface,
//   - the normalization adapter that folds the backend's mixed
//     snake_case/camelCase payloads into the canonical types from
//     the booking package.
//
// Error taxonomy at this boundary: [ErrNotFound] for unknown trips or
// buses, [ErrConflict] when a hold request loses a race for a seat.
// Both are detected with errors.Is; no raw HTTP error escapes this
// package without wrapping.
//
// The seat inventory is authoritative. Everything this package
// returns is a cache snapshot: booking-eligibility is decided by the
// server's accept/reject on HoldSeats, never by a cached status.
package inventory
