// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

// Command viabus is the terminal storefront for a bus-ticket booking
// backend. It searches trips, renders a live seat map with
// hold-and-countdown semantics, collects passenger details, and
// submits the booking.
//
// Usage:
//
//	viabus search --from hanoi --to sapa --date 2026-09-14
//	viabus book --trip trip-42
//	viabus config validate --config ./viabus.yaml
//	viabus version
package main
