// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

// Package seatlayout turns a flat seat list into the deck-by-deck
// grid the seat-map view renders. It has no state of its own: given
// the same snapshot it always produces the same layout.
//
// When every seat already carries explicit row/column coordinates and
// the snapshot declares its grid size, the snapshot passes through
// untouched. Otherwise seats are placed by the deterministic fallback
// algorithm: sort by the numeric portion of the seat number, pack
// four seats per row in a left/right pattern with an aisle gap, and
// give the final row up to five seats with no gap.
//
// A [Catalog] of per-bus-type templates (authored as JSONC, so the
// files can carry comments) can override the packing pattern before
// the fallback's defaults apply.
package seatlayout
