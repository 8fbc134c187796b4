// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

// Package session holds the mutable state of one in-progress booking:
// the selected trip, the seat-map snapshot, the ordered seat
// selection, passenger and contact drafts, and the current hold.
//
// A [Store] is constructed explicitly and passed to its collaborators
// rather than living in a package-level singleton, so several booking
// sessions can coexist in one process (and in one test).
//
// The store is the single source of truth for the view layer. Writers
// are the page controller and the hold coordinator; every mutation
// goes through a Store method and is serialized by the store's mutex.
// Two invariants the mutation set preserves:
//
//   - a passenger draft never references a seat id outside the
//     current selection (RemoveSeat and ClearSeats prune drafts);
//   - hold state never outlives the selection it covered (ClearSeats
//     is the only reset path and clears both together).
package session
