// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds small assertion helpers shared by the
// concurrency-heavy tests in this repository (poller and coordinator
// tests that rendezvous with background goroutines over channels).
package testutil
