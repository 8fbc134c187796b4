// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

// Package seatpoll refreshes seat availability on a fixed interval.
//
// A [Poller] owns a single goroutine that calls its fetch function,
// waits out the configured interval, and repeats. Scheduling the next
// cycle only after the previous fetch returns means at most one fetch
// is ever in flight, so a slow inventory service cannot pile up
// requests. Fetch errors are logged and swallowed; the next cycle
// retries.
//
// Visibility gates the loop: while the surface showing the seat map
// is hidden the poller keeps ticking but skips the fetch, and
// restoring visibility triggers an immediate refresh rather than
// waiting out the remainder of the interval. [Poller.Poke] forces the
// same immediate refresh after a local mutation such as a new hold.
//
// Time comes from an injected [clock.Clock] so tests drive the loop
// deterministically with a fake.
package seatpoll
