// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time for the timer-driven parts of the
// booking client: the hold expiry deadline, the one-second countdown
// tick, and the seat-status poll interval.
//
// Production code injects [Real]; tests inject [Fake] and advance it
// deterministically. Any function that would otherwise call time.Now,
// time.AfterFunc, or time.NewTicker takes a Clock instead.
//
// Key exports:
//
//   - [Clock] -- the interface (Now, After, AfterFunc, NewTicker)
//   - [Real] -- wall-clock implementation
//   - [Fake] -- deterministic implementation with Advance
package clock
