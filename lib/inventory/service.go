// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/viabus-travel/viabus/lib/booking"
)

// ErrNotFound reports an unknown trip, bus, or booking reference.
var ErrNotFound = errors.New("inventory: not found")

// ErrConflict reports that one or more requested seats were no longer
// available at hold time. The whole hold request failed; there are no
// partial holds.
var ErrConflict = errors.New("inventory: seat conflict")

// Service is everything the booking core needs from the backend. The
// polling transport behind RefreshSeatStatuses is an implementation
// detail; a push-based implementation can satisfy the same interface
// without touching the coordinator.
type Service interface {
	// GetTrip fetches the trip summary. Fails with ErrNotFound for an
	// unknown id.
	GetTrip(ctx context.Context, tripID string) (booking.Trip, error)

	// SearchTrips runs a storefront search and returns one page.
	SearchTrips(ctx context.Context, query booking.TripQuery, filters booking.TripFilters) (booking.TripPage, error)

	// GetSeatMap fetches and normalizes the seat map for a trip.
	// Fails with ErrNotFound if the trip or its bus is unknown.
	GetSeatMap(ctx context.Context, tripID string) (booking.SeatMapSnapshot, error)

	// RefreshSeatStatuses returns the identifiers (seat ids and/or
	// seat numbers) of the seats currently free on the trip. An empty
	// trip returns an empty slice, not an error. Safe to call on
	// every poll tick.
	RefreshSeatStatuses(ctx context.Context, tripID string) ([]string, error)

	// HoldSeats requests a hold covering all listed seats. On success
	// the returned Hold carries the server expiry (defaulted
	// client-side when the server omits one). Fails with ErrConflict
	// when any seat is taken.
	HoldSeats(ctx context.Context, tripID string, seatIDs, seatNumbers []string) (booking.Hold, error)

	// ReleaseSeats asks the server to drop holds on the listed seats.
	// Best-effort by contract: the server-side TTL is the backstop,
	// so callers never depend on this succeeding.
	ReleaseSeats(ctx context.Context, tripID string, seatIDs []string) error

	// CreateBooking submits the booking for the held seats. The
	// result may carry a checkout URL for external payment.
	CreateBooking(ctx context.Context, request BookingRequest) (BookingResult, error)
}

// BookingRequest is the checkout submission.
type BookingRequest struct {
	TripID          string
	SeatCodes       []string
	Passengers      []booking.PassengerDraft
	Contact         booking.ContactDetails
	PaymentProvider string // "CASH" or "STRIPE"
}

// BookingResult is the backend's answer to CreateBooking.
type BookingResult struct {
	BookingID     string
	ReferenceCode string
	Status        string
	CheckoutURL   string
}

// StatusError carries the HTTP status of a failed request alongside
// the response body excerpt. It wraps ErrNotFound or ErrConflict for
// the statuses the core reacts to.
type StatusError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inventory: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Unwrap maps the conflict and not-found statuses onto the package
// sentinels so callers use errors.Is instead of status comparisons.
func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case 404:
		return ErrNotFound
	case 409:
		return ErrConflict
	default:
		return nil
	}
}
