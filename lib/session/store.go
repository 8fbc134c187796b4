// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"slices"
	"sync"
	"time"

	"github.com/viabus-travel/viabus/lib/booking"
)

// Store is the booking session state container. The zero value is not
// usable; construct with New.
type Store struct {
	mu sync.Mutex

	trip       *booking.Trip
	seatMap    *booking.SeatMapSnapshot
	selected   []booking.Seat
	passengers []booking.PassengerDraft
	contact    *booking.ContactDetails
	hold       booking.Hold
}

// New returns an empty booking session.
func New() *Store {
	return &Store{}
}

// SetTrip replaces the session's trip wholesale. Passing nil clears it.
func (s *Store) SetTrip(trip *booking.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if trip == nil {
		s.trip = nil
		return
	}
	copied := *trip
	s.trip = &copied
}

// Trip returns the current trip, if set.
func (s *Store) Trip() (booking.Trip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trip == nil {
		return booking.Trip{}, false
	}
	return *s.trip, true
}

// SetSeatMap replaces the seat-map snapshot wholesale. The caller is
// responsible for providing a complete snapshot; there is no merging.
func (s *Store) SetSeatMap(snapshot *booking.SeatMapSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snapshot == nil {
		s.seatMap = nil
		return
	}
	copied := *snapshot
	copied.Seats = slices.Clone(snapshot.Seats)
	s.seatMap = &copied
}

// SeatMap returns a copy of the current snapshot, if set.
func (s *Store) SeatMap() (booking.SeatMapSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seatMap == nil {
		return booking.SeatMapSnapshot{}, false
	}
	copied := *s.seatMap
	copied.Seats = slices.Clone(s.seatMap.Seats)
	return copied, true
}

// AddSeat appends the seat to the ordered selection. Adding a seat id
// that is already selected is a no-op, never a duplicate.
func (s *Store) AddSeat(seat booking.Seat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.selected {
		if existing.ID == seat.ID {
			return
		}
	}
	s.selected = append(s.selected, seat)
}

// RemoveSeat drops the seat from the selection and prunes any
// passenger draft bound to it, so no draft ever references a seat
// outside the selection.
func (s *Store) RemoveSeat(seatID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = slices.DeleteFunc(s.selected, func(seat booking.Seat) bool {
		return seat.ID == seatID
	})
	s.passengers = slices.DeleteFunc(s.passengers, func(draft booking.PassengerDraft) bool {
		return draft.SeatID == seatID
	})
}

// ClearSeats empties the selection, the passenger drafts, and the
// hold in one operation. Keeping these together is what prevents a
// half-reset session (seats cleared, hold still ticking).
func (s *Store) ClearSeats() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearSeatsLocked()
}

func (s *Store) clearSeatsLocked() {
	s.selected = nil
	s.passengers = nil
	s.hold = booking.Hold{}
}

// SelectedSeats returns a copy of the ordered selection.
func (s *Store) SelectedSeats() []booking.Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.selected)
}

// SelectedSeatIDs returns the selection's seat ids in order.
func (s *Store) SelectedSeatIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(s.selected))
	for index, seat := range s.selected {
		ids[index] = seat.ID
	}
	return ids
}

// SelectedSeatNumbers returns the selection's human labels in order.
func (s *Store) SelectedSeatNumbers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	numbers := make([]string, len(s.selected))
	for index, seat := range s.selected {
		numbers[index] = seat.Number
	}
	return numbers
}

// IsSelected reports whether the seat id is in the selection.
func (s *Store) IsSelected(seatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, seat := range s.selected {
		if seat.ID == seatID {
			return true
		}
	}
	return false
}

// TotalPrice sums the selected seats' prices.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, seat := range s.selected {
		total += seat.Price
	}
	return total
}

// SetPassengers replaces the passenger drafts wholesale.
func (s *Store) SetPassengers(drafts []booking.PassengerDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passengers = slices.Clone(drafts)
}

// Passengers returns a copy of the passenger drafts.
func (s *Store) Passengers() []booking.PassengerDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.passengers)
}

// SetContact replaces the contact details. Passing nil clears them.
func (s *Store) SetContact(contact *booking.ContactDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if contact == nil {
		s.contact = nil
		return
	}
	copied := *contact
	s.contact = &copied
}

// Contact returns the contact details, if set.
func (s *Store) Contact() (booking.ContactDetails, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.contact == nil {
		return booking.ContactDetails{}, false
	}
	return *s.contact, true
}

// SetHoldInfo records the hold covering the current selection. Token
// may be empty when the backend issues none; a zero expiresAt means
// "no expiry known".
func (s *Store) SetHoldInfo(token string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hold = booking.Hold{Token: token, ExpiresAt: expiresAt}
}

// Hold returns the current hold.
func (s *Store) Hold() booking.Hold {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hold
}

// Reset abandons the booking: trip, seat map, selection, drafts,
// hold, and contact are all cleared.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trip = nil
	s.seatMap = nil
	s.contact = nil
	s.clearSeatsLocked()
}
