// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"testing"
	"time"

	"github.com/viabus-travel/viabus/lib/booking"
)

func seatFixture(id, number string, price float64) booking.Seat {
	return booking.Seat{
		ID:       id,
		Number:   number,
		Row:      booking.NoPosition,
		Column:   booking.NoPosition,
		Type:     booking.SeatStandard,
		Status:   booking.SeatAvailable,
		Price:    price,
		Currency: "VND",
	}
}

func TestAddSeatIsIdempotent(t *testing.T) {
	store := New()
	seat := seatFixture("s-1", "A1", 100000)

	store.AddSeat(seat)
	store.AddSeat(seat)

	if got := store.SelectedSeats(); len(got) != 1 {
		t.Fatalf("selection size = %d after double add, want 1", len(got))
	}
}

func TestSelectionPreservesOrder(t *testing.T) {
	store := New()
	store.AddSeat(seatFixture("s-2", "A2", 1))
	store.AddSeat(seatFixture("s-1", "A1", 1))
	store.AddSeat(seatFixture("s-3", "A3", 1))

	ids := store.SelectedSeatIDs()
	want := []string{"s-2", "s-1", "s-3"}
	for index := range want {
		if ids[index] != want[index] {
			t.Fatalf("SelectedSeatIDs = %v, want %v", ids, want)
		}
	}
}

func TestRemoveSeatPrunesPassengerDraft(t *testing.T) {
	store := New()
	store.AddSeat(seatFixture("s-1", "A1", 1))
	store.AddSeat(seatFixture("s-2", "A2", 1))
	store.SetPassengers([]booking.PassengerDraft{
		{SeatID: "s-1", FullName: "One"},
		{SeatID: "s-2", FullName: "Two"},
	})

	store.RemoveSeat("s-1")

	for _, draft := range store.Passengers() {
		if draft.SeatID == "s-1" {
			t.Fatal("draft for removed seat survived RemoveSeat")
		}
	}
	if store.IsSelected("s-1") {
		t.Fatal("removed seat still selected")
	}
	if !store.IsSelected("s-2") {
		t.Fatal("unrelated seat lost by RemoveSeat")
	}
}

func TestClearSeatsIsAtomic(t *testing.T) {
	store := New()
	store.AddSeat(seatFixture("s-1", "A1", 1))
	store.SetPassengers([]booking.PassengerDraft{{SeatID: "s-1", FullName: "One"}})
	store.SetHoldInfo("tok", time.Now().Add(5*time.Minute))

	store.ClearSeats()

	if len(store.SelectedSeats()) != 0 {
		t.Error("selection not empty after ClearSeats")
	}
	if len(store.Passengers()) != 0 {
		t.Error("passenger drafts not empty after ClearSeats")
	}
	if hold := store.Hold(); hold.Token != "" || !hold.ExpiresAt.IsZero() {
		t.Errorf("hold not cleared by ClearSeats: %+v", hold)
	}
}

func TestTotalPrice(t *testing.T) {
	store := New()
	if got := store.TotalPrice(); got != 0 {
		t.Fatalf("empty selection total = %v, want 0", got)
	}
	store.AddSeat(seatFixture("s-1", "A1", 100000))
	store.AddSeat(seatFixture("s-2", "A2", 150000))
	if got := store.TotalPrice(); got != 250000 {
		t.Fatalf("total = %v, want 250000", got)
	}
}

func TestResetClearsEverything(t *testing.T) {
	store := New()
	store.SetTrip(&booking.Trip{ID: "trip-1"})
	store.SetSeatMap(&booking.SeatMapSnapshot{TripID: "trip-1"})
	store.AddSeat(seatFixture("s-1", "A1", 1))
	store.SetContact(&booking.ContactDetails{FullName: "C"})
	store.SetHoldInfo("tok", time.Now())

	store.Reset()

	if _, ok := store.Trip(); ok {
		t.Error("trip survived Reset")
	}
	if _, ok := store.SeatMap(); ok {
		t.Error("seat map survived Reset")
	}
	if _, ok := store.Contact(); ok {
		t.Error("contact survived Reset")
	}
	if len(store.SelectedSeats()) != 0 || store.Hold().Token != "" {
		t.Error("selection or hold survived Reset")
	}
}

func TestSeatMapReturnsACopy(t *testing.T) {
	store := New()
	store.SetSeatMap(&booking.SeatMapSnapshot{
		TripID: "trip-1",
		Seats:  []booking.Seat{seatFixture("s-1", "A1", 1)},
	})

	snapshot, ok := store.SeatMap()
	if !ok {
		t.Fatal("SeatMap not set")
	}
	snapshot.Seats[0].Status = booking.SeatBooked

	fresh, _ := store.SeatMap()
	if fresh.Seats[0].Status != booking.SeatAvailable {
		t.Fatal("mutating the returned snapshot leaked into the store")
	}
}
