// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package booking

import (
	"testing"
	"time"
)

func TestMatchKeyNormalizes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"A1", "a1"},
		{"  B2 ", "b2"},
		{"seat-7", "seat-7"},
		{"", ""},
	}
	for _, testCase := range cases {
		if got := MatchKey(testCase.in); got != testCase.want {
			t.Errorf("MatchKey(%q) = %q, want %q", testCase.in, got, testCase.want)
		}
	}
}

func TestSeatPositioned(t *testing.T) {
	seat := Seat{Row: NoPosition, Column: NoPosition}
	if seat.Positioned() {
		t.Error("seat without coordinates reported Positioned")
	}
	seat.Row, seat.Column = 0, 3
	if !seat.Positioned() {
		t.Error("seat with coordinates reported not Positioned")
	}
	// A row without a column is not a usable position.
	seat.Column = NoPosition
	if seat.Positioned() {
		t.Error("seat with only a row reported Positioned")
	}
}

func TestHoldActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	var none Hold
	if none.Active(now) {
		t.Error("zero hold reported active")
	}

	held := Hold{Token: "tok", ExpiresAt: now.Add(5 * time.Minute)}
	if !held.Active(now) {
		t.Error("future-expiry hold reported inactive")
	}
	if held.Active(now.Add(5 * time.Minute)) {
		t.Error("hold at its expiry instant reported active")
	}
}

func TestPassengerDraftValidation(t *testing.T) {
	valid := PassengerDraft{
		SeatID:   "seat-1",
		FullName: "Nguyen Van A",
		Phone:    "0912345678",
		Email:    "a@example.com",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}

	missing := valid
	missing.Email = "not-an-email"
	if err := missing.Validate(); err == nil {
		t.Fatal("draft with malformed email accepted")
	}

	unbound := valid
	unbound.SeatID = ""
	if err := unbound.Validate(); err == nil {
		t.Fatal("draft without a seat id accepted")
	}
}

func TestContactDetailsValidation(t *testing.T) {
	valid := ContactDetails{FullName: "Tran B", Phone: "+84912345678", Email: "b@example.com"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid contact rejected: %v", err)
	}
	if err := (ContactDetails{}).Validate(); err == nil {
		t.Fatal("empty contact accepted")
	}
}
