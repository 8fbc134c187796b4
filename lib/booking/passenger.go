// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package booking

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// PassengerDraft is the per-seat passenger form collected on the
// details step. SeatID ties the draft to a selected seat; the session
// store prunes drafts whose seat leaves the selection.
type PassengerDraft struct {
	SeatID     string `validate:"required"`
	FullName   string `validate:"required,min=2"`
	Phone      string `validate:"required,e164|numeric"`
	Email      string `validate:"required,email"`
	DocumentID string `validate:"omitempty,alphanum"`
}

// ContactDetails is the booking-level contact used for confirmation
// and guest lookup.
type ContactDetails struct {
	FullName string `validate:"required,min=2"`
	Phone    string `validate:"required,e164|numeric"`
	Email    string `validate:"required,email"`
}

// validate is shared across calls: validator caches struct metadata,
// so a single instance is the intended usage.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the draft's fields. The returned error lists the
// first offending field in a form suitable for inline display.
func (p PassengerDraft) Validate() error {
	if err := validate.Struct(p); err != nil {
		return draftError("passenger", err)
	}
	return nil
}

// Validate checks the contact fields.
func (c ContactDetails) Validate() error {
	if err := validate.Struct(c); err != nil {
		return draftError("contact", err)
	}
	return nil
}

// draftError converts validator output into a single user-facing
// message naming the first invalid field.
func draftError(form string, err error) error {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		first := fieldErrors[0]
		return fmt.Errorf("booking: %s form: field %s fails %q", form, first.Field(), first.Tag())
	}
	return fmt.Errorf("booking: %s form invalid: %w", form, err)
}
