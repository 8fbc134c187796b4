// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/viabus-travel/viabus/cmd/viabus/cli"
	"github.com/viabus-travel/viabus/lib/booking"
)

// bookCommand opens the seat map for a known trip id, skipping the
// search page.
func bookCommand() *cli.Command {
	opts := &appOptions{}
	var tripID string

	return &cli.Command{
		Name:    "book",
		Summary: "select seats on a specific trip",
		Description: "Open the live seat map for a trip directly. Useful when the trip\n" +
			"id is already known, e.g. from a shared link or a previous search.",
		Usage: "viabus book --trip <id> [flags]",
		Examples: []cli.Example{
			{Command: "viabus book --trip trip-42"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("book", pflag.ContinueOnError)
			opts.bind(flagSet)
			flagSet.StringVar(&tripID, "trip", "", "trip id to open")
			return flagSet
		},
		Run: func(args []string) error {
			if tripID == "" {
				return fmt.Errorf("--trip is required\n\nRun 'viabus book --help' for usage.")
			}
			return runBookingApp(*opts, booking.TripQuery{}, booking.TripFilters{}, tripID)
		},
	}
}
