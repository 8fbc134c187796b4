// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/viabus-travel/viabus/cmd/viabus/cli"
)

// Root returns the top-level viabus command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "viabus",
		Summary: "terminal storefront for bus tickets",
		Description: "Viabus is a terminal storefront for a bus-ticket booking backend:\n" +
			"search trips, pick seats on a live seat map, and submit a booking.",
		Subcommands: []*cli.Command{
			searchCommand(),
			bookCommand(),
			configCommand(),
			versionCommand(),
		},
	}
}
