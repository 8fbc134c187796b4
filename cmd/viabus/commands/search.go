// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/spf13/pflag"

	"github.com/viabus-travel/viabus/cmd/viabus/cli"
	"github.com/viabus-travel/viabus/lib/booking"
)

// searchCommand runs the full booking flow starting from the trip
// search page.
func searchCommand() *cli.Command {
	opts := &appOptions{}
	var (
		from       string
		to         string
		date       string
		passengers int
		minPrice   float64
		maxPrice   float64
		busTypes   []string
		sortBy     string
		sortOrder  string
	)

	return &cli.Command{
		Name:    "search",
		Summary: "browse trips and book seats",
		Description: "Search departures, filter them interactively, and walk through\n" +
			"seat selection and passenger details for the chosen trip.",
		Usage: "viabus search [flags]",
		Examples: []cli.Example{
			{
				Description: "all trips from Hanoi to Sapa on a date",
				Command:     "viabus search --from hanoi --to sapa --date 2026-09-14",
			},
			{
				Description: "sleeper buses under 400k, cheapest first",
				Command:     "viabus search --from hanoi --to sapa --bus-type sleeper --max-price 400000 --sort PRICE",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("search", pflag.ContinueOnError)
			opts.bind(flagSet)
			flagSet.StringVar(&from, "from", "", "origin city id")
			flagSet.StringVar(&to, "to", "", "destination city id")
			flagSet.StringVar(&date, "date", "", "travel date (YYYY-MM-DD)")
			flagSet.IntVar(&passengers, "passengers", 1, "number of passengers")
			flagSet.Float64Var(&minPrice, "min-price", 0, "minimum base price")
			flagSet.Float64Var(&maxPrice, "max-price", 0, "maximum base price")
			flagSet.StringSliceVar(&busTypes, "bus-type", nil, "restrict to bus types (repeatable)")
			flagSet.StringVar(&sortBy, "sort", "", "sort key: PRICE, DEPARTURE, or DURATION")
			flagSet.StringVar(&sortOrder, "order", "", "sort order: ASC or DESC")
			return flagSet
		},
		Run: func(args []string) error {
			query := booking.TripQuery{
				OriginCityID:      from,
				DestinationCityID: to,
				TravelDate:        date,
				Passengers:        passengers,
			}
			filters := booking.TripFilters{
				MinPrice:  minPrice,
				MaxPrice:  maxPrice,
				BusTypes:  busTypes,
				SortBy:    sortBy,
				SortOrder: sortOrder,
			}
			return runBookingApp(*opts, query, filters, "")
		},
	}
}
