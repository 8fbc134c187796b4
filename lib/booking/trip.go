// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package booking

import "time"

// Trip is the immutable summary of a scheduled departure. Fetched
// once per trip id and re-fetched only when the id changes.
type Trip struct {
	ID              string
	RouteID         string
	RouteName       string
	OriginCity      string
	DestinationCity string
	DepartureTime   time.Time
	ArrivalTime     time.Time
	DurationMinutes int
	BasePrice       float64
	Currency        string
	BusType         string
	AvailableSeats  int
	Amenities       []string
}

// TripQuery is a storefront search: where from, where to, when.
type TripQuery struct {
	OriginCityID      string
	DestinationCityID string
	TravelDate        string
	Passengers        int
}

// TripFilters narrows and orders a trip search.
type TripFilters struct {
	DepartureStart string
	DepartureEnd   string
	MinPrice       float64
	MaxPrice       float64
	BusTypes       []string
	SortBy         string // "PRICE", "DEPARTURE", or "DURATION"
	SortOrder      string // "ASC" or "DESC"
	Page           int
	PageSize       int
}

// TripPage is one page of search results.
type TripPage struct {
	Trips      []Trip
	TotalItems int
	TotalPages int
	Page       int
	PageSize   int
}
