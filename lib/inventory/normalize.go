// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

// The backend emits a mix of snake_case and camelCase field names and
// several historical aliases for the same value (seat_number, number,
// code, label, …). This file is the one place that knowledge lives:
// wire structs declare every alias as its own field and the normalize
// functions coalesce them into the canonical booking types. Nothing
// outside this file guesses at field shapes.

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/viabus-travel/viabus/lib/booking"
)

type wireRoute struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	OriginCitySnake string `json:"origin_city"`
	OriginCityCamel string `json:"originCity"`
	Origin          string `json:"origin"`

	DestinationCitySnake string `json:"destination_city"`
	DestinationCityCamel string `json:"destinationCity"`
	Destination          string `json:"destination"`
}

type wireBus struct {
	ID      string `json:"id"`
	BusID   string `json:"busId"`
	IDSnake string `json:"bus_id"`

	BusTypeSnake string `json:"bus_type"`
	BusTypeCamel string `json:"busType"`

	TotalSeatsSnake int `json:"total_seats"`
	TotalSeatsCamel int `json:"totalSeats"`

	// Amenities arrives as either a comma-separated string or an
	// array of strings depending on backend version.
	Amenities json.RawMessage `json:"amenities"`
}

type wireTrip struct {
	ID string `json:"id"`

	RouteIDCamel string `json:"routeId"`
	RouteIDSnake string `json:"route_id"`

	DepartureSnake string `json:"departure_time"`
	DepartureCamel string `json:"departureTime"`
	Departure      string `json:"departure"`
	DepartureAt    string `json:"departureAt"`

	ArrivalSnake string `json:"arrival_time"`
	ArrivalCamel string `json:"arrivalTime"`
	Arrival      string `json:"arrival"`
	ArrivalAt    string `json:"arrivalAt"`

	BasePriceSnake *float64 `json:"base_price"`
	BasePriceCamel *float64 `json:"basePrice"`
	Price          *float64 `json:"price"`

	Currency string `json:"currency"`

	BusTypeCamel   string `json:"busType"`
	AvailableSeats *int   `json:"availableSeats"`

	OriginCityCamel      string `json:"originCity"`
	DestinationCityCamel string `json:"destinationCity"`

	BusIDCamel string `json:"busId"`
	BusIDSnake string `json:"bus_id"`

	Route *wireRoute `json:"route"`
	Bus   *wireBus   `json:"bus"`
}

type wireSeat struct {
	ID          string `json:"id"`
	SeatIDCamel string `json:"seatId"`
	SeatIDSnake string `json:"seat_id"`

	NumberCamel string `json:"seatNumber"`
	NumberSnake string `json:"seat_number"`
	Number      string `json:"number"`
	Code        string `json:"code"`
	Label       string `json:"label"`
	SeatNoSnake string `json:"seat_no"`
	SeatNoCamel string `json:"seatNo"`

	Row    *int `json:"row"`
	Column *int `json:"column"`
	Deck   *int `json:"deck"`

	Type          string `json:"type"`
	SeatTypeSnake string `json:"seat_type"`

	Status string `json:"status"`

	Price  *float64 `json:"price"`
	Cost   *float64 `json:"cost"`
	Amount *float64 `json:"amount"`
	Rate   *float64 `json:"rate"`

	PriceFactor *float64 `json:"price_factor"`

	Currency    string `json:"currency"`
	Curr        string `json:"curr"`
	ISOCurrency string `json:"isoCurrency"`
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

// firstFloat returns the first non-nil float, or fallback.
func firstFloat(fallback float64, values ...*float64) float64 {
	for _, value := range values {
		if value != nil {
			return *value
		}
	}
	return fallback
}

// parseWireTime accepts the timestamp shapes the backend emits:
// RFC 3339 with or without sub-second precision or offset.
func parseWireTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// decodeTripEnvelope unwraps the optional {"trip": …} envelope.
func decodeTripEnvelope(body []byte) (wireTrip, error) {
	var envelope struct {
		Trip *wireTrip `json:"trip"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Trip != nil {
		return *envelope.Trip, nil
	}

	var payload wireTrip
	if err := json.Unmarshal(body, &payload); err != nil {
		return wireTrip{}, fmt.Errorf("parsing trip payload: %w", err)
	}
	return payload, nil
}

// busID coalesces the places a bus id can appear.
func (t wireTrip) busID() string {
	fromBus := ""
	if t.Bus != nil {
		fromBus = firstNonEmpty(t.Bus.ID, t.Bus.BusID, t.Bus.IDSnake)
	}
	return firstNonEmpty(t.BusIDCamel, t.BusIDSnake, fromBus)
}

// normalizeTrip converts a wire trip into the canonical Trip.
func normalizeTrip(payload wireTrip) booking.Trip {
	departure := parseWireTime(firstNonEmpty(payload.DepartureSnake, payload.DepartureCamel, payload.Departure, payload.DepartureAt))
	arrival := parseWireTime(firstNonEmpty(payload.ArrivalSnake, payload.ArrivalCamel, payload.Arrival, payload.ArrivalAt))

	durationMinutes := 0
	if !departure.IsZero() && !arrival.IsZero() {
		durationMinutes = int(math.Round(arrival.Sub(departure).Minutes()))
		if durationMinutes < 1 {
			durationMinutes = 1
		}
	}

	var route wireRoute
	if payload.Route != nil {
		route = *payload.Route
	}
	originCity := firstNonEmpty(route.OriginCitySnake, route.OriginCityCamel, route.Origin, payload.OriginCityCamel)
	destinationCity := firstNonEmpty(route.DestinationCitySnake, route.DestinationCityCamel, route.Destination, payload.DestinationCityCamel)

	routeName := route.Name
	if routeName == "" {
		routeName = strings.TrimSpace(originCity + " → " + destinationCity)
	}

	busType := payload.BusTypeCamel
	totalSeats := 0
	var amenities []string
	if payload.Bus != nil {
		busType = firstNonEmpty(payload.Bus.BusTypeSnake, payload.Bus.BusTypeCamel, busType)
		if payload.Bus.TotalSeatsSnake > 0 {
			totalSeats = payload.Bus.TotalSeatsSnake
		} else {
			totalSeats = payload.Bus.TotalSeatsCamel
		}
		amenities = parseAmenities(payload.Bus.Amenities)
	}
	if busType == "" {
		busType = "Bus"
	}

	availableSeats := totalSeats
	if payload.AvailableSeats != nil {
		availableSeats = *payload.AvailableSeats
	}

	currency := payload.Currency
	if currency == "" {
		currency = "USD"
	}

	return booking.Trip{
		ID:              payload.ID,
		RouteID:         firstNonEmpty(payload.RouteIDCamel, payload.RouteIDSnake, route.ID),
		RouteName:       routeName,
		OriginCity:      originCity,
		DestinationCity: destinationCity,
		DepartureTime:   departure,
		ArrivalTime:     arrival,
		DurationMinutes: durationMinutes,
		BasePrice:       firstFloat(0, payload.BasePriceSnake, payload.BasePriceCamel, payload.Price),
		Currency:        currency,
		BusType:         busType,
		AvailableSeats:  availableSeats,
		Amenities:       amenities,
	}
}

// parseAmenities accepts either a JSON array of strings or a single
// comma-separated string.
func parseAmenities(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var joined string
	if err := json.Unmarshal(raw, &joined); err != nil {
		return nil
	}
	var amenities []string
	for _, part := range strings.Split(joined, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			amenities = append(amenities, trimmed)
		}
	}
	return amenities
}

// normalizeSeat converts one wire seat. ordinal seeds the fallback
// number when every alias is missing; basePrice and currency come
// from the trip.
func normalizeSeat(row wireSeat, ordinal int, basePrice float64, currency string) booking.Seat {
	number := firstNonEmpty(row.NumberCamel, row.NumberSnake, row.Number, row.Code, row.Label, row.SeatNoSnake, row.SeatNoCamel)
	if number == "" {
		number = strconv.Itoa(ordinal + 1)
	}

	status := booking.SeatAvailable
	switch strings.ToUpper(row.Status) {
	case "BOOKED", "UNAVAILABLE":
		status = booking.SeatBooked
	case "HELD", "LOCKED":
		status = booking.SeatHeld
	}

	seatType := booking.SeatStandard
	switch strings.ToUpper(firstNonEmpty(row.Type, row.SeatTypeSnake)) {
	case "VIP":
		seatType = booking.SeatVIP
	case "SLEEPER":
		seatType = booking.SeatSleeper
	}

	priceFactor := 1.0
	if row.PriceFactor != nil {
		priceFactor = *row.PriceFactor
	}

	seatCurrency := firstNonEmpty(row.Currency, row.Curr, row.ISOCurrency, currency)
	if seatCurrency == "" {
		seatCurrency = "USD"
	}

	position := func(value *int) int {
		if value == nil {
			return booking.NoPosition
		}
		return *value
	}
	deck := 0
	if row.Deck != nil {
		deck = *row.Deck
	}

	return booking.Seat{
		ID:       firstNonEmpty(row.ID, row.SeatIDCamel, row.SeatIDSnake, number),
		Number:   number,
		Row:      position(row.Row),
		Column:   position(row.Column),
		Deck:     deck,
		Type:     seatType,
		Status:   status,
		Price:    firstFloat(basePrice, row.Price, row.Cost, row.Amount, row.Rate) * priceFactor,
		Currency: seatCurrency,
	}
}

// assembleSeatMap builds the snapshot from the trip payload and the
// bus's raw seat rows. When the bus has no seat records but reports a
// seat count, numbered AVAILABLE standard seats are synthesized so
// the layout still renders.
func assembleSeatMap(tripID, busID string, payload wireTrip, rows []wireSeat, now time.Time) booking.SeatMapSnapshot {
	basePrice := firstFloat(0, payload.BasePriceSnake, payload.BasePriceCamel, payload.Price)
	currency := payload.Currency

	totalSeats := 0
	busType := "Bus"
	if payload.Bus != nil {
		if payload.Bus.TotalSeatsSnake > 0 {
			totalSeats = payload.Bus.TotalSeatsSnake
		} else {
			totalSeats = payload.Bus.TotalSeatsCamel
		}
		busType = firstNonEmpty(payload.Bus.BusTypeSnake, payload.Bus.BusTypeCamel, busType)
	}

	if len(rows) == 0 && totalSeats > 0 {
		rows = make([]wireSeat, totalSeats)
		for index := range rows {
			number := strconv.Itoa(index + 1)
			rows[index] = wireSeat{
				ID:     "auto-" + busID + "-" + number,
				Number: number,
				Type:   string(booking.SeatStandard),
				Status: string(booking.SeatAvailable),
			}
		}
	}

	seats := make([]booking.Seat, 0, len(rows))
	for index, row := range rows {
		seats = append(seats, normalizeSeat(row, index, basePrice, currency))
	}

	totalRows, totalColumns := 0, 0
	deckCount := 1
	for _, seat := range seats {
		if seat.Row != booking.NoPosition && seat.Row+1 > totalRows {
			totalRows = seat.Row + 1
		}
		if seat.Column != booking.NoPosition && seat.Column+1 > totalColumns {
			totalColumns = seat.Column + 1
		}
		if seat.Deck+1 > deckCount {
			deckCount = seat.Deck + 1
		}
	}
	if totalRows == 0 {
		totalRows = (len(seats) + 3) / 4
		if totalRows < 1 {
			totalRows = 1
		}
	}
	if totalColumns == 0 {
		totalColumns = 5
	}

	return booking.SeatMapSnapshot{
		LayoutID:     busID + "-layout",
		TripID:       tripID,
		BusType:      busType,
		TotalRows:    totalRows,
		TotalColumns: totalColumns,
		DeckCount:    deckCount,
		Seats:        seats,
		RefreshedAt:  now,
	}
}

// decodeTripPage handles both search response envelopes: {"trips": …}
// with camelCase totals, and {"data": …} with snake_case totals.
func decodeTripPage(body []byte, filters booking.TripFilters) (booking.TripPage, error) {
	var envelope struct {
		Trips []wireTrip `json:"trips"`
		Data  []wireTrip `json:"data"`

		TotalItems *int `json:"totalItems"`
		Total      *int `json:"total"`

		TotalPages      *int `json:"totalPages"`
		TotalPagesSnake *int `json:"total_pages"`

		Page     *int `json:"page"`
		PageSize *int `json:"pageSize"`
		Limit    *int `json:"limit"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return booking.TripPage{}, fmt.Errorf("parsing search response: %w", err)
	}

	items := envelope.Trips
	if items == nil {
		items = envelope.Data
	}
	trips := make([]booking.Trip, 0, len(items))
	for _, item := range items {
		trips = append(trips, normalizeTrip(item))
	}

	pick := func(fallback int, values ...*int) int {
		for _, value := range values {
			if value != nil {
				return *value
			}
		}
		return fallback
	}

	requestedPage := filters.Page
	if requestedPage == 0 {
		requestedPage = 1
	}
	requestedSize := filters.PageSize
	if requestedSize == 0 {
		requestedSize = 10
	}

	return booking.TripPage{
		Trips:      trips,
		TotalItems: pick(len(trips), envelope.TotalItems, envelope.Total),
		TotalPages: pick(1, envelope.TotalPages, envelope.TotalPagesSnake),
		Page:       pick(requestedPage, envelope.Page),
		PageSize:   pick(requestedSize, envelope.PageSize, envelope.Limit),
	}, nil
}

// decodeAvailableSeats handles the poll response: a bare identifier
// array, or an envelope with availableSeatIds or availableSeatCodes.
func decodeAvailableSeats(body []byte) ([]string, error) {
	var bare []string
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	var envelope struct {
		AvailableSeatIDs   []string `json:"availableSeatIds"`
		AvailableSeatCodes []string `json:"availableSeatCodes"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parsing availability response: %w", err)
	}
	if envelope.AvailableSeatIDs != nil {
		return envelope.AvailableSeatIDs, nil
	}
	if envelope.AvailableSeatCodes != nil {
		return envelope.AvailableSeatCodes, nil
	}
	return []string{}, nil
}

// setFilterParams appends the optional search filters to params.
func setFilterParams(params url.Values, filters booking.TripFilters) {
	setIfPresent := func(key, value string) {
		if value != "" {
			params.Set(key, value)
		}
	}
	setIfPresent("departureStart", filters.DepartureStart)
	setIfPresent("departureEnd", filters.DepartureEnd)
	if filters.MinPrice > 0 {
		params.Set("minPrice", strconv.FormatFloat(filters.MinPrice, 'f', -1, 64))
	}
	if filters.MaxPrice > 0 {
		params.Set("maxPrice", strconv.FormatFloat(filters.MaxPrice, 'f', -1, 64))
	}
	if len(filters.BusTypes) > 0 {
		params.Set("busTypes", strings.Join(filters.BusTypes, ","))
	}
	setIfPresent("sortBy", filters.SortBy)
	setIfPresent("sortOrder", filters.SortOrder)
	if filters.Page > 0 {
		params.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(filters.PageSize))
	}
}
