// Copyright 2026 The Viabus Authors
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/viabus-travel/viabus/lib/booking"
	"github.com/viabus-travel/viabus/lib/clock"
)

// defaultHoldTTL is assumed when the backend's hold response omits an
// expiry. Matches the server's documented seat-lock TTL.
const defaultHoldTTL = 5 * time.Minute

// maxErrorBodyBytes bounds how much of an error response body is kept
// for the error message.
const maxErrorBodyBytes = 512

// ClientConfig configures a Client.
type ClientConfig struct {
	// BaseURL is the root of the booking API, e.g. "https://api.viabus.vn/v1".
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient.
	HTTPClient *http.Client
	// Logger receives request diagnostics. If nil, slog.Default().
	Logger *slog.Logger
	// Clock supplies the current time for defaulted hold expiries.
	// If nil, clock.Real().
	Clock clock.Clock
}

// Client implements [Service] over HTTP. Each Client carries a random
// session id sent as X-Viabus-Session on mutating requests so the
// backend can correlate holds and releases from the same shopper.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	clock      clock.Clock
	sessionID  string
}

// NewClient validates the configuration and returns a Client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("inventory: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("inventory: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeSource := config.Clock
	if timeSource == nil {
		timeSource = clock.Real()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
		clock:      timeSource,
		sessionID:  uuid.NewString(),
	}, nil
}

// SessionID returns the client's random session identifier.
func (c *Client) SessionID() string { return c.sessionID }

// GetTrip implements [Service].
func (c *Client) GetTrip(ctx context.Context, tripID string) (booking.Trip, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/trips/"+url.PathEscape(tripID), nil, nil)
	if err != nil {
		return booking.Trip{}, fmt.Errorf("inventory: get trip %s: %w", tripID, err)
	}

	payload, err := decodeTripEnvelope(body)
	if err != nil {
		return booking.Trip{}, fmt.Errorf("inventory: trip %s: %w", tripID, err)
	}
	return normalizeTrip(payload), nil
}

// SearchTrips implements [Service].
func (c *Client) SearchTrips(ctx context.Context, query booking.TripQuery, filters booking.TripFilters) (booking.TripPage, error) {
	params := url.Values{}
	params.Set("originCityId", query.OriginCityID)
	params.Set("destinationCityId", query.DestinationCityID)
	params.Set("travelDate", query.TravelDate)
	if query.Passengers > 0 {
		params.Set("passengers", strconv.Itoa(query.Passengers))
	}
	setFilterParams(params, filters)

	body, err := c.doRequest(ctx, http.MethodGet, "/trips", params, nil)
	if err != nil {
		return booking.TripPage{}, fmt.Errorf("inventory: search trips: %w", err)
	}
	page, err := decodeTripPage(body, filters)
	if err != nil {
		return booking.TripPage{}, fmt.Errorf("inventory: search trips: %w", err)
	}
	return page, nil
}

// GetSeatMap implements [Service]. The backend has no single seat-map
// endpoint: the map is assembled from the trip (bus id, base price,
// currency) and the bus's seat list, then normalized. A bus with no
// seat records but a known seat count yields synthesized numbered
// seats so the layout can still render.
func (c *Client) GetSeatMap(ctx context.Context, tripID string) (booking.SeatMapSnapshot, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/trips/"+url.PathEscape(tripID), nil, nil)
	if err != nil {
		return booking.SeatMapSnapshot{}, fmt.Errorf("inventory: seat map for trip %s: %w", tripID, err)
	}
	payload, err := decodeTripEnvelope(body)
	if err != nil {
		return booking.SeatMapSnapshot{}, fmt.Errorf("inventory: seat map for trip %s: %w", tripID, err)
	}

	busID := payload.busID()
	if busID == "" {
		return booking.SeatMapSnapshot{}, fmt.Errorf("inventory: trip %s has no bus: %w", tripID, ErrNotFound)
	}

	seatRows, err := c.fetchSeatsForBus(ctx, busID)
	if err != nil {
		return booking.SeatMapSnapshot{}, fmt.Errorf("inventory: seat map for trip %s: %w", tripID, err)
	}

	snapshot := assembleSeatMap(tripID, busID, payload, seatRows, c.clock.Now())
	return snapshot, nil
}

// fetchSeatsForBus loads the raw seat rows for a bus. A 404 means the
// bus has no seat records, which is not an error here: the caller
// synthesizes a default map from the bus's seat count.
func (c *Client) fetchSeatsForBus(ctx context.Context, busID string) ([]wireSeat, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/seats/by-bus/"+url.PathEscape(busID), nil, nil)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}

	var rows []wireSeat
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("parsing seats for bus %s: %w", busID, err)
	}
	return rows, nil
}

// RefreshSeatStatuses implements [Service]. The response is either a
// bare array of identifiers or an envelope carrying availableSeatIds
// or availableSeatCodes.
func (c *Client) RefreshSeatStatuses(ctx context.Context, tripID string) ([]string, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/seat-lock/available/"+url.PathEscape(tripID), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("inventory: refresh seat statuses for trip %s: %w", tripID, err)
	}
	identifiers, err := decodeAvailableSeats(body)
	if err != nil {
		return nil, fmt.Errorf("inventory: refresh seat statuses for trip %s: %w", tripID, err)
	}
	return identifiers, nil
}

// HoldSeats implements [Service]. One request covers the entire
// selection; a 409 anywhere fails the whole request with ErrConflict.
func (c *Client) HoldSeats(ctx context.Context, tripID string, seatIDs, seatNumbers []string) (booking.Hold, error) {
	codes := seatNumbers
	if len(codes) == 0 {
		codes = seatIDs
	}
	var primary string
	if len(codes) > 0 {
		primary = codes[0]
	}

	// The backend grew seatCodes/seatIds after shipping the single
	// seat_code field; all three are sent for compatibility.
	request := map[string]any{
		"trip_id":   tripID,
		"seat_code": primary,
		"seatCodes": codes,
		"seatIds":   seatIDs,
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/seat-lock", nil, request)
	if err != nil {
		return booking.Hold{}, fmt.Errorf("inventory: hold seats on trip %s: %w", tripID, err)
	}

	var response struct {
		Token     string `json:"token"`
		ExpiresAt string `json:"expiresAt"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return booking.Hold{}, fmt.Errorf("inventory: hold seats on trip %s: parsing response: %w", tripID, err)
	}

	hold := booking.Hold{Token: response.Token}
	if response.ExpiresAt != "" {
		expiresAt, err := time.Parse(time.RFC3339, response.ExpiresAt)
		if err != nil {
			return booking.Hold{}, fmt.Errorf("inventory: hold seats on trip %s: bad expiresAt %q: %w", tripID, response.ExpiresAt, err)
		}
		hold.ExpiresAt = expiresAt
	} else {
		hold.ExpiresAt = c.clock.Now().Add(defaultHoldTTL)
	}
	return hold, nil
}

// ReleaseSeats implements [Service]. A 404 is treated as success: the
// deployment may have no release endpoint at all and rely purely on
// the server-side TTL.
func (c *Client) ReleaseSeats(ctx context.Context, tripID string, seatIDs []string) error {
	request := map[string]any{
		"trip_id": tripID,
		"seatIds": seatIDs,
	}
	_, err := c.doRequest(ctx, http.MethodPost, "/seat-lock/release", nil, request)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			c.logger.Debug("release endpoint absent, relying on TTL expiry",
				"trip_id", tripID, "seats", len(seatIDs))
			return nil
		}
		return fmt.Errorf("inventory: release seats on trip %s: %w", tripID, err)
	}
	return nil
}

// CreateBooking implements [Service].
func (c *Client) CreateBooking(ctx context.Context, request BookingRequest) (BookingResult, error) {
	passengers := make([]map[string]string, 0, len(request.Passengers))
	for _, passenger := range request.Passengers {
		passengers = append(passengers, map[string]string{
			"seatId":     passenger.SeatID,
			"fullName":   passenger.FullName,
			"phone":      passenger.Phone,
			"email":      passenger.Email,
			"documentId": passenger.DocumentID,
		})
	}

	payload := map[string]any{
		"tripId":          request.TripID,
		"seatCodes":       request.SeatCodes,
		"passengers":      passengers,
		"paymentProvider": request.PaymentProvider,
		"contact": map[string]string{
			"fullName": request.Contact.FullName,
			"phone":    request.Contact.Phone,
			"email":    request.Contact.Email,
		},
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/bookings", nil, payload)
	if err != nil {
		return BookingResult{}, fmt.Errorf("inventory: create booking: %w", err)
	}

	var response struct {
		BookingID     string `json:"bookingId"`
		ReferenceCode string `json:"referenceCode"`
		Status        string `json:"status"`
		Payment       struct {
			CheckoutURL string `json:"checkoutUrl"`
		} `json:"payment"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return BookingResult{}, fmt.Errorf("inventory: create booking: parsing response: %w", err)
	}
	return BookingResult{
		BookingID:     response.BookingID,
		ReferenceCode: response.ReferenceCode,
		Status:        response.Status,
		CheckoutURL:   response.Payment.CheckoutURL,
	}, nil
}

// doRequest performs one HTTP request and returns the response body.
// Non-2xx statuses become a *StatusError carrying a body excerpt.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, requestBody any) ([]byte, error) {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("X-Viabus-Session", c.sessionID)
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: reading response: %w", method, path, err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	excerpt := responseBody
	if len(excerpt) > maxErrorBodyBytes {
		excerpt = excerpt[:maxErrorBodyBytes]
	}
	return nil, &StatusError{
		StatusCode: response.StatusCode,
		Method:     method,
		Path:       path,
		Body:       string(excerpt),
	}
}
