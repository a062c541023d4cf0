// Package bookings is the HTTP client for the external booking service.
package bookings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"roamingg/internal/booking"
)

// Client implements booking.Collaborator plus the listing/completion
// operations the profile and admin views use. All calls share one circuit
// breaker; a 4xx rejection is the server doing its job and does not trip
// it.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.SugaredLogger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breaker: newBreaker("booking-service", logger),
		logger:  logger,
	}
}

func newBreaker(name string, logger *zap.SugaredLogger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		Interval:    0,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 2
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Infow("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			collab, ok := err.(*booking.CollaboratorError)
			return ok && collab.StatusCode >= 400 && collab.StatusCode < 500
		},
	})
}

// createEnvelope is the create-booking response: cash bookings come back
// confirmed, card bookings carry the hosted-checkout session instead.
type createEnvelope struct {
	Booking *booking.Record          `json:"booking"`
	Session *booking.CheckoutSession `json:"session"`
}

// CreateBooking posts the validated draft, POST /api/bookings/create-booking.
func (c *Client) CreateBooking(ctx context.Context, req booking.CreateRequest) (*booking.CreateResult, error) {
	var envelope createEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/bookings/create-booking", req, &envelope); err != nil {
		return nil, err
	}
	return &booking.CreateResult{Booking: envelope.Booking, Session: envelope.Session}, nil
}

// MyBookings lists the current user's bookings, GET /api/bookings/my-bookings.
func (c *Client) MyBookings(ctx context.Context) ([]booking.Record, error) {
	var envelope struct {
		Bookings []booking.Record `json:"bookings"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/bookings/my-bookings", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Bookings, nil
}

// AllBookings lists every booking for the admin dashboard,
// GET /api/bookings/all-bookings.
func (c *Client) AllBookings(ctx context.Context) ([]booking.Record, error) {
	var envelope struct {
		Bookings []booking.Record `json:"bookings"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/bookings/all-bookings", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Bookings, nil
}

// CompleteBooking marks a stay as completed,
// PUT /api/bookings/complete-booking/{id}.
func (c *Client) CompleteBooking(ctx context.Context, bookingID string) (*booking.Record, error) {
	var envelope struct {
		Booking *booking.Record `json:"booking"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/bookings/complete-booking/"+bookingID, nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Booking == nil {
		return nil, fmt.Errorf("booking service: response without booking")
	}
	return envelope.Booking, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	_, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return nil, err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("booking service: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, readError(resp)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("booking service: decode response: %w", err)
		}
		return nil, nil
	})
	return err
}

// readError lifts the server's error envelope into a CollaboratorError so
// the orchestrator can surface the server's own message to the user.
func readError(resp *http.Response) error {
	var envelope struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&envelope)
	return &booking.CollaboratorError{
		StatusCode: resp.StatusCode,
		Message:    envelope.Message,
	}
}
