package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("listing not found")

// Client talks to the external listing service. Calls go through a
// circuit breaker so a dead listing service fails fast instead of
// holding every booking session open for the full client timeout.
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
		breaker: newBreaker("listing-service", logger),
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
			// Client-side errors (404 etc.) must not trip the breaker.
			return err == nil || errors.Is(err, ErrNotFound)
		},
	})
}

// GetByID fetches a listing snapshot, GET /api/v1/listing/{id}.
func (c *Client) GetByID(ctx context.Context, id string) (*Listing, error) {
	out, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/listing/"+id, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("listing service: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("listing service: unexpected status %d", resp.StatusCode)
		}

		var envelope struct {
			Listing *Listing `json:"listing"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return nil, fmt.Errorf("listing service: decode response: %w", err)
		}
		if envelope.Listing == nil {
			return nil, fmt.Errorf("listing service: response without listing")
		}
		return envelope.Listing, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*Listing), nil
}

// CheckAvailability runs the advisory availability check,
// POST /api/v1/{id}/availability. The result reflects the server's view
// at this instant; the final word is the create-booking call itself.
func (c *Client) CheckAvailability(ctx context.Context, id string, payload AvailabilityRequest) (*AvailabilityResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	out, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/"+id+"/availability", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("listing service: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("listing service: unexpected status %d", resp.StatusCode)
		}

		var result AvailabilityResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("listing service: decode response: %w", err)
		}
		return &result, nil
	})
	if err != nil {
		return nil, err
	}
	return out.(*AvailabilityResult), nil
}
