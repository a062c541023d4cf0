// Package payments resolves checkout sessions against the hosted payment
// page. The provider behind the page is opaque to this service; the card
// flow's success and cancel callbacks land on the frontend's own return
// routes.
package payments

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"roamingg/internal/booking"
)

var ErrEmptySession = errors.New("checkout session carries no handle")

// HostedCheckout implements booking.PaymentRedirector by building the
// hosted payment page URL for a session. When the booking service already
// resolved the full URL it is passed through untouched.
type HostedCheckout struct {
	baseURL string
}

func NewHostedCheckout(baseURL string) *HostedCheckout {
	return &HostedCheckout{baseURL: strings.TrimRight(baseURL, "/")}
}

func (h *HostedCheckout) Redirect(ctx context.Context, session booking.CheckoutSession) (string, error) {
	if session.URL != "" {
		return session.URL, nil
	}
	if session.ID == "" {
		return "", ErrEmptySession
	}
	if h.baseURL == "" {
		return "", fmt.Errorf("no checkout URL configured for session %q", session.ID)
	}
	return h.baseURL + "/" + url.PathEscape(session.ID), nil
}
