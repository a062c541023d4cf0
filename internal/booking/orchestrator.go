package booking

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State tracks one submission attempt. RedirectingToPayment and Completed
// are terminal for the form; Failed returns to Idle on the next user
// action.
type State string

const (
	StateIdle        State = "Idle"
	StateSubmitting  State = "Submitting"
	StateRedirecting State = "RedirectingToPayment"
	StateCompleted   State = "Completed"
	StateFailed      State = "Failed"
)

// Outcome is a finished submission: a confirmed booking on the cash path,
// a hosted-checkout redirect on the card path.
type Outcome struct {
	State       State            `json:"state"`
	Booking     *Record          `json:"booking,omitempty"`
	Session     *CheckoutSession `json:"session,omitempty"`
	RedirectURL string           `json:"redirectUrl,omitempty"`
}

// Orchestrator owns the submit protocol: one create-booking call, then a
// branch on payment method. It holds no draft state of its own.
type Orchestrator struct {
	api        Collaborator
	redirector PaymentRedirector
	logger     *zap.SugaredLogger

	mu    sync.Mutex
	state State
}

func NewOrchestrator(api Collaborator, redirector PaymentRedirector, logger *zap.SugaredLogger) *Orchestrator {
	return &Orchestrator{
		api:        api,
		redirector: redirector,
		logger:     logger,
		state:      StateIdle,
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Acknowledge moves a failed attempt back to the editable Idle state. Any
// user action after a failure counts as acknowledgement.
func (o *Orchestrator) Acknowledge() {
	o.mu.Lock()
	if o.state == StateFailed {
		o.state = StateIdle
	}
	o.mu.Unlock()
}

// Submit sends an already-validated draft to the booking collaborator.
// Failures come back as *SubmissionError with a single user-facing
// message; the caller keeps the draft so the user can correct and retry.
func (o *Orchestrator) Submit(ctx context.Context, d *Draft) (*Outcome, error) {
	o.setState(StateSubmitting)

	res, err := o.api.CreateBooking(ctx, buildCreateRequest(d))
	if err != nil {
		o.setState(StateFailed)
		subErr := newSubmissionError(err)
		o.logger.Errorw("create booking failed",
			"listing_id", d.ListingID,
			"payment_method", d.PaymentMethod,
			"error", err,
		)
		return nil, subErr
	}

	if d.PaymentMethod == PaymentCash {
		if res.Booking == nil {
			o.setState(StateFailed)
			return nil, &SubmissionError{Message: fallbackMessage, Err: errMissingBooking}
		}
		o.setState(StateCompleted)
		o.logger.Infow("booking completed",
			"booking_id", res.Booking.ID,
			"listing_id", d.ListingID,
			"total_amount", res.Booking.TotalAmount,
		)
		return &Outcome{State: StateCompleted, Booking: res.Booking}, nil
	}

	// Card path: the booking exists server-side but payment is pending;
	// control passes to the hosted checkout.
	if res.Session == nil {
		o.setState(StateFailed)
		return nil, &SubmissionError{Message: fallbackMessage, Err: errMissingSession}
	}

	url, err := o.redirector.Redirect(ctx, *res.Session)
	if err != nil {
		o.setState(StateFailed)
		o.logger.Errorw("payment redirect failed",
			"listing_id", d.ListingID,
			"session_id", res.Session.ID,
			"error", err,
		)
		return nil, &SubmissionError{Message: fallbackMessage, Err: err}
	}

	o.setState(StateRedirecting)
	o.logger.Infow("redirecting to hosted checkout",
		"listing_id", d.ListingID,
		"session_id", res.Session.ID,
	)
	return &Outcome{State: StateRedirecting, Session: res.Session, RedirectURL: url}, nil
}

// buildCreateRequest shapes the draft for the wire: dates as ISO day
// strings, guest ages as numbers. Only called on validated drafts.
func buildCreateRequest(d *Draft) CreateRequest {
	guests := make([]GuestPayload, 0, len(d.Guests))
	for _, g := range d.Guests {
		guests = append(guests, GuestPayload{
			Name:     strings.TrimSpace(g.Name),
			Age:      mustAtoi(g.Age),
			Gender:   g.Gender,
			IDType:   g.IDType,
			IDNumber: strings.TrimSpace(g.IDNumber),
		})
	}

	return CreateRequest{
		ListingID:     d.ListingID,
		NumberOfRooms: d.NumberOfRooms,
		CheckInDate:   formatDate(d.CheckInDate),
		CheckOutDate:  formatDate(d.CheckOutDate),
		Guests:        guests,
		PaymentMethod: d.PaymentMethod,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.DateOnly)
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}

var (
	errMissingBooking = errors.New("cash response carried no booking record")
	errMissingSession = errors.New("card response carried no checkout session")
)
