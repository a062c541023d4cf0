package booking

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"roamingg/internal/listing"
)

// Controller owns exactly one Draft for one booking session. All
// mutation goes through it: room counts are clamped against the listing
// snapshot, the guest list never drops below one row, and Submit is gated
// behind full validation plus a single-flight latch.
type Controller struct {
	mu         sync.Mutex
	draft      *Draft
	listing    *listing.Listing
	orch       *Orchestrator
	logger     *zap.SugaredLogger
	submitting bool
	closed     bool
}

func NewController(l *listing.Listing, orch *Orchestrator, logger *zap.SugaredLogger) *Controller {
	return &Controller{
		draft:   NewDraft(l.ID),
		listing: l,
		orch:    orch,
		logger:  logger,
	}
}

// Listing returns the immutable listing snapshot this session was opened
// against.
func (c *Controller) Listing() *listing.Listing {
	return c.listing
}

// Draft returns a copy of the current draft; the caller cannot mutate the
// controller's state through it.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := *c.draft
	d.Guests = append([]Guest(nil), c.draft.Guests...)
	return d
}

// Summary derives nights and total from the current draft.
func (c *Controller) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Derive(c.draft, c.listing)
}

// State reports the submission state machine's current state.
func (c *Controller) State() State {
	return c.orch.State()
}

// SetRoomCount stores the requested count clamped to what the listing
// snapshot advertises: out-of-range requests are absorbed, never errors,
// mirroring the form's disabled stepper buttons.
func (c *Controller) SetRoomCount(roomType RoomType, count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.orch.Acknowledge()

	var limit int
	switch roomType {
	case RoomTypeSingle:
		limit = c.listing.AvailableRooms.Single
	case RoomTypeDouble:
		limit = c.listing.AvailableRooms.Double
	default:
		return
	}

	if count < 0 {
		count = 0
	}
	if count > limit {
		count = limit
	}

	if roomType == RoomTypeSingle {
		c.draft.NumberOfRooms.Single = count
	} else {
		c.draft.NumberOfRooms.Double = count
	}
}

// SetDates stores the dates as given. There is no cross-field
// auto-correction; ordering is re-checked at submit time.
func (c *Controller) SetDates(checkIn, checkOut *time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.orch.Acknowledge()
	c.draft.CheckInDate = checkIn
	c.draft.CheckOutDate = checkOut
}

// AddGuest appends one blank guest row.
func (c *Controller) AddGuest() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.orch.Acknowledge()
	c.draft.Guests = append(c.draft.Guests, Guest{})
}

// RemoveGuest deletes the row at index. A booking always carries at least
// one guest record, so removing the last remaining row is a no-op.
func (c *Controller) RemoveGuest(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || len(c.draft.Guests) <= 1 {
		return
	}
	if index < 0 || index >= len(c.draft.Guests) {
		return
	}
	c.orch.Acknowledge()
	c.draft.Guests = append(c.draft.Guests[:index], c.draft.Guests[index+1:]...)
}

// SetGuestField updates one field of one guest row. Values are stored
// free-form; validation happens only at submit.
func (c *Controller) SetGuestField(index int, field, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || index < 0 || index >= len(c.draft.Guests) {
		return false
	}
	c.orch.Acknowledge()

	g := &c.draft.Guests[index]
	switch field {
	case "name":
		g.Name = value
	case "age":
		g.Age = value
	case "gender":
		g.Gender = value
	case "idType":
		g.IDType = value
	case "idNumber":
		g.IDNumber = value
	default:
		return false
	}
	return true
}

func (c *Controller) SetPaymentMethod(method PaymentMethod) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !method.Valid() {
		return
	}
	c.orch.Acknowledge()
	c.draft.PaymentMethod = method
}

// Validate runs the full rule sweep against the current draft.
func (c *Controller) Validate() ErrorSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Validate(c.draft, c.listing)
}

// Submit validates and, only on a clean draft, hands off to the
// orchestrator. A validation failure returns *ValidationError without any
// collaborator call; a collaborator failure returns *SubmissionError with
// the draft preserved for retry. A result arriving after Close is
// discarded.
func (c *Controller) Submit(ctx context.Context) (*Outcome, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	c.orch.Acknowledge()

	if errs := Validate(c.draft, c.listing); !errs.Empty() {
		c.mu.Unlock()
		return nil, &ValidationError{Fields: errs}
	}

	c.submitting = true
	snapshot := *c.draft
	snapshot.Guests = append([]Guest(nil), c.draft.Guests...)
	c.mu.Unlock()

	out, err := c.orch.Submit(ctx, &snapshot)

	c.mu.Lock()
	c.submitting = false
	closed := c.closed
	c.mu.Unlock()

	if closed {
		// The session was torn down while the request was in flight.
		c.logger.Infow("discarding submission result for closed session",
			"listing_id", snapshot.ListingID,
		)
		return nil, ErrSessionClosed
	}
	return out, err
}

// Close tears the session down. Mutators become no-ops and any in-flight
// submission result is dropped on arrival.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
