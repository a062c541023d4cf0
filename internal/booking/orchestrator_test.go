package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func cardDraft() *Draft {
	d := validDraft()
	d.PaymentMethod = PaymentCard
	return d
}

// Card path: the collaborator hands back a checkout session, the
// redirector is invoked exactly once with it, and no cash-style completion
// happens.
func TestOrchestrator_CardRedirects(t *testing.T) {
	session := CheckoutSession{ID: "cs_123"}
	api := &collaboratorMock{}
	api.On("CreateBooking", mock.Anything, mock.Anything).
		Return(&CreateResult{Session: &session}, nil).Once()
	redirector := &redirectorMock{}
	redirector.On("Redirect", mock.Anything, session).
		Return("https://checkout.example.com/pay/cs_123", nil).Once()

	o := NewOrchestrator(api, redirector, testLogger())

	out, err := o.Submit(context.Background(), cardDraft())

	require.NoError(t, err)
	assert.Equal(t, StateRedirecting, out.State)
	assert.Equal(t, "https://checkout.example.com/pay/cs_123", out.RedirectURL)
	assert.Nil(t, out.Booking)
	assert.Equal(t, StateRedirecting, o.State())
	redirector.AssertNumberOfCalls(t, "Redirect", 1)
	api.AssertExpectations(t)
}

func TestOrchestrator_CashCompletes(t *testing.T) {
	record := &Record{ID: "b1", Status: "Confirmed"}
	api := &collaboratorMock{}
	api.On("CreateBooking", mock.Anything, mock.Anything).
		Return(&CreateResult{Booking: record}, nil).Once()
	redirector := &redirectorMock{}

	o := NewOrchestrator(api, redirector, testLogger())

	out, err := o.Submit(context.Background(), validDraft())

	require.NoError(t, err)
	assert.Equal(t, StateCompleted, out.State)
	assert.Equal(t, record, out.Booking)
	redirector.AssertNotCalled(t, "Redirect", mock.Anything, mock.Anything)
}

func TestOrchestrator_CollaboratorMessageSurfaced(t *testing.T) {
	api := &collaboratorMock{}
	api.On("CreateBooking", mock.Anything, mock.Anything).
		Return(nil, &CollaboratorError{StatusCode: 409, Message: "Only 1 double rooms available"}).Once()

	o := NewOrchestrator(api, &redirectorMock{}, testLogger())

	_, err := o.Submit(context.Background(), validDraft())

	var submissionErr *SubmissionError
	require.ErrorAs(t, err, &submissionErr)
	assert.Equal(t, "Only 1 double rooms available", submissionErr.Message)
	assert.Equal(t, StateFailed, o.State())
}

func TestOrchestrator_TransportFailureFallsBack(t *testing.T) {
	api := &collaboratorMock{}
	api.On("CreateBooking", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused")).Once()

	o := NewOrchestrator(api, &redirectorMock{}, testLogger())

	_, err := o.Submit(context.Background(), validDraft())

	var submissionErr *SubmissionError
	require.ErrorAs(t, err, &submissionErr)
	assert.Equal(t, "Booking failed. Please try again.", submissionErr.Message)
}

func TestOrchestrator_MalformedResponses(t *testing.T) {
	// Cash answer without a booking record.
	api := &collaboratorMock{}
	api.On("CreateBooking", mock.Anything, mock.Anything).
		Return(&CreateResult{}, nil).Once()
	o := NewOrchestrator(api, &redirectorMock{}, testLogger())

	_, err := o.Submit(context.Background(), validDraft())
	var submissionErr *SubmissionError
	require.ErrorAs(t, err, &submissionErr)
	assert.Equal(t, StateFailed, o.State())

	// Card answer without a session.
	api = &collaboratorMock{}
	api.On("CreateBooking", mock.Anything, mock.Anything).
		Return(&CreateResult{}, nil).Once()
	o = NewOrchestrator(api, &redirectorMock{}, testLogger())

	_, err = o.Submit(context.Background(), cardDraft())
	require.ErrorAs(t, err, &submissionErr)
	assert.Equal(t, StateFailed, o.State())
}

func TestOrchestrator_RedirectFailure(t *testing.T) {
	api := &collaboratorMock{}
	api.On("CreateBooking", mock.Anything, mock.Anything).
		Return(&CreateResult{Session: &CheckoutSession{ID: "cs_1"}}, nil).Once()
	redirector := &redirectorMock{}
	redirector.On("Redirect", mock.Anything, mock.Anything).
		Return("", errors.New("checkout unreachable")).Once()

	o := NewOrchestrator(api, redirector, testLogger())

	_, err := o.Submit(context.Background(), cardDraft())

	var submissionErr *SubmissionError
	require.ErrorAs(t, err, &submissionErr)
	assert.Equal(t, "Booking failed. Please try again.", submissionErr.Message)
	assert.Equal(t, StateFailed, o.State())
}

func TestOrchestrator_AcknowledgeResetsOnlyFailed(t *testing.T) {
	o := NewOrchestrator(&collaboratorMock{}, &redirectorMock{}, testLogger())

	o.setState(StateFailed)
	o.Acknowledge()
	assert.Equal(t, StateIdle, o.State())

	o.setState(StateCompleted)
	o.Acknowledge()
	assert.Equal(t, StateCompleted, o.State())
}

func TestBuildCreateRequest(t *testing.T) {
	d := validDraft()
	d.Guests = append(d.Guests, Guest{
		Name:     "  Bob Mapes ",
		Age:      " 41 ",
		Gender:   "Male",
		IDType:   "National ID",
		IDNumber: " NID-9 ",
	})

	req := buildCreateRequest(d)

	assert.Equal(t, "2024-01-01", req.CheckInDate)
	assert.Equal(t, "2024-01-04", req.CheckOutDate)
	require.Len(t, req.Guests, 2)
	assert.Equal(t, 30, req.Guests[0].Age)
	assert.Equal(t, GuestPayload{
		Name:     "Bob Mapes",
		Age:      41,
		Gender:   "Male",
		IDType:   "National ID",
		IDNumber: "NID-9",
	}, req.Guests[1])
}

func TestBuildCreateRequest_EmptyDates(t *testing.T) {
	d := validDraft()
	d.CheckInDate = nil
	d.CheckOutDate = nil

	req := buildCreateRequest(d)

	assert.Empty(t, req.CheckInDate)
	assert.Empty(t, req.CheckOutDate)
}
