package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrSubmissionInFlight rejects a second submit while one is pending.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")

	// ErrSessionClosed marks a controller whose booking session was torn
	// down; late collaborator responses are discarded against it.
	ErrSessionClosed = errors.New("booking session closed")
)

// fallbackMessage is shown when the collaborator's failure carries no
// usable message of its own.
const fallbackMessage = "Booking failed. Please try again."

// ValidationError carries the full field-keyed error set of a rejected
// submit. No collaborator was contacted when this is returned.
type ValidationError struct {
	Fields ErrorSet
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("booking draft failed validation (%d errors)", len(e.Fields))
}

// CollaboratorError is a rejection reported by the booking service itself,
// e.g. rooms taken between form load and submit. Message is the server's
// own wording when it sent one.
type CollaboratorError struct {
	StatusCode int
	Message    string
}

func (e *CollaboratorError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("booking service rejected the request (status %d)", e.StatusCode)
}

// SubmissionError is the single user-facing failure of a submit attempt.
// Message is safe to show verbatim; the wrapped error keeps the transport
// detail for logs.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// newSubmissionError prefers the collaborator's own message and falls back
// to generic copy for transport failures it cannot interpret.
func newSubmissionError(err error) *SubmissionError {
	var collab *CollaboratorError
	if errors.As(err, &collab) && collab.Message != "" {
		return &SubmissionError{Message: collab.Message, Err: err}
	}
	return &SubmissionError{Message: fallbackMessage, Err: err}
}
