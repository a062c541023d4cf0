package main

import (
	"net/http"
	"time"

	"roamingg/internal/booking"
)

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusInternalServerError, "the server encountered a problem")
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	writeJSONError(w, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path)

	writeJSONError(w, http.StatusNotFound, message)
}

// validationFailedResponse returns the full field-keyed error set so the
// client can place each message next to its field.
func (app *application) validationFailedResponse(w http.ResponseWriter, r *http.Request, fields booking.ErrorSet) {
	type envelope struct {
		Success bool             `json:"success"`
		Message string           `json:"message"`
		Errors  booking.ErrorSet `json:"errors"`
	}

	writeJSON(w, http.StatusUnprocessableEntity, &envelope{
		Success: false,
		Message: "validation failed",
		Errors:  fields,
	})
}

// collaboratorFailureResponse surfaces a submission failure as one
// user-facing message; the draft stays editable for retry.
func (app *application) collaboratorFailureResponse(w http.ResponseWriter, r *http.Request, err *booking.SubmissionError) {
	app.logger.Errorw("collaborator failure", "method", r.Method, "path", r.URL.Path, "error", err.Unwrap())

	writeJSONError(w, http.StatusBadGateway, err.Message)
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	w.Header().Set("Retry-After", retryAfter.String())

	writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded, retry after: "+retryAfter.String())
}
