package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"roamingg/internal/booking"
)

// These handlers proxy the booking service's read and completion
// operations for the profile and admin views; the service adds nothing on
// top except its collaborator error handling.

func (app *application) myBookingsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := app.bookings.MyBookings(r.Context())
	if err != nil {
		app.collaboratorProxyError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, records); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) allBookingsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := app.bookings.AllBookings(r.Context())
	if err != nil {
		app.collaboratorProxyError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, records); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) completeBookingHandler(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingID")

	record, err := app.bookings.CompleteBooking(r.Context(), bookingID)
	if err != nil {
		app.collaboratorProxyError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, record); err != nil {
		app.internalServerError(w, r, err)
	}
}

// collaboratorProxyError passes a booking-service rejection through with
// its own status and message, and degrades everything else to 502.
func (app *application) collaboratorProxyError(w http.ResponseWriter, r *http.Request, err error) {
	var collab *booking.CollaboratorError
	if errors.As(err, &collab) {
		writeJSONError(w, collab.StatusCode, collab.Error())
		return
	}

	app.logger.Errorw("booking service unreachable", "method", r.Method, "path", r.URL.Path, "error", err)
	writeJSONError(w, http.StatusBadGateway, "Booking service is unavailable. Please try again.")
}
