package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"roamingg/internal/booking"
	"roamingg/internal/listing"
)

// draftView renders the draft with dates as plain ISO days, the format
// the form and the booking service speak.
type draftView struct {
	ListingID     string                `json:"listingId"`
	NumberOfRooms booking.RoomSelection `json:"numberOfRooms"`
	CheckInDate   string                `json:"checkInDate,omitempty"`
	CheckOutDate  string                `json:"checkOutDate,omitempty"`
	Guests        []booking.Guest       `json:"guests"`
	PaymentMethod booking.PaymentMethod `json:"paymentMethod"`
}

func newDraftView(d booking.Draft) draftView {
	view := draftView{
		ListingID:     d.ListingID,
		NumberOfRooms: d.NumberOfRooms,
		Guests:        d.Guests,
		PaymentMethod: d.PaymentMethod,
	}
	if d.CheckInDate != nil {
		view.CheckInDate = d.CheckInDate.Format(time.DateOnly)
	}
	if d.CheckOutDate != nil {
		view.CheckOutDate = d.CheckOutDate.Format(time.DateOnly)
	}
	return view
}

type sessionResponse struct {
	SessionID string           `json:"sessionId"`
	Listing   *listing.Listing `json:"listing"`
	Draft     draftView        `json:"draft"`
	Summary   booking.Summary  `json:"summary"`
	State     booking.State    `json:"state"`
}

func (app *application) sessionResponse(sessionID string, ctrl *booking.Controller) sessionResponse {
	return sessionResponse{
		SessionID: sessionID,
		Listing:   ctrl.Listing(),
		Draft:     newDraftView(ctrl.Draft()),
		Summary:   ctrl.Summary(),
		State:     ctrl.State(),
	}
}

// sessionController resolves the {sessionID} route param to a live
// controller, answering 404 itself when the session is gone.
func (app *application) sessionController(w http.ResponseWriter, r *http.Request) (string, *booking.Controller, bool) {
	sessionID := chi.URLParam(r, "sessionID")
	ctrl, ok := app.sessions.Get(sessionID)
	if !ok {
		app.notFoundResponse(w, r, "Booking session not found")
		return "", nil, false
	}
	return sessionID, ctrl, true
}

type createSessionPayload struct {
	ListingID string `json:"listingId" validate:"required"`
}

func (app *application) createSessionHandler(w http.ResponseWriter, r *http.Request) {
	var payload createSessionPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	lst, err := app.listings.GetByID(r.Context(), payload.ListingID)
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			app.notFoundResponse(w, r, "Listing not found")
			return
		}
		app.logger.Errorw("listing fetch failed", "listing_id", payload.ListingID, "error", err)
		writeJSONError(w, http.StatusBadGateway, "Unable to load listing details. Please try again.")
		return
	}

	orch := booking.NewOrchestrator(app.bookings, app.checkout, app.logger)
	ctrl := booking.NewController(lst, orch, app.logger)
	sessionID := app.sessions.Put(ctrl)

	app.logger.Infow("booking session opened", "session_id", sessionID, "listing_id", lst.ID)

	if err := app.jsonResponse(w, http.StatusCreated, app.sessionResponse(sessionID, ctrl)); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, ctrl, ok := app.sessionController(w, r)
	if !ok {
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, app.sessionResponse(sessionID, ctrl)); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	app.sessions.Delete(sessionID)
	w.WriteHeader(http.StatusNoContent)
}

type roomsPayload struct {
	RoomType string `json:"roomType" validate:"required,oneof=Single Double"`
	Count    *int   `json:"count" validate:"required"`
}

func (app *application) setRoomsHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, ctrl, ok := app.sessionController(w, r)
	if !ok {
		return
	}

	var payload roomsPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Out-of-range counts are clamped, not rejected; the stored value is
	// whatever the listing snapshot allows.
	ctrl.SetRoomCount(booking.RoomType(payload.RoomType), *payload.Count)

	if err := app.jsonResponse(w, http.StatusOK, app.sessionResponse(sessionID, ctrl)); err != nil {
		app.internalServerError(w, r, err)
	}
}

type datesPayload struct {
	CheckInDate  string `json:"checkInDate" validate:"omitempty,datetime=2006-01-02"`
	CheckOutDate string `json:"checkOutDate" validate:"omitempty,datetime=2006-01-02"`
}

func (app *application) setDatesHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, ctrl, ok := app.sessionController(w, r)
	if !ok {
		return
	}

	var payload datesPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctrl.SetDates(parseDate(payload.CheckInDate), parseDate(payload.CheckOutDate))

	if err := app.jsonResponse(w, http.StatusOK, app.sessionResponse(sessionID, ctrl)); err != nil {
		app.internalServerError(w, r, err)
	}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}
	return &t
}

type paymentMethodPayload struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=Card Cash"`
}

func (app *application) setPaymentMethodHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, ctrl, ok := app.sessionController(w, r)
	if !ok {
		return
	}

	var payload paymentMethodPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctrl.SetPaymentMethod(booking.PaymentMethod(payload.PaymentMethod))

	if err := app.jsonResponse(w, http.StatusOK, app.sessionResponse(sessionID, ctrl)); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) addGuestHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, ctrl, ok := app.sessionController(w, r)
	if !ok {
		return
	}

	ctrl.AddGuest()

	if err := app.jsonResponse(w, http.StatusOK, app.sessionResponse(sessionID, ctrl)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// guestPayload carries only the fields being edited; absent fields keep
// their current value. Values stay free-form until submit.
type guestPayload struct {
	Name     *string `json:"name"`
	Age      *string `json:"age"`
	Gender   *string `json:"gender"`
	IDType   *string `json:"idType"`
	IDNumber *string `json:"idNumber"`
}

func (app *application) updateGuestHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, ctrl, ok := app.sessionController(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "guestIndex"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid guest index: %w", err))
		return
	}

	var payload guestPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	fields := map[string]*string{
		"name":     payload.Name,
		"age":      payload.Age,
		"gender":   payload.Gender,
		"idType":   payload.IDType,
		"idNumber": payload.IDNumber,
	}
	for field, value := range fields {
		if value == nil {
			continue
		}
		if !ctrl.SetGuestField(index, field, *value) {
			app.notFoundResponse(w, r, "Guest not found")
			return
		}
	}

	if err := app.jsonResponse(w, http.StatusOK, app.sessionResponse(sessionID, ctrl)); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) removeGuestHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, ctrl, ok := app.sessionController(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "guestIndex"))
	if err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("invalid guest index: %w", err))
		return
	}

	// Removing the last remaining guest is refused inside the controller;
	// the response simply shows the unchanged list.
	ctrl.RemoveGuest(index)

	if err := app.jsonResponse(w, http.StatusOK, app.sessionResponse(sessionID, ctrl)); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) checkAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	_, ctrl, ok := app.sessionController(w, r)
	if !ok {
		return
	}

	draft := ctrl.Draft()
	if draft.CheckInDate == nil || draft.CheckOutDate == nil {
		app.badRequestResponse(w, r, errors.New("check-in and check-out dates are required"))
		return
	}

	result, err := app.listings.CheckAvailability(r.Context(), draft.ListingID, listing.AvailabilityRequest{
		CheckInDate:  draft.CheckInDate.Format(time.DateOnly),
		CheckOutDate: draft.CheckOutDate.Format(time.DateOnly),
		NumberOfRooms: listing.RoomCounts{
			Single: draft.NumberOfRooms.Single,
			Double: draft.NumberOfRooms.Double,
		},
	})
	if err != nil {
		app.logger.Errorw("availability check failed", "listing_id", draft.ListingID, "error", err)
		writeJSONError(w, http.StatusBadGateway, "Unable to check availability. Please try again.")
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

type submitResponse struct {
	Status      string          `json:"status"`
	Booking     *booking.Record `json:"booking,omitempty"`
	RedirectURL string          `json:"redirectUrl,omitempty"`
}

func (app *application) submitHandler(w http.ResponseWriter, r *http.Request) {
	_, ctrl, ok := app.sessionController(w, r)
	if !ok {
		return
	}

	out, err := ctrl.Submit(r.Context())
	if err != nil {
		var validationErr *booking.ValidationError
		var submissionErr *booking.SubmissionError
		switch {
		case errors.As(err, &validationErr):
			app.validationFailedResponse(w, r, validationErr.Fields)
		case errors.Is(err, booking.ErrSubmissionInFlight):
			writeJSONError(w, http.StatusConflict, "A submission is already in progress")
		case errors.Is(err, booking.ErrSessionClosed):
			app.notFoundResponse(w, r, "Booking session not found")
		case errors.As(err, &submissionErr):
			app.collaboratorFailureResponse(w, r, submissionErr)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	switch out.State {
	case booking.StateCompleted:
		// Cash path: confirmed server-side, hand the booking record to the
		// success view.
		app.jsonResponse(w, http.StatusOK, submitResponse{Status: "completed", Booking: out.Booking})
	case booking.StateRedirecting:
		// Card path: the hosted checkout takes over from here.
		app.jsonResponse(w, http.StatusOK, submitResponse{Status: "redirect", RedirectURL: out.RedirectURL})
	default:
		app.internalServerError(w, r, fmt.Errorf("unexpected submission state %q", out.State))
	}
}
