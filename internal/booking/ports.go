package booking

import "context"

// GuestPayload is a guest as transmitted to the booking service, with age
// already coerced to a number.
type GuestPayload struct {
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	IDType   string `json:"idType"`
	IDNumber string `json:"idNumber"`
}

// CreateRequest is the body of POST create-booking.
type CreateRequest struct {
	ListingID     string         `json:"listingId"`
	NumberOfRooms RoomSelection  `json:"numberOfRooms"`
	CheckInDate   string         `json:"checkInDate"`
	CheckOutDate  string         `json:"checkOutDate"`
	Guests        []GuestPayload `json:"guests"`
	PaymentMethod PaymentMethod  `json:"paymentMethod"`
}

// Record is a confirmed booking as returned by the booking service.
type Record struct {
	ID            string        `json:"_id"`
	ListingID     string        `json:"listingId"`
	NumberOfRooms RoomSelection `json:"numberOfRooms"`
	CheckInDate   string        `json:"checkInDate"`
	CheckOutDate  string        `json:"checkOutDate"`
	TotalAmount   float64       `json:"totalAmount"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Status        string        `json:"status"`
}

// CheckoutSession is the hosted-checkout handle returned on the card path.
type CheckoutSession struct {
	ID  string `json:"sessionId"`
	URL string `json:"url"`
}

// CreateResult is the collaborator's answer to create-booking: exactly one
// of Booking (cash, confirmed server-side) or Session (card, payment still
// pending) is set.
type CreateResult struct {
	Booking *Record
	Session *CheckoutSession
}

// Collaborator is the external booking service as the orchestrator sees
// it.
type Collaborator interface {
	CreateBooking(ctx context.Context, req CreateRequest) (*CreateResult, error)
}

// PaymentRedirector hands a checkout session to the hosted payment page
// and returns the URL the user must be sent to. It is invoked at most once
// per submission.
type PaymentRedirector interface {
	Redirect(ctx context.Context, session CheckoutSession) (string, error)
}
