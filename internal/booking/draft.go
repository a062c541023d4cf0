package booking

import "time"

type RoomType string

const (
	RoomTypeSingle RoomType = "Single"
	RoomTypeDouble RoomType = "Double"
)

func (t RoomType) Valid() bool {
	return t == RoomTypeSingle || t == RoomTypeDouble
}

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "Card"
	PaymentCash PaymentMethod = "Cash"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentCash
}

var genders = map[string]bool{
	"Male":   true,
	"Female": true,
	"Other":  true,
}

var idTypes = map[string]bool{
	"Passport":       true,
	"Driver License": true,
	"National ID":    true,
	"Other":          true,
}

// RoomSelection counts the requested rooms per type. JSON keys match the
// booking service's wire format.
type RoomSelection struct {
	Single int `json:"Single"`
	Double int `json:"Double"`
}

func (s RoomSelection) Total() int {
	return s.Single + s.Double
}

// Guest is one guest row on the form. Age stays free-form text until
// submit, where it is validated and coerced to a number for transmission.
type Guest struct {
	Name     string `json:"name"`
	Age      string `json:"age"`
	Gender   string `json:"gender"`
	IDType   string `json:"idType"`
	IDNumber string `json:"idNumber"`
}

// Draft is the in-progress reservation. It lives only for the duration of
// one booking session and is mutated exclusively through the Controller.
type Draft struct {
	ListingID     string        `json:"listingId"`
	NumberOfRooms RoomSelection `json:"numberOfRooms"`
	CheckInDate   *time.Time    `json:"checkInDate"`
	CheckOutDate  *time.Time    `json:"checkOutDate"`
	Guests        []Guest       `json:"guests"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// NewDraft returns the form's initial state: no rooms, no dates, a single
// blank guest row and card payment preselected.
func NewDraft(listingID string) *Draft {
	return &Draft{
		ListingID:     listingID,
		Guests:        []Guest{{}},
		PaymentMethod: PaymentCard,
	}
}
