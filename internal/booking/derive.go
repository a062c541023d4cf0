package booking

import (
	"math"
	"time"

	"roamingg/internal/listing"
)

// Summary is the derived view shown next to the form: how many nights the
// stay covers and what it costs. It is recomputed from the draft on every
// read, never stored.
type Summary struct {
	Nights      int     `json:"nights"`
	TotalAmount float64 `json:"totalAmount"`
}

// Nights returns the whole-day difference between check-in and check-out,
// rounded up, clamped to 0 when either date is missing or the range is
// inverted.
func Nights(checkIn, checkOut *time.Time) int {
	if checkIn == nil || checkOut == nil {
		return 0
	}
	n := int(math.Ceil(checkOut.Sub(*checkIn).Hours() / 24))
	if n < 0 {
		return 0
	}
	return n
}

// Derive computes the booking summary for a draft against the listing's
// advertised nightly prices: (singles*singlePrice + doubles*doublePrice)
// per night, zero when the stay spans no nights.
func Derive(d *Draft, l *listing.Listing) Summary {
	nights := Nights(d.CheckInDate, d.CheckOutDate)
	if nights == 0 {
		return Summary{}
	}

	total := (float64(d.NumberOfRooms.Single)*l.PricePerNight.Single +
		float64(d.NumberOfRooms.Double)*l.PricePerNight.Double) * float64(nights)

	return Summary{Nights: nights, TotalAmount: total}
}
