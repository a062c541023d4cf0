package listing

// RoomCounts holds per-room-type counts. JSON keys match the listing
// service's payloads ("Single"/"Double", capitalized).
type RoomCounts struct {
	Single int `json:"Single"`
	Double int `json:"Double"`
}

// RoomPrices holds the advertised nightly price per room type.
type RoomPrices struct {
	Single float64 `json:"Single"`
	Double float64 `json:"Double"`
}

// Listing is the snapshot of a bookable property as served by the listing
// service. A booking session fetches it once and treats it as immutable
// until the session ends; availableRooms is only an advisory bound, the
// server re-validates at submit time.
type Listing struct {
	ID             string     `json:"_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	PricePerNight  RoomPrices `json:"pricePerNight"`
	AvailableRooms RoomCounts `json:"availableRooms"`
	IsActive       bool       `json:"isActive"`
}

// AvailabilityRequest is the body of the advisory availability check.
type AvailabilityRequest struct {
	CheckInDate   string     `json:"checkInDate"`
	CheckOutDate  string     `json:"checkOutDate"`
	NumberOfRooms RoomCounts `json:"numberOfRooms"`
}

// AvailabilityResult reports whether the requested rooms are still free
// for the requested dates, with an optional human-readable reason.
type AvailabilityResult struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}
