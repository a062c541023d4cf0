package booking

import (
	"fmt"
	"strconv"
	"strings"

	"roamingg/internal/listing"
)

// ErrorSet maps a form field key to its message. Keys are stable so the
// caller can place each message next to the offending field: checkInDate,
// checkOutDate, rooms, singleRooms, doubleRooms and guest{i}{field}.
type ErrorSet map[string]string

func (e ErrorSet) Empty() bool {
	return len(e) == 0
}

// Validate runs every rule against the draft and collects all failures at
// once; nothing short-circuits, so the user sees every problem in one
// pass. The availableRooms bound is advisory — the booking service
// re-validates at submit time.
func Validate(d *Draft, l *listing.Listing) ErrorSet {
	errs := ErrorSet{}

	if d.CheckInDate == nil {
		errs["checkInDate"] = "Check-in date is required"
	}
	if d.CheckOutDate == nil {
		errs["checkOutDate"] = "Check-out date is required"
	}
	if d.CheckInDate != nil && d.CheckOutDate != nil && !d.CheckOutDate.After(*d.CheckInDate) {
		errs["checkOutDate"] = "Check-out date must be after check-in date"
	}

	if d.NumberOfRooms.Total() == 0 {
		errs["rooms"] = "At least one room must be selected"
	}
	if d.NumberOfRooms.Single > l.AvailableRooms.Single {
		errs["singleRooms"] = fmt.Sprintf("Only %d single rooms available", l.AvailableRooms.Single)
	}
	if d.NumberOfRooms.Double > l.AvailableRooms.Double {
		errs["doubleRooms"] = fmt.Sprintf("Only %d double rooms available", l.AvailableRooms.Double)
	}

	for i, guest := range d.Guests {
		validateGuest(errs, i, guest)
	}

	return errs
}

func validateGuest(errs ErrorSet, index int, g Guest) {
	key := func(field string) string {
		return fmt.Sprintf("guest%d%s", index, field)
	}

	name := strings.TrimSpace(g.Name)
	switch {
	case name == "":
		errs[key("name")] = "Name is required"
	case len(name) < 2:
		errs[key("name")] = "Name must be at least 2 characters"
	}

	age := strings.TrimSpace(g.Age)
	if age == "" {
		errs[key("age")] = "Age is required"
	} else if n, err := strconv.Atoi(age); err != nil || n <= 0 {
		errs[key("age")] = "Age must be a positive number"
	} else if n > 120 {
		errs[key("age")] = "Age must be between 1-120"
	}

	switch {
	case g.Gender == "":
		errs[key("gender")] = "Gender is required"
	case !genders[g.Gender]:
		errs[key("gender")] = "Invalid gender"
	}

	switch {
	case g.IDType == "":
		errs[key("idType")] = "ID Type is required"
	case !idTypes[g.IDType]:
		errs[key("idType")] = "Invalid ID type"
	}

	idNumber := strings.TrimSpace(g.IDNumber)
	switch {
	case idNumber == "":
		errs[key("idNumber")] = "ID Number is required"
	case len(idNumber) < 2:
		errs[key("idNumber")] = "ID number must be at least 2 characters"
	}
}
