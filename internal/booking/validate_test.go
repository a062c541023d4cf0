package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGuest() Guest {
	return Guest{
		Name:     "Alice Traveler",
		Age:      "30",
		Gender:   "Female",
		IDType:   "Passport",
		IDNumber: "P1234567",
	}
}

func validDraft() *Draft {
	return &Draft{
		ListingID:     "listing-1",
		NumberOfRooms: RoomSelection{Single: 1, Double: 1},
		CheckInDate:   date(2024, time.January, 1),
		CheckOutDate:  date(2024, time.January, 4),
		Guests:        []Guest{validGuest()},
		PaymentMethod: PaymentCash,
	}
}

func TestValidate_CleanDraft(t *testing.T) {
	errs := Validate(validDraft(), testListing())

	assert.True(t, errs.Empty(), "expected no errors, got %v", errs)
}

func TestValidate_DatesRequired(t *testing.T) {
	d := validDraft()
	d.CheckInDate = nil
	d.CheckOutDate = nil

	errs := Validate(d, testListing())

	assert.Equal(t, "Check-in date is required", errs["checkInDate"])
	assert.Equal(t, "Check-out date is required", errs["checkOutDate"])
}

func TestValidate_CheckOutMustFollowCheckIn(t *testing.T) {
	d := validDraft()
	d.CheckInDate = date(2024, time.January, 5)
	d.CheckOutDate = date(2024, time.January, 3)

	errs := Validate(d, testListing())

	assert.Equal(t, "Check-out date must be after check-in date", errs["checkOutDate"])
	assert.NotContains(t, errs, "checkInDate")
}

func TestValidate_SameDayRejected(t *testing.T) {
	d := validDraft()
	d.CheckInDate = date(2024, time.January, 3)
	d.CheckOutDate = date(2024, time.January, 3)

	errs := Validate(d, testListing())

	assert.Equal(t, "Check-out date must be after check-in date", errs["checkOutDate"])
}

func TestValidate_AtLeastOneRoom(t *testing.T) {
	d := validDraft()
	d.NumberOfRooms = RoomSelection{}

	errs := Validate(d, testListing())

	assert.Equal(t, "At least one room must be selected", errs["rooms"])
}

func TestValidate_OverAvailability(t *testing.T) {
	d := validDraft()
	d.NumberOfRooms = RoomSelection{Single: 3, Double: 2}

	errs := Validate(d, testListing())

	assert.Equal(t, "Only 2 single rooms available", errs["singleRooms"])
	assert.Equal(t, "Only 1 double rooms available", errs["doubleRooms"])
}

func TestValidate_GuestName(t *testing.T) {
	d := validDraft()
	d.Guests[0].Name = "  "

	errs := Validate(d, testListing())
	assert.Equal(t, "Name is required", errs["guest0name"])

	d.Guests[0].Name = "A"
	errs = Validate(d, testListing())
	assert.Equal(t, "Name must be at least 2 characters", errs["guest0name"])
}

func TestValidate_GuestAge(t *testing.T) {
	cases := []struct {
		age  string
		want string
	}{
		{"", "Age is required"},
		{"abc", "Age must be a positive number"},
		{"0", "Age must be a positive number"},
		{"-4", "Age must be a positive number"},
		{"150", "Age must be between 1-120"},
		{"121", "Age must be between 1-120"},
	}

	for _, tc := range cases {
		d := validDraft()
		d.Guests[0].Age = tc.age

		errs := Validate(d, testListing())

		assert.Equal(t, tc.want, errs["guest0age"], "age %q", tc.age)
	}
}

func TestValidate_GuestEnums(t *testing.T) {
	d := validDraft()
	d.Guests[0].Gender = ""
	d.Guests[0].IDType = ""

	errs := Validate(d, testListing())
	assert.Equal(t, "Gender is required", errs["guest0gender"])
	assert.Equal(t, "ID Type is required", errs["guest0idType"])

	d.Guests[0].Gender = "Unknown"
	d.Guests[0].IDType = "Library Card"
	errs = Validate(d, testListing())
	assert.Equal(t, "Invalid gender", errs["guest0gender"])
	assert.Equal(t, "Invalid ID type", errs["guest0idType"])
}

func TestValidate_GuestIDNumber(t *testing.T) {
	d := validDraft()
	d.Guests[0].IDNumber = ""

	errs := Validate(d, testListing())
	assert.Equal(t, "ID Number is required", errs["guest0idNumber"])

	d.Guests[0].IDNumber = "X"
	errs = Validate(d, testListing())
	assert.Equal(t, "ID number must be at least 2 characters", errs["guest0idNumber"])
}

// All failing rules are reported together, across guests, each under its
// own key.
func TestValidate_CollectsEverything(t *testing.T) {
	d := validDraft()
	d.CheckOutDate = nil
	d.NumberOfRooms = RoomSelection{Single: 3}
	d.Guests = []Guest{
		{Name: "B", Age: "150", Gender: "Female", IDType: "Passport", IDNumber: "AB123"},
		{},
	}

	errs := Validate(d, testListing())

	require.NotEmpty(t, errs)
	assert.Contains(t, errs, "checkOutDate")
	assert.Contains(t, errs, "singleRooms")
	assert.Contains(t, errs, "guest0name")
	assert.Contains(t, errs, "guest0age")
	assert.Contains(t, errs, "guest1name")
	assert.Contains(t, errs, "guest1age")
	assert.Contains(t, errs, "guest1gender")
	assert.Contains(t, errs, "guest1idType")
	assert.Contains(t, errs, "guest1idNumber")
	assert.NotContains(t, errs, "guest0gender")
	assert.NotContains(t, errs, "guest0idNumber")
}

// The form never tied guest count to room capacity; five guests on one
// room is accepted.
func TestValidate_GuestCountUnconstrained(t *testing.T) {
	d := validDraft()
	d.NumberOfRooms = RoomSelection{Single: 1}
	d.Guests = []Guest{validGuest(), validGuest(), validGuest(), validGuest(), validGuest()}

	errs := Validate(d, testListing())

	assert.True(t, errs.Empty(), "expected no errors, got %v", errs)
}
