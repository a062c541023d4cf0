package booking

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"roamingg/internal/listing"
)

type collaboratorMock struct {
	mock.Mock
}

func (m *collaboratorMock) CreateBooking(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*CreateResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type redirectorMock struct {
	mock.Mock
}

func (m *redirectorMock) Redirect(ctx context.Context, session CheckoutSession) (string, error) {
	args := m.Called(ctx, session)
	return args.String(0), args.Error(1)
}

// blockingCollaborator parks CreateBooking until released, for exercising
// the in-flight latch and the torn-down-session guard.
type blockingCollaborator struct {
	started chan struct{}
	release chan struct{}
	result  *CreateResult
}

func newBlockingCollaborator(result *CreateResult) *blockingCollaborator {
	return &blockingCollaborator{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		result:  result,
	}
}

func (b *blockingCollaborator) CreateBooking(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	b.started <- struct{}{}
	<-b.release
	return b.result, nil
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// testListing mirrors the listing of the reference walkthrough: two
// singles at 100 and one double at 150 a night.
func testListing() *listing.Listing {
	return &listing.Listing{
		ID:          "listing-1",
		Title:       "Seaside Villa",
		Description: "Two minutes from the beach",
		PricePerNight: listing.RoomPrices{
			Single: 100,
			Double: 150,
		},
		AvailableRooms: listing.RoomCounts{
			Single: 2,
			Double: 1,
		},
		IsActive: true,
	}
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// fillValidDraft drives the controller into a state that passes every
// validation rule: one single, one double, three nights, one complete
// guest row.
func fillValidDraft(c *Controller) {
	c.SetRoomCount(RoomTypeSingle, 1)
	c.SetRoomCount(RoomTypeDouble, 1)
	c.SetDates(date(2024, time.January, 1), date(2024, time.January, 4))
	c.SetGuestField(0, "name", "Alice Traveler")
	c.SetGuestField(0, "age", "30")
	c.SetGuestField(0, "gender", "Female")
	c.SetGuestField(0, "idType", "Passport")
	c.SetGuestField(0, "idNumber", "P1234567")
}
