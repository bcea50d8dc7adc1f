package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
	"github.com/sheharyarIshfaq/rest-hunt-backend/services"
	"github.com/sheharyarIshfaq/rest-hunt-backend/storage/memory"
)

type bookingFixture struct {
	store    *memory.Store
	bookings *services.BookingService
	tenant   models.User
	owner    models.User
	property models.Property
	room     models.Room
}

func newBookingFixture(t *testing.T, availableRooms int) *bookingFixture {
	t.Helper()

	store := memory.New()
	owner := store.SeedUser(models.User{
		FirstName: "Owais", LastName: "Khan",
		Email: "owner@resthunt.pk", Role: models.RolePropertyOwner,
	})
	tenant := store.SeedUser(models.User{
		FirstName: "Sara", LastName: "Ahmed",
		Email: "tenant@resthunt.pk", Role: models.RoleUser,
	})
	property := store.SeedProperty(models.Property{
		Name:    "Gulberg Boys Hostel",
		OwnerID: owner.ID,
		Status:  models.PropertyStatusActive,
		Rooms: []models.Room{
			{Category: "Private", AvailableRooms: availableRooms, RentAmount: 15000},
		},
	})

	return &bookingFixture{
		store:    store,
		bookings: services.NewBookingService(store.Stores(), store),
		tenant:   tenant,
		owner:    owner,
		property: property,
		room:     property.Rooms[0],
	}
}

func (f *bookingFixture) createInput() services.CreateBookingInput {
	return services.CreateBookingInput{
		UserID:     f.tenant.ID,
		PropertyID: f.property.ID,
		RoomID:     f.room.ID,
		MoveIn:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		MoveOut:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		Total:      15000,
		Provider:   models.PaymentProviderStripe,
		PaymentID:  "pi_test_123",
	}
}

func TestCreateBookingReservesRoomAndCreatesEarning(t *testing.T) {
	f := newBookingFixture(t, 2)

	booking, err := f.bookings.Create(context.Background(), f.createInput())
	require.NoError(t, err)
	require.NotNil(t, booking)

	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, 1, f.store.RoomAvailability(f.room.ID))

	earning, ok := f.store.EarningByBooking(booking.ID)
	require.True(t, ok, "a booking must create exactly one earning")
	assert.Equal(t, f.owner.ID, earning.UserID, "earning belongs to the property owner")
	assert.Equal(t, booking.Total, earning.Amount)
	assert.Equal(t, models.EarningStatusPending, earning.Status)
}

func TestCreateBookingRejectsInvertedStayDates(t *testing.T) {
	f := newBookingFixture(t, 2)

	input := f.createInput()
	input.MoveIn, input.MoveOut = input.MoveOut, input.MoveIn

	_, err := f.bookings.Create(context.Background(), input)
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Equal(t, 2, f.store.RoomAvailability(f.room.ID))
}

func TestCreateBookingFailsWhenNoVacancy(t *testing.T) {
	f := newBookingFixture(t, 1)

	_, err := f.bookings.Create(context.Background(), f.createInput())
	require.NoError(t, err)
	require.Equal(t, 0, f.store.RoomAvailability(f.room.ID))

	_, err = f.bookings.Create(context.Background(), f.createInput())
	assert.ErrorIs(t, err, services.ErrNoVacancy)
	assert.ErrorIs(t, err, services.ErrConflict)
	assert.Equal(t, 0, f.store.RoomAvailability(f.room.ID))
}

func TestCreateBookingUnknownReferences(t *testing.T) {
	f := newBookingFixture(t, 1)

	input := f.createInput()
	input.UserID = 9999
	_, err := f.bookings.Create(context.Background(), input)
	assert.ErrorIs(t, err, services.ErrNotFound)

	input = f.createInput()
	input.PropertyID = 9999
	_, err = f.bookings.Create(context.Background(), input)
	assert.ErrorIs(t, err, services.ErrNotFound)

	input = f.createInput()
	input.RoomID = 9999
	_, err = f.bookings.Create(context.Background(), input)
	assert.ErrorIs(t, err, services.ErrNotFound)

	assert.Equal(t, 1, f.store.RoomAvailability(f.room.ID), "failed creates must not consume inventory")
}

func TestRejectBookingReleasesRoomAndRemovesEarning(t *testing.T) {
	f := newBookingFixture(t, 2)

	booking, err := f.bookings.Create(context.Background(), f.createInput())
	require.NoError(t, err)
	require.Equal(t, 1, f.store.RoomAvailability(f.room.ID))

	updated, err := f.bookings.UpdateStatus(context.Background(), booking.ID, models.BookingStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, updated.Status)
	assert.Equal(t, 2, f.store.RoomAvailability(f.room.ID))

	_, ok := f.store.EarningByBooking(booking.ID)
	assert.False(t, ok, "rejection removes the owner's earning")
}

func TestRejectBookingTwiceRestoresOnce(t *testing.T) {
	f := newBookingFixture(t, 2)

	booking, err := f.bookings.Create(context.Background(), f.createInput())
	require.NoError(t, err)

	_, err = f.bookings.UpdateStatus(context.Background(), booking.ID, models.BookingStatusRejected)
	require.NoError(t, err)
	_, err = f.bookings.UpdateStatus(context.Background(), booking.ID, models.BookingStatusRejected)
	require.NoError(t, err)

	assert.Equal(t, 2, f.store.RoomAvailability(f.room.ID), "a second reject must not release the room again")
}

func TestUpdateBookingStatusValidation(t *testing.T) {
	f := newBookingFixture(t, 2)

	booking, err := f.bookings.Create(context.Background(), f.createInput())
	require.NoError(t, err)

	_, err = f.bookings.UpdateStatus(context.Background(), booking.ID, "cancelled")
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = f.bookings.UpdateStatus(context.Background(), 9999, models.BookingStatusApproved)
	assert.ErrorIs(t, err, services.ErrNotFound)

	updated, err := f.bookings.UpdateStatus(context.Background(), booking.ID, models.BookingStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, updated.Status)
	assert.Equal(t, 1, f.store.RoomAvailability(f.room.ID), "approval keeps the unit reserved")
}

func TestDeleteBookingReleasesRoomAndRemovesEarning(t *testing.T) {
	f := newBookingFixture(t, 2)

	booking, err := f.bookings.Create(context.Background(), f.createInput())
	require.NoError(t, err)

	require.NoError(t, f.bookings.Delete(context.Background(), booking.ID))

	assert.Equal(t, 2, f.store.RoomAvailability(f.room.ID))
	_, ok := f.store.EarningByBooking(booking.ID)
	assert.False(t, ok)
	_, err = f.bookings.Get(context.Background(), booking.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteRejectedBookingDoesNotReleaseAgain(t *testing.T) {
	f := newBookingFixture(t, 2)

	booking, err := f.bookings.Create(context.Background(), f.createInput())
	require.NoError(t, err)

	_, err = f.bookings.UpdateStatus(context.Background(), booking.ID, models.BookingStatusRejected)
	require.NoError(t, err)
	require.Equal(t, 2, f.store.RoomAvailability(f.room.ID))

	require.NoError(t, f.bookings.Delete(context.Background(), booking.ID))

	assert.Equal(t, 2, f.store.RoomAvailability(f.room.ID), "the unit came back at rejection time already")
}

// Two tenants racing for the last unit: exactly one booking may win.
func TestConcurrentBookingsNeverOversell(t *testing.T) {
	f := newBookingFixture(t, 1)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.bookings.Create(context.Background(), f.createInput())
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range results {
		if err == nil {
			wins++
		} else if assert.ErrorIs(t, err, services.ErrNoVacancy) {
			losses++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, losses)
	assert.Equal(t, 0, f.store.RoomAvailability(f.room.ID))
}

// Full lifecycle over a two-unit room: book, book, reject one, delete the
// other; availability must land back at two with no earnings left.
func TestBookingLifecycleRestoresInventory(t *testing.T) {
	f := newBookingFixture(t, 2)

	first, err := f.bookings.Create(context.Background(), f.createInput())
	require.NoError(t, err)
	second, err := f.bookings.Create(context.Background(), f.createInput())
	require.NoError(t, err)
	require.Equal(t, 0, f.store.RoomAvailability(f.room.ID))

	_, err = f.bookings.UpdateStatus(context.Background(), first.ID, models.BookingStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.RoomAvailability(f.room.ID))

	require.NoError(t, f.bookings.Delete(context.Background(), second.ID))
	assert.Equal(t, 2, f.store.RoomAvailability(f.room.ID))

	_, ok := f.store.EarningByBooking(first.ID)
	assert.False(t, ok)
	_, ok = f.store.EarningByBooking(second.ID)
	assert.False(t, ok)
}

// A room removed after booking leaves nothing to restore, but the booking must
// still be rejectable and deletable.
func TestRejectAndDeleteSurviveRemovedRoom(t *testing.T) {
	f := newBookingFixture(t, 2)

	first, err := f.bookings.Create(context.Background(), f.createInput())
	require.NoError(t, err)
	second, err := f.bookings.Create(context.Background(), f.createInput())
	require.NoError(t, err)

	f.store.RemoveRoom(f.room.ID)

	updated, err := f.bookings.UpdateStatus(context.Background(), first.ID, models.BookingStatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, updated.Status)
	_, ok := f.store.EarningByBooking(first.ID)
	assert.False(t, ok)

	require.NoError(t, f.bookings.Delete(context.Background(), second.ID))
	_, err = f.bookings.Get(context.Background(), second.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestListBookingsByUser(t *testing.T) {
	f := newBookingFixture(t, 2)

	_, err := f.bookings.Create(context.Background(), f.createInput())
	require.NoError(t, err)
	_, err = f.bookings.Create(context.Background(), f.createInput())
	require.NoError(t, err)

	bookings, err := f.bookings.ListByUser(context.Background(), f.tenant.ID)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)

	_, err = f.bookings.ListByUser(context.Background(), 9999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
