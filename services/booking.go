package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slices"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
)

var bookingStatuses = []string{
	models.BookingStatusPending,
	models.BookingStatusApproved,
	models.BookingStatusRejected,
}

// BookingService coordinates the booking lifecycle: room inventory moves down
// on create and back up on reject/delete, and the owner's earning record is
// created and removed in step. All multi-record updates run in one unit of
// work.
type BookingService struct {
	stores Stores
	tx     TxRunner
}

func NewBookingService(stores Stores, tx TxRunner) *BookingService {
	return &BookingService{stores: stores, tx: tx}
}

type CreateBookingInput struct {
	UserID     uint
	PropertyID uint
	RoomID     uint
	MoveIn     time.Time
	MoveOut    time.Time
	Total      float64
	Provider   string
	PaymentID  string
}

func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*models.Booking, error) {
	if !input.MoveOut.After(input.MoveIn) {
		return nil, validation("moveOut must be after moveIn")
	}

	if _, err := s.stores.Users.GetUser(ctx, input.UserID); err != nil {
		return nil, err
	}

	var booking *models.Booking
	err := s.tx.RunInTx(ctx, func(st Stores) error {
		property, err := st.Properties.GetProperty(ctx, input.PropertyID)
		if err != nil {
			return err
		}

		room, err := st.Properties.GetRoom(ctx, input.PropertyID, input.RoomID)
		if err != nil {
			return err
		}

		// Conditional decrement: fails with ErrNoVacancy when the count is
		// already zero, so two concurrent requests can never oversell the
		// last unit.
		if err := st.Properties.ReserveRoom(ctx, room.ID); err != nil {
			return err
		}

		booking = &models.Booking{
			UserID:     input.UserID,
			PropertyID: property.ID,
			RoomID:     room.ID,
			MoveIn:     input.MoveIn,
			MoveOut:    input.MoveOut,
			Status:     models.BookingStatusPending,
			Total:      input.Total,
			Provider:   input.Provider,
			PaymentID:  input.PaymentID,
		}
		if err := st.Bookings.CreateBooking(ctx, booking); err != nil {
			return err
		}

		earning := &models.Earning{
			UserID:      property.OwnerID,
			Amount:      input.Total,
			Provider:    input.Provider,
			BookingID:   booking.ID,
			Status:      models.EarningStatusPending,
			Description: fmt.Sprintf("Booking #%d for %s", booking.ID, property.Name),
		}
		return st.Earnings.CreateEarning(ctx, earning)
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// UpdateStatus persists the new status. Moving into rejected releases the
// room and removes the linked earning; both are gated on the booking not
// already being rejected, so a repeated reject cannot double-restore
// availability.
func (s *BookingService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Booking, error) {
	if !slices.Contains(bookingStatuses, status) {
		return nil, validation("status must be one of pending, approved, rejected")
	}

	var booking *models.Booking
	err := s.tx.RunInTx(ctx, func(st Stores) error {
		var err error
		booking, err = st.Bookings.GetBooking(ctx, id)
		if err != nil {
			return err
		}

		if status == models.BookingStatusRejected && booking.Status != models.BookingStatusRejected {
			if err := st.Properties.ReleaseRoom(ctx, booking.RoomID); err != nil {
				return err
			}
			if err := st.Earnings.DeleteEarningByBooking(ctx, booking.ID); err != nil {
				return err
			}
		}

		booking.Status = status
		return st.Bookings.SaveBooking(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// Delete removes the booking and its earning. The room is released unless the
// booking was already rejected, in which case the unit came back at rejection
// time.
func (s *BookingService) Delete(ctx context.Context, id uint) error {
	return s.tx.RunInTx(ctx, func(st Stores) error {
		booking, err := st.Bookings.GetBooking(ctx, id)
		if err != nil {
			return err
		}

		if booking.Status != models.BookingStatusRejected {
			if err := st.Properties.ReleaseRoom(ctx, booking.RoomID); err != nil {
				return err
			}
		}

		if err := st.Earnings.DeleteEarningByBooking(ctx, booking.ID); err != nil {
			return err
		}

		return st.Bookings.DeleteBooking(ctx, booking.ID)
	})
}

func (s *BookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	return s.stores.Bookings.GetBooking(ctx, id)
}

func (s *BookingService) ListByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	if _, err := s.stores.Users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.stores.Bookings.ListBookingsByUser(ctx, userID)
}
