package services

import (
	"context"
	"time"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
)

// Store interfaces the services run against. storage implements them on GORM,
// storage/memory implements them in memory for tests.

type UserStore interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

type PropertyStore interface {
	GetProperty(ctx context.Context, id uint) (*models.Property, error)
	// GetRoom resolves a room by its sub-id within the given property.
	GetRoom(ctx context.Context, propertyID, roomID uint) (*models.Room, error)
	// ReserveRoom decrements the room's available count by one, but only when
	// the count is still positive. Returns ErrNoVacancy otherwise. The check
	// and the decrement are a single conditional write, never read-then-write.
	ReserveRoom(ctx context.Context, roomID uint) error
	// ReleaseRoom gives one unit back. Releasing a room that has been deleted
	// since the reservation is a no-op, not an error.
	ReleaseRoom(ctx context.Context, roomID uint) error
}

type BookingStore interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	ListBookingsByUser(ctx context.Context, userID uint) ([]models.Booking, error)
	SaveBooking(ctx context.Context, booking *models.Booking) error
	DeleteBooking(ctx context.Context, id uint) error
}

type EarningStore interface {
	CreateEarning(ctx context.Context, earning *models.Earning) error
	DeleteEarningByBooking(ctx context.Context, bookingID uint) error
	ListEarningsByUser(ctx context.Context, userID uint) ([]models.Earning, error)
	// SumEarningsByUser totals the user's earnings, restricted to approved
	// ones when approvedOnly is set.
	SumEarningsByUser(ctx context.Context, userID uint, approvedOnly bool) (float64, error)
	// PromotePendingBefore flips every pending earning created at or before
	// cutoff to approved and reports how many rows changed.
	PromotePendingBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type WithdrawalStore interface {
	CreateWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error
	GetWithdrawal(ctx context.Context, id uint) (*models.Withdrawal, error)
	ListWithdrawalsByUser(ctx context.Context, userID uint) ([]models.Withdrawal, error)
	ListWithdrawals(ctx context.Context) ([]models.Withdrawal, error)
	SaveWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error
	// SumNonRejectedByUser totals the user's pending plus approved withdrawals.
	SumNonRejectedByUser(ctx context.Context, userID uint) (float64, error)
}

// Stores bundles every store a service may touch.
type Stores struct {
	Users       UserStore
	Properties  PropertyStore
	Bookings    BookingStore
	Earnings    EarningStore
	Withdrawals WithdrawalStore
}

// TxRunner runs fn against transaction-scoped stores. The multi-record booking
// and withdrawal updates go through it so the writes land or fail together.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(Stores) error) error
}
