package storage

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
)

type bookingStore struct {
	db *gorm.DB
}

func (s *bookingStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return s.db.WithContext(ctx).Create(booking).Error
}

func (s *bookingStore) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Property").
		Preload("Room").
		First(&booking, id).Error
	if err != nil {
		return nil, translate(err, "booking")
	}
	return &booking, nil
}

func (s *bookingStore) ListBookingsByUser(ctx context.Context, userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Property").
		Preload("Room").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (s *bookingStore) SaveBooking(ctx context.Context, booking *models.Booking) error {
	// Preloaded associations stay read-only.
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(booking).Error
}

func (s *bookingStore) DeleteBooking(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}
