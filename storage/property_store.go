package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
	"github.com/sheharyarIshfaq/rest-hunt-backend/services"
)

type propertyStore struct {
	db *gorm.DB
}

func (s *propertyStore) GetProperty(ctx context.Context, id uint) (*models.Property, error) {
	var property models.Property
	if err := s.db.WithContext(ctx).Preload("Rooms").First(&property, id).Error; err != nil {
		return nil, translate(err, "property")
	}
	return &property, nil
}

func (s *propertyStore) GetRoom(ctx context.Context, propertyID, roomID uint) (*models.Room, error) {
	var room models.Room
	err := s.db.WithContext(ctx).
		Where("id = ? AND property_id = ?", roomID, propertyID).
		First(&room).Error
	if err != nil {
		return nil, translate(err, "room")
	}
	return &room, nil
}

// ReserveRoom takes one unit with a single conditional UPDATE. Zero rows
// affected means the room was already fully booked.
func (s *propertyStore) ReserveRoom(ctx context.Context, roomID uint) error {
	res := s.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ? AND available_rooms > 0", roomID).
		UpdateColumn("available_rooms", gorm.Expr("available_rooms - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrNoVacancy
	}
	return nil
}

// ReleaseRoom gives one unit back. A room deleted since the booking was made
// matches no row; there is no inventory left to restore, so that is not an
// error and the caller's reject or delete still goes through.
func (s *propertyStore) ReleaseRoom(ctx context.Context, roomID uint) error {
	return s.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", roomID).
		UpdateColumn("available_rooms", gorm.Expr("available_rooms + 1")).Error
}
