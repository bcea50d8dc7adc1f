package storage

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
)

type earningStore struct {
	db *gorm.DB
}

func (s *earningStore) CreateEarning(ctx context.Context, earning *models.Earning) error {
	return s.db.WithContext(ctx).Create(earning).Error
}

func (s *earningStore) DeleteEarningByBooking(ctx context.Context, bookingID uint) error {
	return s.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Delete(&models.Earning{}).Error
}

func (s *earningStore) ListEarningsByUser(ctx context.Context, userID uint) ([]models.Earning, error) {
	var earnings []models.Earning
	err := s.db.WithContext(ctx).
		Preload("Booking").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&earnings).Error
	return earnings, err
}

func (s *earningStore) SumEarningsByUser(ctx context.Context, userID uint, approvedOnly bool) (float64, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Earning{}).
		Where("user_id = ?", userID)
	if approvedOnly {
		query = query.Where("status = ?", models.EarningStatusApproved)
	}

	var total float64
	err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

func (s *earningStore) PromotePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Model(&models.Earning{}).
		Where("status = ? AND created_at <= ?", models.EarningStatusPending, cutoff).
		Update("status", models.EarningStatusApproved)
	return res.RowsAffected, res.Error
}
