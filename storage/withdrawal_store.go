package storage

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
)

type withdrawalStore struct {
	db *gorm.DB
}

func (s *withdrawalStore) CreateWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error {
	return s.db.WithContext(ctx).Create(withdrawal).Error
}

func (s *withdrawalStore) GetWithdrawal(ctx context.Context, id uint) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal
	if err := s.db.WithContext(ctx).First(&withdrawal, id).Error; err != nil {
		return nil, translate(err, "withdrawal")
	}
	return &withdrawal, nil
}

func (s *withdrawalStore) ListWithdrawalsByUser(ctx context.Context, userID uint) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&withdrawals).Error
	return withdrawals, err
}

func (s *withdrawalStore) ListWithdrawals(ctx context.Context) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	err := s.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&withdrawals).Error
	return withdrawals, err
}

func (s *withdrawalStore) SaveWithdrawal(ctx context.Context, withdrawal *models.Withdrawal) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(withdrawal).Error
}

func (s *withdrawalStore) SumNonRejectedByUser(ctx context.Context, userID uint) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).
		Model(&models.Withdrawal{}).
		Where("user_id = ? AND status <> ?", userID, models.WithdrawalStatusRejected).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
