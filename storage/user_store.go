package storage

import (
	"context"

	"gorm.io/gorm"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
)

type userStore struct {
	db *gorm.DB
}

func (s *userStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}
