package storage

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sheharyarIshfaq/rest-hunt-backend/config"
	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
)

// Open connects to Postgres, runs migrations and seeds the admin account.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := performMigrations(db); err != nil {
		return nil, err
	}

	if err := seedAdmin(db, cfg); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to database")
	return db, nil
}

func performMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Room{},
		&models.Booking{},
		&models.Earning{},
		&models.Withdrawal{},
		&models.Favourite{},
		&models.RecentlyViewed{},
		&models.Review{},
		&models.Chat{},
		&models.Message{},
	)
}

// seedAdmin creates the admin account on first boot when credentials are
// configured.
func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var admin models.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin = models.User{
		FirstName: "Admin",
		Email:     cfg.AdminEmail,
		Password:  string(hashed),
		Role:      models.RoleAdmin,
	}
	return db.Create(&admin).Error
}
