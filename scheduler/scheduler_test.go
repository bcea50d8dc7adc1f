package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
	"github.com/sheharyarIshfaq/rest-hunt-backend/services"
	"github.com/sheharyarIshfaq/rest-hunt-backend/storage/memory"
)

func TestNewRejectsInvalidSpec(t *testing.T) {
	store := memory.New()
	earnings := services.NewEarningService(store.Stores())

	_, err := New(earnings, "not a cron spec")
	assert.Error(t, err)

	s, err := New(earnings, "0 3 * * *")
	require.NoError(t, err)
	s.Start()
	s.Stop()
}

func TestSweepJobPromotesMatureEarnings(t *testing.T) {
	store := memory.New()
	owner := store.SeedUser(models.User{Email: "owner@resthunt.pk", Role: models.RolePropertyOwner})
	earning := store.SeedEarning(models.Earning{
		UserID: owner.ID, Amount: 15000, BookingID: 1,
		Status: models.EarningStatusPending,
		Model:  gorm.Model{CreatedAt: time.Now().Add(-11 * 24 * time.Hour)},
	})

	s, err := New(services.NewEarningService(store.Stores()), "0 3 * * *")
	require.NoError(t, err)

	s.runEarningsSweep()

	got, ok := store.EarningByID(earning.ID)
	require.True(t, ok)
	assert.Equal(t, models.EarningStatusApproved, got.Status)
}
