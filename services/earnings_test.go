package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
	"github.com/sheharyarIshfaq/rest-hunt-backend/services"
	"github.com/sheharyarIshfaq/rest-hunt-backend/storage/memory"
)

func TestSweepPromotesOnlyMaturePendingEarnings(t *testing.T) {
	store := memory.New()
	owner := store.SeedUser(models.User{Email: "owner@resthunt.pk", Role: models.RolePropertyOwner})

	now := time.Now()
	mature := store.SeedEarning(models.Earning{
		UserID: owner.ID, Amount: 15000, BookingID: 1,
		Status: models.EarningStatusPending,
		Model:  gormModelAt(now.Add(-11 * 24 * time.Hour)),
	})
	young := store.SeedEarning(models.Earning{
		UserID: owner.ID, Amount: 12000, BookingID: 2,
		Status: models.EarningStatusPending,
		Model:  gormModelAt(now.Add(-9 * 24 * time.Hour)),
	})
	rejected := store.SeedEarning(models.Earning{
		UserID: owner.ID, Amount: 9000, BookingID: 3,
		Status: models.EarningStatusRejected,
		Model:  gormModelAt(now.Add(-30 * 24 * time.Hour)),
	})

	earnings := services.NewEarningService(store.Stores())

	promoted, err := earnings.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), promoted)

	got, _ := store.EarningByID(mature.ID)
	assert.Equal(t, models.EarningStatusApproved, got.Status)

	got, _ = store.EarningByID(young.ID)
	assert.Equal(t, models.EarningStatusPending, got.Status, "earnings inside the approval delay stay pending")

	got, _ = store.EarningByID(rejected.ID)
	assert.Equal(t, models.EarningStatusRejected, got.Status, "the sweep only touches pending earnings")
}

func TestSweepIsIdempotent(t *testing.T) {
	store := memory.New()
	owner := store.SeedUser(models.User{Email: "owner@resthunt.pk", Role: models.RolePropertyOwner})
	store.SeedEarning(models.Earning{
		UserID: owner.ID, Amount: 15000, BookingID: 1,
		Status: models.EarningStatusPending,
		Model:  gormModelAt(time.Now().Add(-15 * 24 * time.Hour)),
	})

	earnings := services.NewEarningService(store.Stores())

	promoted, err := earnings.Sweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), promoted)

	promoted, err = earnings.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), promoted)
}

func TestListEarningsByUser(t *testing.T) {
	store := memory.New()
	owner := store.SeedUser(models.User{Email: "owner@resthunt.pk", Role: models.RolePropertyOwner})
	other := store.SeedUser(models.User{Email: "other@resthunt.pk", Role: models.RolePropertyOwner})
	store.SeedEarning(models.Earning{UserID: owner.ID, Amount: 15000, BookingID: 1, Status: models.EarningStatusPending})
	store.SeedEarning(models.Earning{UserID: other.ID, Amount: 8000, BookingID: 2, Status: models.EarningStatusPending})

	earnings := services.NewEarningService(store.Stores())

	list, err := earnings.ListByUser(context.Background(), owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, float64(15000), list[0].Amount)

	_, err = earnings.ListByUser(context.Background(), 9999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func gormModelAt(createdAt time.Time) gorm.Model {
	return gorm.Model{CreatedAt: createdAt}
}
