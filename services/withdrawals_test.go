package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
	"github.com/sheharyarIshfaq/rest-hunt-backend/services"
	"github.com/sheharyarIshfaq/rest-hunt-backend/storage/memory"
)

func seedOwnerWithEarnings(store *memory.Store) models.User {
	owner := store.SeedUser(models.User{Email: "owner@resthunt.pk", Role: models.RolePropertyOwner})
	store.SeedEarning(models.Earning{UserID: owner.ID, Amount: 20000, BookingID: 1, Status: models.EarningStatusApproved})
	store.SeedEarning(models.Earning{UserID: owner.ID, Amount: 10000, BookingID: 2, Status: models.EarningStatusApproved})
	store.SeedEarning(models.Earning{UserID: owner.ID, Amount: 5000, BookingID: 3, Status: models.EarningStatusPending})
	return owner
}

func TestCreateWithdrawalValidation(t *testing.T) {
	store := memory.New()
	owner := seedOwnerWithEarnings(store)
	withdrawals := services.NewWithdrawalService(store.Stores(), store, services.BalanceSourceApproved)

	_, err := withdrawals.Create(context.Background(), owner.ID, 0, models.PayoutMethodBank, "PK36SCBL0000001123456702")
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = withdrawals.Create(context.Background(), owner.ID, 1000, "paypal", "someone@example.com")
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = withdrawals.Create(context.Background(), owner.ID, 1000, models.PayoutMethodBank, "")
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = withdrawals.Create(context.Background(), 9999, 1000, models.PayoutMethodBank, "PK36SCBL0000001123456702")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCreateWithdrawalWithinApprovedBalance(t *testing.T) {
	store := memory.New()
	owner := seedOwnerWithEarnings(store)
	withdrawals := services.NewWithdrawalService(store.Stores(), store, services.BalanceSourceApproved)

	// Approved earnings total 30000; the pending 5000 must not count.
	withdrawal, err := withdrawals.Create(context.Background(), owner.ID, 30000, models.PayoutMethodEasypaisa, "03001234567")
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusPending, withdrawal.Status)

	_, err = withdrawals.Create(context.Background(), owner.ID, 1, models.PayoutMethodEasypaisa, "03001234567")
	assert.ErrorIs(t, err, services.ErrInsufficientEarnings)
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestCreateWithdrawalAllSourceCountsPendingEarnings(t *testing.T) {
	store := memory.New()
	owner := seedOwnerWithEarnings(store)
	withdrawals := services.NewWithdrawalService(store.Stores(), store, services.BalanceSourceAll)

	// With the "all" source the pending 5000 counts too.
	withdrawal, err := withdrawals.Create(context.Background(), owner.ID, 35000, models.PayoutMethodJazzcash, "03007654321")
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusPending, withdrawal.Status)
}

func TestWithdrawalBalanceIgnoresRejectedRequests(t *testing.T) {
	store := memory.New()
	owner := seedOwnerWithEarnings(store)
	store.SeedWithdrawal(models.Withdrawal{UserID: owner.ID, Amount: 10000, Status: models.WithdrawalStatusApproved})
	store.SeedWithdrawal(models.Withdrawal{UserID: owner.ID, Amount: 10000, Status: models.WithdrawalStatusPending})
	store.SeedWithdrawal(models.Withdrawal{UserID: owner.ID, Amount: 10000, Status: models.WithdrawalStatusRejected})

	withdrawals := services.NewWithdrawalService(store.Stores(), store, services.BalanceSourceApproved)

	// 30000 approved earnings minus 20000 non-rejected withdrawals.
	balance, err := withdrawals.Balance(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(10000), balance)

	_, err = withdrawals.Create(context.Background(), owner.ID, 10000, models.PayoutMethodBank, "PK36SCBL0000001123456702")
	require.NoError(t, err)

	_, err = withdrawals.Create(context.Background(), owner.ID, 1, models.PayoutMethodBank, "PK36SCBL0000001123456702")
	assert.ErrorIs(t, err, services.ErrInsufficientEarnings)
}

func TestApproveWithdrawal(t *testing.T) {
	store := memory.New()
	owner := seedOwnerWithEarnings(store)
	withdrawals := services.NewWithdrawalService(store.Stores(), store, services.BalanceSourceApproved)

	withdrawal, err := withdrawals.Create(context.Background(), owner.ID, 20000, models.PayoutMethodBank, "PK36SCBL0000001123456702")
	require.NoError(t, err)

	approved, err := withdrawals.Approve(context.Background(), withdrawal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusApproved, approved.Status)

	// Approving again is a no-op, not a failure.
	approved, err = withdrawals.Approve(context.Background(), withdrawal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusApproved, approved.Status)

	_, err = withdrawals.Approve(context.Background(), 9999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestApproveWithdrawalRechecksBalance(t *testing.T) {
	store := memory.New()
	owner := store.SeedUser(models.User{Email: "owner@resthunt.pk", Role: models.RolePropertyOwner})
	store.SeedEarning(models.Earning{UserID: owner.ID, Amount: 15000, BookingID: 1, Status: models.EarningStatusApproved})

	withdrawals := services.NewWithdrawalService(store.Stores(), store, services.BalanceSourceApproved)

	withdrawal, err := withdrawals.Create(context.Background(), owner.ID, 15000, models.PayoutMethodBank, "PK36SCBL0000001123456702")
	require.NoError(t, err)

	// The earning backing the balance disappears before approval, as when
	// its booking gets rejected.
	require.NoError(t, store.DeleteEarningByBooking(context.Background(), 1))

	_, err = withdrawals.Approve(context.Background(), withdrawal.ID)
	assert.ErrorIs(t, err, services.ErrInsufficientEarnings)

	// The request stays pending so an admin can reject it instead.
	got, err := store.GetWithdrawal(context.Background(), withdrawal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusPending, got.Status)
}

func TestRejectWithdrawalReturnsAmountToBalance(t *testing.T) {
	store := memory.New()
	owner := seedOwnerWithEarnings(store)
	withdrawals := services.NewWithdrawalService(store.Stores(), store, services.BalanceSourceApproved)

	withdrawal, err := withdrawals.Create(context.Background(), owner.ID, 30000, models.PayoutMethodBank, "PK36SCBL0000001123456702")
	require.NoError(t, err)

	rejected, err := withdrawals.Reject(context.Background(), withdrawal.ID)
	require.NoError(t, err)
	assert.Equal(t, models.WithdrawalStatusRejected, rejected.Status)

	balance, err := withdrawals.Balance(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(30000), balance)

	_, err = withdrawals.Reject(context.Background(), 9999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestListWithdrawals(t *testing.T) {
	store := memory.New()
	owner := seedOwnerWithEarnings(store)
	other := store.SeedUser(models.User{Email: "other@resthunt.pk", Role: models.RolePropertyOwner})
	store.SeedWithdrawal(models.Withdrawal{UserID: owner.ID, Amount: 5000, Status: models.WithdrawalStatusPending})
	store.SeedWithdrawal(models.Withdrawal{UserID: other.ID, Amount: 3000, Status: models.WithdrawalStatusPending})

	withdrawals := services.NewWithdrawalService(store.Stores(), store, services.BalanceSourceApproved)

	mine, err := withdrawals.ListByUser(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := withdrawals.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
