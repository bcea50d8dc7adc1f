package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_CONNECTION_STRING", "host=localhost user=resthunt dbname=resthunt_test")
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "pkr", cfg.PaymentCurrency)
	assert.Equal(t, "approved", cfg.WithdrawalBalanceSource)
	assert.Equal(t, "0 3 * * *", cfg.EarningSweepSchedule)
	assert.Equal(t, 900, cfg.SignedURLTTLSeconds)
}

func TestLoadRejectsBadBalanceSource(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WITHDRAWAL_BALANCE_SOURCE", "sometimes")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadAcceptsAllBalanceSource(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WITHDRAWAL_BALANCE_SOURCE", "all")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "all", cfg.WithdrawalBalanceSource)
}
