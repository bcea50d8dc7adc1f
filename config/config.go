package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"5000"`
	DatabaseURL string `envconfig:"DB_CONNECTION_STRING" required:"true"`

	RedisURL      string `envconfig:"REDIS_URL" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	AccessTokenSecret  string `envconfig:"ACCESS_TOKEN_SECRET" required:"true"`
	RefreshTokenSecret string `envconfig:"REFRESH_TOKEN_SECRET" required:"true"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	StripeSecretKey string `envconfig:"STRIPE_SECRET_KEY"`
	PaymentCurrency string `envconfig:"PAYMENT_CURRENCY" default:"pkr"`

	AWSBucketName       string `envconfig:"AWS_BUCKET_NAME"`
	AWSBucketRegion     string `envconfig:"AWS_BUCKET_REGION"`
	AWSAccessKeyID      string `envconfig:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey  string `envconfig:"AWS_SECRET_ACCESS_KEY"`
	SignedURLTTLSeconds int    `envconfig:"SIGNED_URL_TTL_SECONDS" default:"900"`

	// WithdrawalBalanceSource selects which earnings count toward the
	// withdrawable balance: "approved" or "all".
	WithdrawalBalanceSource string `envconfig:"WITHDRAWAL_BALANCE_SOURCE" default:"approved"`

	// EarningSweepSchedule is a cron expression for the daily pending ->
	// approved earnings promotion.
	EarningSweepSchedule string `envconfig:"EARNING_SWEEP_SCHEDULE" default:"0 3 * * *"`
}

// Load reads .env when present (development), then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Could not load .env file (this is normal in production)")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if cfg.WithdrawalBalanceSource != "approved" && cfg.WithdrawalBalanceSource != "all" {
		return nil, fmt.Errorf("WITHDRAWAL_BALANCE_SOURCE must be \"approved\" or \"all\", got %q", cfg.WithdrawalBalanceSource)
	}

	return &cfg, nil
}
