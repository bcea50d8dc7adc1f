package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sheharyarIshfaq/rest-hunt-backend/services"
)

// NewStores wires the GORM-backed store implementations into the bundle the
// services consume.
func NewStores(db *gorm.DB) services.Stores {
	return services.Stores{
		Users:       &userStore{db: db},
		Properties:  &propertyStore{db: db},
		Bookings:    &bookingStore{db: db},
		Earnings:    &earningStore{db: db},
		Withdrawals: &withdrawalStore{db: db},
	}
}

// NewTxRunner returns a unit-of-work runner backed by a database transaction.
// The stores handed to fn all share the transaction handle, so every write in
// fn commits or rolls back together.
func NewTxRunner(db *gorm.DB) services.TxRunner {
	return &txRunner{db: db}
}

type txRunner struct {
	db *gorm.DB
}

func (r *txRunner) RunInTx(ctx context.Context, fn func(services.Stores) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStores(tx))
	})
}

// translate maps the driver's missing-row error onto the service taxonomy.
func translate(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s not found: %w", what, services.ErrNotFound)
	}
	return err
}
