package services

import (
	"context"
	"time"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
)

// EarningApprovalDelay is how long an earning stays pending before the sweep
// approves it.
const EarningApprovalDelay = 10 * 24 * time.Hour

type EarningService struct {
	stores Stores
	now    func() time.Time
}

func NewEarningService(stores Stores) *EarningService {
	return &EarningService{stores: stores, now: time.Now}
}

func (s *EarningService) ListByUser(ctx context.Context, userID uint) ([]models.Earning, error) {
	if _, err := s.stores.Users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.stores.Earnings.ListEarningsByUser(ctx, userID)
}

// Sweep promotes every pending earning older than the approval delay to
// approved, regardless of the linked booking's own status. Runs daily from the
// scheduler and on demand from the admin endpoint.
func (s *EarningService) Sweep(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-EarningApprovalDelay)
	return s.stores.Earnings.PromotePendingBefore(ctx, cutoff)
}
