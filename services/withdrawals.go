package services

import (
	"context"

	"golang.org/x/exp/slices"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
)

// Balance sources for withdrawal admission. The original system changed its
// mind between the two, so the choice is configuration, not code.
const (
	BalanceSourceApproved = "approved" // only approved earnings count
	BalanceSourceAll      = "all"      // every earning counts, whatever its status
)

var payoutMethods = []string{
	models.PayoutMethodBank,
	models.PayoutMethodEasypaisa,
	models.PayoutMethodJazzcash,
}

type WithdrawalService struct {
	stores        Stores
	tx            TxRunner
	balanceSource string
}

func NewWithdrawalService(stores Stores, tx TxRunner, balanceSource string) *WithdrawalService {
	if balanceSource != BalanceSourceAll {
		balanceSource = BalanceSourceApproved
	}
	return &WithdrawalService{stores: stores, tx: tx, balanceSource: balanceSource}
}

// availableBalance is the configured earnings total minus everything already
// requested and not rejected. Must be called with transaction-scoped stores.
func (s *WithdrawalService) availableBalance(ctx context.Context, st Stores, userID uint) (float64, error) {
	earned, err := st.Earnings.SumEarningsByUser(ctx, userID, s.balanceSource == BalanceSourceApproved)
	if err != nil {
		return 0, err
	}
	withdrawn, err := st.Withdrawals.SumNonRejectedByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	return earned - withdrawn, nil
}

// Balance reports how much the user could still withdraw right now.
func (s *WithdrawalService) Balance(ctx context.Context, userID uint) (float64, error) {
	return s.availableBalance(ctx, s.stores, userID)
}

func (s *WithdrawalService) Create(ctx context.Context, userID uint, amount float64, payoutMethod, accountDetails string) (*models.Withdrawal, error) {
	if amount <= 0 || payoutMethod == "" || accountDetails == "" {
		return nil, validation("amount, payoutMethod and accountDetails are required")
	}
	if !slices.Contains(payoutMethods, payoutMethod) {
		return nil, validation("payoutMethod must be one of bank, easypaisa, jazzcash")
	}

	if _, err := s.stores.Users.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	var withdrawal *models.Withdrawal
	err := s.tx.RunInTx(ctx, func(st Stores) error {
		balance, err := s.availableBalance(ctx, st, userID)
		if err != nil {
			return err
		}
		if amount > balance {
			return ErrInsufficientEarnings
		}

		withdrawal = &models.Withdrawal{
			UserID:         userID,
			Amount:         amount,
			Status:         models.WithdrawalStatusPending,
			PayoutMethod:   payoutMethod,
			AccountDetails: accountDetails,
		}
		return st.Withdrawals.CreateWithdrawal(ctx, withdrawal)
	})
	if err != nil {
		return nil, err
	}

	return withdrawal, nil
}

// Approve re-validates the balance before flipping the status: the pending
// request already counts against the balance, so approval only has to confirm
// the pool did not go negative since admission (earnings removed by booking
// rejection, say).
func (s *WithdrawalService) Approve(ctx context.Context, id uint) (*models.Withdrawal, error) {
	var withdrawal *models.Withdrawal
	err := s.tx.RunInTx(ctx, func(st Stores) error {
		var err error
		withdrawal, err = st.Withdrawals.GetWithdrawal(ctx, id)
		if err != nil {
			return err
		}

		if withdrawal.Status != models.WithdrawalStatusApproved {
			balance, err := s.availableBalance(ctx, st, withdrawal.UserID)
			if err != nil {
				return err
			}
			if balance < 0 {
				return ErrInsufficientEarnings
			}
		}

		withdrawal.Status = models.WithdrawalStatusApproved
		return st.Withdrawals.SaveWithdrawal(ctx, withdrawal)
	})
	if err != nil {
		return nil, err
	}
	return withdrawal, nil
}

func (s *WithdrawalService) Reject(ctx context.Context, id uint) (*models.Withdrawal, error) {
	withdrawal, err := s.stores.Withdrawals.GetWithdrawal(ctx, id)
	if err != nil {
		return nil, err
	}

	withdrawal.Status = models.WithdrawalStatusRejected
	if err := s.stores.Withdrawals.SaveWithdrawal(ctx, withdrawal); err != nil {
		return nil, err
	}
	return withdrawal, nil
}

func (s *WithdrawalService) ListByUser(ctx context.Context, userID uint) ([]models.Withdrawal, error) {
	if _, err := s.stores.Users.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.stores.Withdrawals.ListWithdrawalsByUser(ctx, userID)
}

func (s *WithdrawalService) ListAll(ctx context.Context) ([]models.Withdrawal, error) {
	return s.stores.Withdrawals.ListWithdrawals(ctx)
}
