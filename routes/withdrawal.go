package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/sheharyarIshfaq/rest-hunt-backend/services"
	"github.com/sheharyarIshfaq/rest-hunt-backend/utils"
)

type WithdrawalHandler struct {
	withdrawals *services.WithdrawalService
}

func NewWithdrawalHandler(withdrawals *services.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawals: withdrawals}
}

type CreateWithdrawalInput struct {
	Amount         float64 `json:"amount" validate:"required,gt=0"`
	PayoutMethod   string  `json:"payoutMethod" validate:"required,oneof=bank easypaisa jazzcash"`
	AccountDetails string  `json:"accountDetails" validate:"required"`
}

func (h *WithdrawalHandler) CreateWithdrawal(ctx iris.Context) {
	var input CreateWithdrawalInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	withdrawal, err := h.withdrawals.Create(ctx.Request().Context(),
		currentUserID(ctx), input.Amount, input.PayoutMethod, input.AccountDetails)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": withdrawal, "message": "Withdrawal request created successfully"})
}

// GetWithdrawals returns the authenticated owner's withdrawal history and
// current available balance.
func (h *WithdrawalHandler) GetWithdrawals(ctx iris.Context) {
	userID := currentUserID(ctx)
	withdrawals, err := h.withdrawals.ListByUser(ctx.Request().Context(), userID)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	balance, err := h.withdrawals.Balance(ctx.Request().Context(), userID)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"data": withdrawals, "availableBalance": balance})
}

// GetAllWithdrawals is the admin view across all users.
func (h *WithdrawalHandler) GetAllWithdrawals(ctx iris.Context) {
	withdrawals, err := h.withdrawals.ListAll(ctx.Request().Context())
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"data": withdrawals})
}

func (h *WithdrawalHandler) ApproveWithdrawal(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid withdrawal id", ctx)
		return
	}

	withdrawal, err := h.withdrawals.Approve(ctx.Request().Context(), id)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"data": withdrawal, "message": "Withdrawal approved successfully"})
}

func (h *WithdrawalHandler) RejectWithdrawal(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid withdrawal id", ctx)
		return
	}

	withdrawal, err := h.withdrawals.Reject(ctx.Request().Context(), id)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"data": withdrawal, "message": "Withdrawal rejected successfully"})
}
