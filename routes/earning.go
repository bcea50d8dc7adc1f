package routes

import (
	"github.com/kataras/iris/v12"

	"github.com/sheharyarIshfaq/rest-hunt-backend/services"
	"github.com/sheharyarIshfaq/rest-hunt-backend/utils"
)

type EarningHandler struct {
	earnings *services.EarningService
}

func NewEarningHandler(earnings *services.EarningService) *EarningHandler {
	return &EarningHandler{earnings: earnings}
}

// GetEarnings returns the authenticated owner's earnings, newest first.
func (h *EarningHandler) GetEarnings(ctx iris.Context) {
	earnings, err := h.earnings.ListByUser(ctx.Request().Context(), currentUserID(ctx))
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"data": earnings})
}

// RunSweep lets an admin trigger the pending-earnings promotion outside
// the schedule.
func (h *EarningHandler) RunSweep(ctx iris.Context) {
	promoted, err := h.earnings.Sweep(ctx.Request().Context())
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"promoted": promoted, "message": "Earnings sweep completed"})
}
