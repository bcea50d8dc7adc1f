package routes

import (
	"time"

	"github.com/kataras/iris/v12"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
	"github.com/sheharyarIshfaq/rest-hunt-backend/services"
	"github.com/sheharyarIshfaq/rest-hunt-backend/utils"
)

type BookingHandler struct {
	bookings *services.BookingService
	payments *services.PaymentService
}

func NewBookingHandler(bookings *services.BookingService, payments *services.PaymentService) *BookingHandler {
	return &BookingHandler{bookings: bookings, payments: payments}
}

type CreateBookingInput struct {
	PropertyID uint      `json:"propertyID" validate:"required"`
	RoomID     uint      `json:"roomID" validate:"required"`
	MoveIn     time.Time `json:"moveIn" validate:"required"`
	MoveOut    time.Time `json:"moveOut" validate:"required"`
	Total      float64   `json:"total" validate:"required,gt=0"`
	Provider   string    `json:"provider" validate:"omitempty,oneof=stripe easypaisa jazzcash"`
	PaymentID  string    `json:"paymentID"`
}

func (h *BookingHandler) CreateBooking(ctx iris.Context) {
	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	booking, err := h.bookings.Create(ctx.Request().Context(), services.CreateBookingInput{
		UserID:     currentUserID(ctx),
		PropertyID: input.PropertyID,
		RoomID:     input.RoomID,
		MoveIn:     input.MoveIn,
		MoveOut:    input.MoveOut,
		Total:      input.Total,
		Provider:   input.Provider,
		PaymentID:  input.PaymentID,
	})
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"booking": booking})
}

type CreatePaymentInput struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

func (h *BookingHandler) CreatePayment(ctx iris.Context) {
	var input CreatePaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	clientSecret, err := h.payments.CreateIntent(input.Amount)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Payment Error", err.Error(), ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"client_secret": clientSecret})
}

func (h *BookingHandler) GetBookings(ctx iris.Context) {
	bookings, err := h.bookings.ListByUser(ctx.Request().Context(), currentUserID(ctx))
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"bookings": bookings})
}

func (h *BookingHandler) GetBookingByID(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid booking id", ctx)
		return
	}

	booking, err := h.bookings.Get(ctx.Request().Context(), id)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	if booking.UserID != currentUserID(ctx) && !isAdmin(ctx) {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "This booking is not yours", ctx)
		return
	}

	ctx.JSON(iris.Map{"booking": booking})
}

type UpdateBookingInput struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

func (h *BookingHandler) UpdateBooking(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid booking id", ctx)
		return
	}

	var input UpdateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	// Admins manage any booking. A tenant may only cancel their own: letting
	// them approve it would skip the owner's say entirely.
	if !isAdmin(ctx) {
		existing, err := h.bookings.Get(ctx.Request().Context(), id)
		if err != nil {
			handleServiceError(err, ctx)
			return
		}
		if existing.UserID != currentUserID(ctx) {
			utils.CreateError(iris.StatusForbidden, "Forbidden", "This booking is not yours", ctx)
			return
		}
		if input.Status != models.BookingStatusRejected {
			utils.CreateError(iris.StatusForbidden, "Forbidden", "Only an admin can set this status", ctx)
			return
		}
	}

	booking, err := h.bookings.UpdateStatus(ctx.Request().Context(), id, input.Status)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"booking": booking, "message": "Booking updated successfully"})
}

func (h *BookingHandler) DeleteBooking(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid booking id", ctx)
		return
	}

	if err := h.bookings.Delete(ctx.Request().Context(), id); err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Booking deleted successfully"})
}
