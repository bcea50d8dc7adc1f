package routes

import (
	"errors"

	"github.com/kataras/iris/v12"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
	"github.com/sheharyarIshfaq/rest-hunt-backend/services"
	"github.com/sheharyarIshfaq/rest-hunt-backend/utils"
)

// handleServiceError maps the service error taxonomy onto HTTP problem
// responses.
func handleServiceError(err error, ctx iris.Context) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.CreateError(iris.StatusNotFound, "Not Found", err.Error(), ctx)
	case errors.Is(err, services.ErrValidation):
		utils.CreateError(iris.StatusBadRequest, "Validation Error", err.Error(), ctx)
	case errors.Is(err, services.ErrConflict):
		utils.CreateError(iris.StatusConflict, "Conflict", err.Error(), ctx)
	case errors.Is(err, services.ErrUnauthorized):
		utils.CreateError(iris.StatusForbidden, "Forbidden", err.Error(), ctx)
	default:
		utils.CreateInternalServerError(ctx)
	}
}

func currentUserID(ctx iris.Context) uint {
	if id, ok := ctx.Values().Get("userID").(uint); ok {
		return id
	}
	return 0
}

func isAdmin(ctx iris.Context) bool {
	role, _ := ctx.Values().Get("role").(string)
	return role == models.RoleAdmin
}
