package routes

import (
	"errors"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
	"github.com/sheharyarIshfaq/rest-hunt-backend/utils"
)

type FavouriteHandler struct {
	db *gorm.DB
}

func NewFavouriteHandler(db *gorm.DB) *FavouriteHandler {
	return &FavouriteHandler{db: db}
}

type FavouriteInput struct {
	PropertyID uint `json:"propertyID" validate:"required"`
}

// AddFavourite is idempotent: favouriting twice keeps a single record.
func (h *FavouriteHandler) AddFavourite(ctx iris.Context) {
	var input FavouriteInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if err := h.db.First(&property, input.PropertyID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	userID := currentUserID(ctx)

	var favourite models.Favourite
	err := h.db.Where("user_id = ? AND property_id = ?", userID, input.PropertyID).
		First(&favourite).Error
	if err == nil {
		ctx.JSON(iris.Map{"data": favourite, "message": "Property is already in favourites"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateInternalServerError(ctx)
		return
	}

	favourite = models.Favourite{UserID: userID, PropertyID: input.PropertyID}
	if err := h.db.Create(&favourite).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": favourite, "message": "Property added to favourites"})
}

func (h *FavouriteHandler) GetFavourites(ctx iris.Context) {
	var favourites []models.Favourite
	err := h.db.Preload("Property.Rooms").
		Where("user_id = ?", currentUserID(ctx)).
		Order("created_at DESC").
		Find(&favourites).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"data": favourites})
}

func (h *FavouriteHandler) RemoveFavourite(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("propertyId")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid property id", ctx)
		return
	}

	result := h.db.Where("user_id = ? AND property_id = ?", currentUserID(ctx), propertyID).
		Delete(&models.Favourite{})
	if result.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if result.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Favourite not found", ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Property removed from favourites"})
}
