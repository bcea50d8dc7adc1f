package routes

import (
	"errors"
	"time"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
	"github.com/sheharyarIshfaq/rest-hunt-backend/utils"
)

type RecentlyViewedHandler struct {
	db *gorm.DB
}

func NewRecentlyViewedHandler(db *gorm.DB) *RecentlyViewedHandler {
	return &RecentlyViewedHandler{db: db}
}

type RecentlyViewedInput struct {
	PropertyID uint `json:"propertyID" validate:"required"`
}

// AddRecentlyViewed records a property view. A view of the same property
// within the last day refreshes the existing record instead of stacking
// duplicates.
func (h *RecentlyViewedHandler) AddRecentlyViewed(ctx iris.Context) {
	var input RecentlyViewedInput
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
	dayAgo := time.Now().Add(-24 * time.Hour)

	var viewed models.RecentlyViewed
	err := h.db.Where("user_id = ? AND property_id = ? AND updated_at > ?",
		userID, input.PropertyID, dayAgo).First(&viewed).Error
	if err == nil {
		// Touch the timestamp so the listing moves back to the top.
		if err := h.db.Model(&viewed).Update("updated_at", time.Now()).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		ctx.JSON(iris.Map{"data": viewed, "message": "Recently viewed refreshed"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateInternalServerError(ctx)
		return
	}

	viewed = models.RecentlyViewed{UserID: userID, PropertyID: input.PropertyID}
	if err := h.db.Create(&viewed).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": viewed, "message": "Recently viewed recorded"})
}

func (h *RecentlyViewedHandler) GetRecentlyViewed(ctx iris.Context) {
	var viewed []models.RecentlyViewed
	err := h.db.Preload("Property.Rooms").
		Where("user_id = ?", currentUserID(ctx)).
		Order("updated_at DESC").
		Limit(20).
		Find(&viewed).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"data": viewed})
}
