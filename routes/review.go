package routes

import (
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
	"github.com/sheharyarIshfaq/rest-hunt-backend/utils"
)

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

type CreateReviewInput struct {
	PropertyID uint   `json:"propertyID" validate:"required"`
	BookingID  uint   `json:"bookingID" validate:"required"`
	Review     string `json:"review" validate:"required"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
}

// CreateReview requires the referenced booking to belong to the reviewer and
// to the reviewed property.
func (h *ReviewHandler) CreateReview(ctx iris.Context) {
	var input CreateReviewInput
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

	var booking models.Booking
	err := h.db.Where("id = ? AND user_id = ? AND property_id = ?",
		input.BookingID, userID, input.PropertyID).First(&booking).Error
	if err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found",
			"No booking of yours matches this property", ctx)
		return
	}

	review := models.Review{
		UserID:     userID,
		PropertyID: input.PropertyID,
		BookingID:  input.BookingID,
		Review:     input.Review,
		Rating:     input.Rating,
	}
	if err := h.db.Create(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": review, "message": "Review added successfully"})
}

// GetPropertyReviews is public: prospective tenants read reviews before
// booking.
func (h *ReviewHandler) GetPropertyReviews(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("propertyId")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid property id", ctx)
		return
	}

	var reviews []models.Review
	err = h.db.Preload("User").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Average for the summary header; zero when unreviewed.
	var average float64
	if len(reviews) > 0 {
		total := 0
		for _, review := range reviews {
			total += review.Rating
		}
		average = float64(total) / float64(len(reviews))
	}

	ctx.JSON(iris.Map{"data": reviews, "averageRating": average})
}

// GetBookingReview returns the requester's review for a booking, so clients
// know whether a stay was already reviewed.
func (h *ReviewHandler) GetBookingReview(ctx iris.Context) {
	bookingID, err := ctx.Params().GetUint("bookingId")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid booking id", ctx)
		return
	}

	var review models.Review
	err = h.db.Where("booking_id = ? AND user_id = ?", bookingID, currentUserID(ctx)).
		First(&review).Error
	if err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "No review for this booking", ctx)
		return
	}

	ctx.JSON(iris.Map{"data": review})
}

func (h *ReviewHandler) DeleteReview(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid review id", ctx)
		return
	}

	var review models.Review
	if err := h.db.First(&review, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Review not found", ctx)
		return
	}

	if review.UserID != currentUserID(ctx) {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You can only delete your own reviews", ctx)
		return
	}

	if err := h.db.Delete(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Review deleted successfully"})
}
