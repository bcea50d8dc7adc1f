package routes

import (
	"encoding/json"
	"fmt"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
	"github.com/sheharyarIshfaq/rest-hunt-backend/storage"
	"github.com/sheharyarIshfaq/rest-hunt-backend/utils"
)

type PropertyHandler struct {
	db      *gorm.DB
	objects storage.ObjectStore
}

func NewPropertyHandler(db *gorm.DB, objects storage.ObjectStore) *PropertyHandler {
	return &PropertyHandler{db: db, objects: objects}
}

type CreatePropertyInput struct {
	Name             string  `json:"name" validate:"required,max=256"`
	Address          string  `json:"address" validate:"required"`
	Lat              float32 `json:"lat" validate:"required"`
	Lng              float32 `json:"lng" validate:"required"`
	NearbySiteName   string  `json:"nearbySiteName" validate:"required"`
	PropertyType     string  `json:"propertyType" validate:"required"`
	PropertySize     float32 `json:"propertySize" validate:"required,gt=0"`
	PropertySizeUnit string  `json:"propertySizeUnit" validate:"required"`
	Description      string  `json:"description"`
}

func (h *PropertyHandler) CreateProperty(ctx iris.Context) {
	var input CreatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	property := models.Property{
		Name:             input.Name,
		Address:          input.Address,
		Lat:              input.Lat,
		Lng:              input.Lng,
		NearbySiteName:   input.NearbySiteName,
		PropertyType:     input.PropertyType,
		PropertySize:     input.PropertySize,
		PropertySizeUnit: input.PropertySizeUnit,
		Description:      input.Description,
		Status:           models.PropertyStatusPending,
		OwnerID:          currentUserID(ctx),
	}

	if err := h.db.Create(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": property, "message": "Property created successfully"})
}

// GetProperties lists active listings for browsing.
func (h *PropertyHandler) GetProperties(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("perPage", 10)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 50 {
		perPage = 10
	}

	var properties []models.Property
	err := h.db.Preload("Rooms").
		Where("status = ?", models.PropertyStatusActive).
		Offset((page-1)*perPage).Limit(perPage).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var total int64
	h.db.Model(&models.Property{}).Where("status = ?", models.PropertyStatusActive).Count(&total)

	for i := range properties {
		h.signRoomImages(ctx, properties[i].Rooms)
	}

	utils.JSONPage(ctx, properties, page, perPage, total)
}

// GetOwnerProperties lists the authenticated owner's properties with an
// optional status filter.
func (h *PropertyHandler) GetOwnerProperties(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("perPage", 10)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 50 {
		perPage = 10
	}
	status := ctx.URLParamDefault("status", "all")

	query := h.db.Model(&models.Property{}).Where("owner_id = ?", currentUserID(ctx))
	if status != "all" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var properties []models.Property
	err := query.Preload("Rooms").
		Offset((page-1)*perPage).Limit(perPage).
		Order("created_at DESC").
		Find(&properties).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	for i := range properties {
		h.signRoomImages(ctx, properties[i].Rooms)
	}

	utils.JSONPage(ctx, properties, page, perPage, total)
}

func (h *PropertyHandler) GetProperty(ctx iris.Context) {
	property, ok := h.findProperty(ctx)
	if !ok {
		return
	}

	h.signRoomImages(ctx, property.Rooms)
	ctx.JSON(iris.Map{"data": property})
}

type UpdatePropertyInput struct {
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	NearbySiteName   string  `json:"nearbySiteName"`
	PropertyType     string  `json:"propertyType"`
	PropertySize     float32 `json:"propertySize"`
	PropertySizeUnit string  `json:"propertySizeUnit"`
	Description      string  `json:"description"`
	Status           string  `json:"status" validate:"omitempty,oneof=active draft pending denied paused"`
}

func (h *PropertyHandler) UpdateProperty(ctx iris.Context) {
	property, ok := h.findOwnedProperty(ctx)
	if !ok {
		return
	}

	var input UpdatePropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Name != "" {
		property.Name = input.Name
	}
	if input.Address != "" {
		property.Address = input.Address
	}
	if input.NearbySiteName != "" {
		property.NearbySiteName = input.NearbySiteName
	}
	if input.PropertyType != "" {
		property.PropertyType = input.PropertyType
	}
	if input.PropertySize > 0 {
		property.PropertySize = input.PropertySize
	}
	if input.PropertySizeUnit != "" {
		property.PropertySizeUnit = input.PropertySizeUnit
	}
	if input.Description != "" {
		property.Description = input.Description
	}
	// Owners may pause or re-draft; activation stays with admins.
	if input.Status == models.PropertyStatusPaused || input.Status == models.PropertyStatusDraft {
		property.Status = input.Status
	}

	if err := h.db.Save(property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"data": property, "message": "Property updated successfully"})
}

type UpdatePropertyStatusInput struct {
	Status string `json:"status" validate:"required,oneof=active draft pending denied paused"`
}

// UpdatePropertyStatus is the admin moderation endpoint.
func (h *PropertyHandler) UpdatePropertyStatus(ctx iris.Context) {
	property, ok := h.findProperty(ctx)
	if !ok {
		return
	}

	var input UpdatePropertyStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	property.Status = input.Status
	if err := h.db.Save(property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"data": property, "message": "Property status updated successfully"})
}

func (h *PropertyHandler) DeleteProperty(ctx iris.Context) {
	property, ok := h.findOwnedProperty(ctx)
	if !ok {
		return
	}

	for i := range property.Rooms {
		for _, key := range property.Rooms[i].ImageKeys() {
			h.objects.Delete(ctx.Request().Context(), key)
		}
	}

	if err := h.db.Select("Rooms").Delete(property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Property deleted successfully"})
}

type AddRoomInput struct {
	Category          string   `json:"category" validate:"required,oneof=Private Shared 'Entire Place'"`
	AvailableRooms    int      `json:"availableRooms" validate:"required,gte=1"`
	NoOfBathrooms     int      `json:"noOfBathrooms" validate:"required,gte=1"`
	GeneralFacilities []string `json:"generalFacilities" validate:"required"`
	RoomFacilities    []string `json:"roomFacilities" validate:"required"`
	RoomSize          float32  `json:"roomSize" validate:"required,gt=0"`
	RoomSizeUnit      string   `json:"roomSizeUnit" validate:"required"`
	RentAmount        float64  `json:"rentAmount" validate:"required,gt=0"`
	RentAmountUnit    string   `json:"rentAmountUnit" validate:"required,oneof='Per Year' 'Per Month' 'Per Week' 'Per Day'"`
	Images            []string `json:"images" validate:"required,min=1"` // base64 payloads
}

func (h *PropertyHandler) AddRoom(ctx iris.Context) {
	property, ok := h.findOwnedProperty(ctx)
	if !ok {
		return
	}

	var input AddRoomInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	keys := []string{}
	for i, image := range input.Images {
		data, err := decodeBase64Image(image)
		if err != nil {
			utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid image payload", ctx)
			return
		}
		key, err := h.objects.Upload(ctx.Request().Context(), "property-images",
			fmt.Sprintf("room-%d.jpg", i), "image/jpeg", data)
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		keys = append(keys, key)
	}

	room := models.Room{
		PropertyID:        property.ID,
		Category:          input.Category,
		AvailableRooms:    input.AvailableRooms,
		NoOfBathrooms:     input.NoOfBathrooms,
		GeneralFacilities: mustJSON(input.GeneralFacilities),
		RoomFacilities:    mustJSON(input.RoomFacilities),
		RoomSize:          input.RoomSize,
		RoomSizeUnit:      input.RoomSizeUnit,
		RentAmount:        input.RentAmount,
		RentAmountUnit:    input.RentAmountUnit,
		Images:            mustJSON(keys),
	}

	if err := h.db.Create(&room).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"data": room, "message": "Room added successfully"})
}

func (h *PropertyHandler) DeleteRoom(ctx iris.Context) {
	property, ok := h.findOwnedProperty(ctx)
	if !ok {
		return
	}

	roomID, err := ctx.Params().GetUint("roomId")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid room id", ctx)
		return
	}

	var room models.Room
	if err := h.db.Where("id = ? AND property_id = ?", roomID, property.ID).First(&room).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Room not found", ctx)
		return
	}

	// Rooms with live bookings stay until those are settled.
	var active int64
	err = h.db.Model(&models.Booking{}).
		Where("room_id = ? AND status <> ?", room.ID, models.BookingStatusRejected).
		Count(&active).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if active > 0 {
		utils.CreateError(iris.StatusConflict, "Conflict",
			"Room has active bookings and cannot be deleted", ctx)
		return
	}

	for _, key := range room.ImageKeys() {
		h.objects.Delete(ctx.Request().Context(), key)
	}

	if err := h.db.Delete(&room).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"message": "Room deleted successfully"})
}

// findProperty loads the property in the {id} route parameter.
func (h *PropertyHandler) findProperty(ctx iris.Context) (*models.Property, bool) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid property id", ctx)
		return nil, false
	}

	var property models.Property
	if err := h.db.Preload("Rooms").First(&property, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return nil, false
	}
	return &property, true
}

// findOwnedProperty additionally checks the requester owns the property.
func (h *PropertyHandler) findOwnedProperty(ctx iris.Context) (*models.Property, bool) {
	property, ok := h.findProperty(ctx)
	if !ok {
		return nil, false
	}

	if property.OwnerID != currentUserID(ctx) {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You are not the owner of this property", ctx)
		return nil, false
	}
	return property, true
}

// signRoomImages swaps stored object keys for presigned URLs in the response.
func (h *PropertyHandler) signRoomImages(ctx iris.Context, rooms []models.Room) {
	for i := range rooms {
		keys := rooms[i].ImageKeys()
		urls := make([]string, 0, len(keys))
		for _, key := range keys {
			url, err := h.objects.SignedURL(ctx.Request().Context(), key)
			if err != nil {
				url = key
			}
			urls = append(urls, url)
		}
		rooms[i].Images = mustJSON(urls)
	}
}

func mustJSON(v interface{}) datatypes.JSON {
	raw, _ := json.Marshal(v)
	return datatypes.JSON(raw)
}
