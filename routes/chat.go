package routes

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"

	"github.com/sheharyarIshfaq/rest-hunt-backend/models"
	"github.com/sheharyarIshfaq/rest-hunt-backend/utils"
)

type ChatHandler struct {
	db *gorm.DB
}

func NewChatHandler(db *gorm.DB) *ChatHandler {
	return &ChatHandler{db: db}
}

// GetChats lists every conversation the requester is a member of, newest
// activity first.
func (h *ChatHandler) GetChats(ctx iris.Context) {
	var chats []models.Chat
	err := h.db.Where("members::jsonb @> ?", fmt.Sprintf("[%d]", currentUserID(ctx))).
		Order("updated_at DESC").
		Find(&chats).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"data": chats})
}

func (h *ChatHandler) GetMessages(ctx iris.Context) {
	chat, ok := h.findMemberChat(ctx)
	if !ok {
		return
	}

	var messages []models.Message
	err := h.db.Where("chat_id = ?", chat.ID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"data": messages})
}

type SendMessageInput struct {
	ReceiverID uint   `json:"receiverID" validate:"required"`
	Text       string `json:"text" validate:"required"`
}

// SendMessage delivers a message to the pair's chat, creating the chat on
// first contact.
func (h *ChatHandler) SendMessage(ctx iris.Context) {
	var input SendMessageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	senderID := currentUserID(ctx)
	if input.ReceiverID == senderID {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "cannot message yourself", ctx)
		return
	}

	var receiver models.User
	if err := h.db.First(&receiver, input.ReceiverID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "User not found", ctx)
		return
	}

	chat, err := h.findOrCreateChat(senderID, input.ReceiverID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	message := models.Message{
		ChatID:   chat.ID,
		SenderID: senderID,
		Text:     input.Text,
	}
	if err := h.db.Create(&message).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	// Bump the chat so conversation lists stay ordered by activity.
	h.db.Model(chat).Update("updated_at", gorm.Expr("NOW()"))

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": message, "message": "Message sent"})
}

type AddEnquiryInput struct {
	PropertyID uint   `json:"propertyID" validate:"required"`
	RoomID     uint   `json:"roomID"`
	Text       string `json:"text" validate:"required"`
}

// AddEnquiry starts (or continues) a chat with a property's owner, tagging
// the message with the listing it asks about.
func (h *ChatHandler) AddEnquiry(ctx iris.Context) {
	var input AddEnquiryInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if err := h.db.First(&property, input.PropertyID).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Property not found", ctx)
		return
	}

	senderID := currentUserID(ctx)
	if property.OwnerID == senderID {
		utils.CreateError(iris.StatusBadRequest, "Validation Error",
			"cannot enquire about your own property", ctx)
		return
	}

	chat, err := h.findOrCreateChat(senderID, property.OwnerID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	message := models.Message{
		ChatID:     chat.ID,
		SenderID:   senderID,
		Text:       input.Text,
		Enquiry:    true,
		PropertyID: &input.PropertyID,
	}
	if input.RoomID != 0 {
		message.RoomID = &input.RoomID
	}
	if err := h.db.Create(&message).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	h.db.Model(chat).Update("updated_at", gorm.Expr("NOW()"))

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"data": message, "message": "Enquiry sent"})
}

// findOrCreateChat matches the member pair in either order.
func (h *ChatHandler) findOrCreateChat(a, b uint) (*models.Chat, error) {
	var chat models.Chat
	err := h.db.Where("members::jsonb @> ? AND members::jsonb @> ?",
		fmt.Sprintf("[%d]", a), fmt.Sprintf("[%d]", b)).
		First(&chat).Error
	if err == nil {
		return &chat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	members, err := json.Marshal([]uint{a, b})
	if err != nil {
		return nil, err
	}
	chat = models.Chat{Members: members}
	if err := h.db.Create(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

// findMemberChat loads the chat in {id} and checks membership.
func (h *ChatHandler) findMemberChat(ctx iris.Context) (*models.Chat, bool) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "invalid chat id", ctx)
		return nil, false
	}

	var chat models.Chat
	if err := h.db.First(&chat, id).Error; err != nil {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Chat not found", ctx)
		return nil, false
	}

	var members []uint
	if err := json.Unmarshal(chat.Members, &members); err != nil {
		utils.CreateInternalServerError(ctx)
		return nil, false
	}
	userID := currentUserID(ctx)
	for _, member := range members {
		if member == userID {
			return &chat, true
		}
	}

	utils.CreateError(iris.StatusForbidden, "Forbidden", "You are not a member of this chat", ctx)
	return nil, false
}
