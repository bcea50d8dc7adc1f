package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Chat is a two-member conversation. Members is a JSON array of user IDs so a
// pair can be matched regardless of who opened the chat.
type Chat struct {
	gorm.Model
	Members  datatypes.JSON `json:"members"`
	Messages []Message      `json:"messages,omitempty" gorm:"foreignKey:ChatID"`
}

type Message struct {
	gorm.Model
	ChatID   uint   `json:"chatId" gorm:"index"`
	SenderID uint   `json:"senderId" gorm:"index"`
	Text     string `json:"text" gorm:"type:text"`

	// Enquiry messages carry the listing they ask about.
	Enquiry    bool  `json:"enquiry" gorm:"default:false"`
	PropertyID *uint `json:"propertyId,omitempty"`
	RoomID     *uint `json:"roomId,omitempty"`
}
