package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusPending  = "pending"
	BookingStatusApproved = "approved"
	BookingStatusRejected = "rejected"
)

const (
	PaymentProviderStripe    = "stripe"
	PaymentProviderEasypaisa = "easypaisa"
	PaymentProviderJazzcash  = "jazzcash"
)

type Booking struct {
	gorm.Model
	UserID     uint      `json:"userID" gorm:"index"`
	PropertyID uint      `json:"propertyID" gorm:"index"`
	RoomID     uint      `json:"roomID" gorm:"index"`
	MoveIn     time.Time `json:"moveIn"`
	MoveOut    time.Time `json:"moveOut"`
	Status     string    `json:"status" gorm:"type:varchar(20);default:pending;index"` // pending, approved, rejected
	Total      float64   `json:"total"`
	PaymentID  string    `json:"paymentID"`
	Provider   string    `json:"provider" gorm:"type:varchar(20)"` // stripe, easypaisa, jazzcash

	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Room     *Room     `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}
