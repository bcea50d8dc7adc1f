package models

import "gorm.io/gorm"

const (
	EarningStatusPending  = "pending"
	EarningStatusApproved = "approved"
	EarningStatusRejected = "rejected"
)

// Earning credits a property owner for a booking. One live booking maps to at
// most one earning; rejecting or deleting the booking removes it.
type Earning struct {
	gorm.Model
	UserID      uint    `json:"userID" gorm:"index"` // the property owner
	Amount      float64 `json:"amount"`
	Provider    string  `json:"provider" gorm:"type:varchar(20)"`
	BookingID   uint    `json:"bookingID" gorm:"uniqueIndex"`
	Description string  `json:"description"`
	Status      string  `json:"status" gorm:"type:varchar(20);default:pending;index"` // pending, approved, rejected

	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}
