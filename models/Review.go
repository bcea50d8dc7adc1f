package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	UserID     uint   `json:"userID" gorm:"not null;index"`
	PropertyID uint   `json:"propertyID" gorm:"not null;index"`
	BookingID  uint   `json:"bookingID" gorm:"index"`
	Review     string `json:"review" gorm:"type:text"`
	Rating     int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`

	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Booking  *Booking  `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}
