package models

import "gorm.io/gorm"

type RecentlyViewed struct {
	gorm.Model
	UserID     uint `json:"userID" gorm:"index"`
	PropertyID uint `json:"propertyID" gorm:"index"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}
