package models

import "gorm.io/gorm"

type Favourite struct {
	gorm.Model
	UserID     uint `json:"userID" gorm:"index;uniqueIndex:idx_fav_user_property"`
	PropertyID uint `json:"propertyID" gorm:"index;uniqueIndex:idx_fav_user_property"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}
