package models

import "gorm.io/gorm"

const (
	RoleUser          = "user"
	RolePropertyOwner = "property_owner"
	RoleAdmin         = "admin"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

type User struct {
	gorm.Model
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email" gorm:"uniqueIndex"`
	Password       string `json:"-"`
	PhoneNumber    string `json:"phoneNumber"`
	Location       string `json:"location"`
	Gender         string `json:"gender" gorm:"type:varchar(10);default:male"`
	Role           string `json:"role" gorm:"type:varchar(20);default:user;index"` // user, property_owner, admin
	ProfilePicture string `json:"profilePicture"`                                  // object storage key

	Properties []Property `json:"properties,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
}
