package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PropertyStatusActive  = "active"
	PropertyStatusDraft   = "draft"
	PropertyStatusPending = "pending"
	PropertyStatusDenied  = "denied"
	PropertyStatusPaused  = "paused"
)

const (
	RoomCategoryPrivate     = "Private"
	RoomCategoryShared      = "Shared"
	RoomCategoryEntirePlace = "Entire Place"
)

const (
	RentUnitPerYear  = "Per Year"
	RentUnitPerMonth = "Per Month"
	RentUnitPerWeek  = "Per Week"
	RentUnitPerDay   = "Per Day"
)

type Property struct {
	gorm.Model
	Name             string  `json:"name"`
	Address          string  `json:"address"`
	Lat              float32 `json:"lat"`
	Lng              float32 `json:"lng"`
	NearbySiteName   string  `json:"nearbySiteName"`
	PropertyType     string  `json:"propertyType"`
	PropertySize     float32 `json:"propertySize"`
	PropertySizeUnit string  `json:"propertySizeUnit"`
	Description      string  `json:"description"`
	Status           string  `json:"status" gorm:"type:varchar(20);default:pending;index"` // active, draft, pending, denied, paused
	OwnerID          uint    `json:"ownerID" gorm:"index"`
	Owner            *User   `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Rooms            []Room  `json:"rooms" gorm:"foreignKey:PropertyID"`
}

// Room is a bookable unit inside a property. It has no identity outside its
// parent: the API always addresses it as propertyID + roomID.
type Room struct {
	gorm.Model
	PropertyID        uint           `json:"propertyID" gorm:"index"`
	Category          string         `json:"category" gorm:"type:varchar(20)"` // Private, Shared, Entire Place
	AvailableRooms    int            `json:"availableRooms" gorm:"check:available_rooms >= 0"`
	NoOfBathrooms     int            `json:"noOfBathrooms"`
	GeneralFacilities datatypes.JSON `json:"generalFacilities"`
	RoomFacilities    datatypes.JSON `json:"roomFacilities"`
	RoomSize          float32        `json:"roomSize"`
	RoomSizeUnit      string         `json:"roomSizeUnit"`
	RentAmount        float64        `json:"rentAmount"`
	RentAmountUnit    string         `json:"rentAmountUnit" gorm:"type:varchar(20)"` // Per Year, Per Month, Per Week, Per Day
	Images            datatypes.JSON `json:"images"`                                 // object storage keys
}

// ImageKeys decodes the stored image column into a list of object keys.
func (r *Room) ImageKeys() []string {
	keys := []string{}
	if len(r.Images) > 0 {
		_ = json.Unmarshal(r.Images, &keys)
	}
	return keys
}
