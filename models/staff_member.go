package models

import (
	"gorm.io/gorm"
)

// CategoryGeneral staff (and concierge) see every ticket for their
// hotel; any other category sees assigned tickets plus tickets of its
// own request type.
const CategoryGeneral = "general"

func IsValidStaffCategory(s string) bool {
	return s == CategoryGeneral || IsValidRequestType(s)
}

type StaffMember struct {
	gorm.Model

	FullName string `json:"fullName" gorm:"column:full_name;size:255"`
	Username string `json:"username" gorm:"size:255;uniqueIndex"`
	Password string `json:"-" gorm:"size:255"`

	HotelID  uint   `json:"hotelId" gorm:"column:hotel_id;index"`
	Category string `json:"category" gorm:"size:50;default:general"`

	Hotel Hotel `gorm:"foreignKey:HotelID" json:"-"`
}
