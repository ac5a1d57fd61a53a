package models

import (
	"gorm.io/gorm"
)

type Hotel struct {
	gorm.Model

	Name       string `json:"name" gorm:"size:255"`
	TotalRooms int    `json:"totalRooms" gorm:"column:total_rooms;default:0"`
}

// HotelConfiguration is a free-form per-hotel setting, e.g. key
// "wifi_password" or "checkout_time". (hotel, key) is unique.
type HotelConfiguration struct {
	gorm.Model

	HotelID uint   `json:"hotelId" gorm:"column:hotel_id;uniqueIndex:idx_hotel_config_key"`
	Key     string `json:"key" gorm:"size:255;uniqueIndex:idx_hotel_config_key"`
	Value   string `json:"value" gorm:"type:text"`

	Hotel Hotel `gorm:"foreignKey:HotelID" json:"-"`
}
