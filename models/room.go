package models

import (
	"gorm.io/gorm"
)

const (
	RoomAvailable    = "available"
	RoomOccupied     = "occupied"
	RoomCleaning     = "cleaning"
	RoomMaintenance  = "maintenance"
	RoomOutOfService = "out_of_service"
)

var roomStatuses = map[string]bool{
	RoomAvailable:    true,
	RoomOccupied:     true,
	RoomCleaning:     true,
	RoomMaintenance:  true,
	RoomOutOfService: true,
}

func IsValidRoomStatus(s string) bool { return roomStatuses[s] }

type Room struct {
	gorm.Model

	HotelID    uint   `json:"hotelId" gorm:"column:hotel_id;uniqueIndex:idx_hotel_room_number"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex:idx_hotel_room_number;type:varchar(10)"`
	RoomType   string `json:"roomType" gorm:"column:room_type;type:varchar(50)"`
	Status     string `json:"status" gorm:"size:20;default:available"`

	Hotel Hotel `gorm:"foreignKey:HotelID" json:"-"`
}
