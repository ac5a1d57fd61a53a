package models

import (
	"gorm.io/gorm"
)

type Amenity struct {
	gorm.Model

	Name        string  `json:"name" gorm:"size:255;uniqueIndex"`
	Price       float64 `json:"price"`
	IsAvailable bool    `json:"isAvailable" gorm:"column:is_available;default:true"`
}
