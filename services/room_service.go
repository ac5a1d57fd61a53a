package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"conci-backend/models"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) Create(room *models.Room) error {
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.HotelID == 0 || room.RoomNumber == "" {
		return fmt.Errorf("%w: hotel and room number are required", ErrValidation)
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	if !models.IsValidRoomStatus(room.Status) {
		return fmt.Errorf("%w: invalid room status %q", ErrValidation, room.Status)
	}
	return s.DB.Create(room).Error
}

func (s *RoomService) GetAll(hotelID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Where("hotel_id = ?", hotelID).Order("room_number").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(hotelID, id uint) (models.Room, error) {
	var room models.Room
	err := s.DB.Where("hotel_id = ?", hotelID).First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return room, fmt.Errorf("%w: room %d", ErrNotFound, id)
	}
	return room, err
}

// UpdateStatus is the housekeeping/maintenance action: move a room
// between available/occupied/cleaning/maintenance/out_of_service.
func (s *RoomService) UpdateStatus(hotelID, id uint, status string) (models.Room, error) {
	if !models.IsValidRoomStatus(status) {
		return models.Room{}, fmt.Errorf("%w: invalid room status %q", ErrValidation, status)
	}
	room, err := s.GetByID(hotelID, id)
	if err != nil {
		return room, err
	}
	if err := s.DB.Model(&room).Update("status", status).Error; err != nil {
		return room, err
	}
	room.Status = status
	return room, nil
}

func (s *RoomService) Delete(hotelID, id uint) error {
	result := s.DB.Where("hotel_id = ?", hotelID).Delete(&models.Room{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: room %d", ErrNotFound, id)
	}
	return nil
}
