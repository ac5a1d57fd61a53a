package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"conci-backend/models"
)

type HotelService struct {
	DB *gorm.DB

	now func() time.Time
}

func NewHotelService(db *gorm.DB) *HotelService {
	return &HotelService{DB: db, now: time.Now}
}

func (s *HotelService) GetByID(id uint) (models.Hotel, error) {
	var hotel models.Hotel
	err := s.DB.First(&hotel, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return hotel, fmt.Errorf("%w: hotel %d", ErrNotFound, id)
	}
	return hotel, err
}

// HotelSummary is the staff dashboard's occupancy snapshot.
type HotelSummary struct {
	TotalRooms      int   `json:"total_rooms"`
	OccupiedRooms   int64 `json:"occupied_rooms"`
	ReservedRooms   int64 `json:"reserved_rooms"`
	NotReadyRooms   int64 `json:"not_ready_rooms"`
	AvailableRooms  int64 `json:"available_rooms"`
	PendingRequests int64 `json:"pending_requests"`
}

func (s *HotelService) Summary(hotelID uint) (HotelSummary, error) {
	hotel, err := s.GetByID(hotelID)
	if err != nil {
		return HotelSummary{}, err
	}

	now := s.now()
	summary := HotelSummary{TotalRooms: hotel.TotalRooms}

	s.DB.Model(&models.GuestRoomAssignment{}).
		Where("hotel_id = ? AND status = ?", hotelID, models.AssignmentCheckedIn).
		Where("check_in_time <= ? AND check_out_time > ?", now, now).
		Count(&summary.OccupiedRooms)

	s.DB.Model(&models.GuestRoomAssignment{}).
		Where("hotel_id = ? AND status = ? AND check_in_time > ?", hotelID, models.AssignmentConfirmed, now).
		Count(&summary.ReservedRooms)

	s.DB.Model(&models.Room{}).
		Where("hotel_id = ? AND status IN ?", hotelID,
			[]string{models.RoomCleaning, models.RoomMaintenance, models.RoomOutOfService}).
		Count(&summary.NotReadyRooms)

	summary.AvailableRooms = int64(hotel.TotalRooms) - summary.OccupiedRooms - summary.ReservedRooms - summary.NotReadyRooms
	if summary.AvailableRooms < 0 {
		summary.AvailableRooms = 0
	}

	s.DB.Model(&models.GuestRequest{}).
		Where("hotel_id = ? AND status = ?", hotelID, models.RequestPending).
		Count(&summary.PendingRequests)

	return summary, nil
}

func (s *HotelService) GetConfig(hotelID uint) ([]models.HotelConfiguration, error) {
	if _, err := s.GetByID(hotelID); err != nil {
		return nil, err
	}
	var entries []models.HotelConfiguration
	err := s.DB.Where("hotel_id = ?", hotelID).Order("`key`").Find(&entries).Error
	return entries, err
}

// SetConfig upserts one configuration entry for the hotel.
func (s *HotelService) SetConfig(hotelID uint, key, value string) (models.HotelConfiguration, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return models.HotelConfiguration{}, fmt.Errorf("%w: configuration key is required", ErrValidation)
	}
	if _, err := s.GetByID(hotelID); err != nil {
		return models.HotelConfiguration{}, err
	}

	var entry models.HotelConfiguration
	err := s.DB.Where("hotel_id = ? AND `key` = ?", hotelID, key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = models.HotelConfiguration{HotelID: hotelID, Key: key, Value: value}
		if err := s.DB.Create(&entry).Error; err != nil {
			return entry, err
		}
		return entry, nil
	}
	if err != nil {
		return entry, err
	}

	if err := s.DB.Model(&entry).Update("value", value).Error; err != nil {
		return entry, err
	}
	entry.Value = value
	return entry, nil
}
