package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"conci-backend/models"
)

// AssignmentService owns guest stays: the booking-overlap invariant,
// check-in/check-out transitions, and room auto-provisioning.
type AssignmentService struct {
	DB *gorm.DB

	now func() time.Time
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{DB: db, now: time.Now}
}

// ValidateWindow enforces the booking invariant: check_out strictly
// after check_in, and no other non-cancelled assignment for the same
// (hotel, room) may overlap the half-open window. Touching boundaries
// do not conflict. excludeID skips the assignment being edited.
func (s *AssignmentService) ValidateWindow(hotelID uint, roomNumber string, checkIn, checkOut time.Time, excludeID uint) error {
	if !checkOut.After(checkIn) {
		return fmt.Errorf("%w: check-out time must be after check-in time", ErrValidation)
	}

	query := s.DB.Model(&models.GuestRoomAssignment{}).
		Where("hotel_id = ? AND room_number = ?", hotelID, roomNumber).
		Where("status <> ?", models.AssignmentCancelled).
		Where("check_in_time < ? AND check_out_time > ?", checkOut, checkIn)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("overlap check: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: room %s is already booked for an overlapping period (%s to %s)",
			ErrConflict, roomNumber,
			checkIn.Format(time.RFC3339), checkOut.Format(time.RFC3339))
	}
	return nil
}

// ensureRoom auto-provisions an unknown room number as an available
// room rather than failing the assignment write.
func (s *AssignmentService) ensureRoom(hotelID uint, roomNumber string) error {
	var room models.Room
	err := s.DB.Where("hotel_id = ? AND room_number = ?", hotelID, roomNumber).First(&room).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("room lookup: %w", err)
	}

	room = models.Room{HotelID: hotelID, RoomNumber: roomNumber, Status: models.RoomAvailable}
	if err := s.DB.Create(&room).Error; err != nil {
		return fmt.Errorf("auto-provision room %s: %w", roomNumber, err)
	}
	return nil
}

func (s *AssignmentService) validateFields(a *models.GuestRoomAssignment) error {
	a.RoomNumber = strings.TrimSpace(a.RoomNumber)
	switch {
	case a.HotelID == 0:
		return fmt.Errorf("%w: hotel is required", ErrValidation)
	case a.RoomNumber == "":
		return fmt.Errorf("%w: room number is required", ErrValidation)
	case a.CheckInTime.IsZero():
		return fmt.Errorf("%w: check-in time is required", ErrValidation)
	case a.CheckOutTime.IsZero():
		return fmt.Errorf("%w: check-out time is required", ErrValidation)
	}
	if a.Status == "" {
		a.Status = models.AssignmentConfirmed
	}
	if !models.IsValidAssignmentStatus(a.Status) {
		return fmt.Errorf("%w: invalid assignment status %q", ErrValidation, a.Status)
	}
	if a.TotalBillAmount < a.BaseBillAmount {
		a.TotalBillAmount = a.BaseBillAmount
	}
	return nil
}

// Create validates then persists a new stay. Nothing is written when
// validation fails.
func (s *AssignmentService) Create(a *models.GuestRoomAssignment) error {
	if err := s.validateFields(a); err != nil {
		return err
	}

	var hotel models.Hotel
	if err := s.DB.First(&hotel, a.HotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: hotel %d", ErrNotFound, a.HotelID)
		}
		return err
	}

	if err := s.ValidateWindow(a.HotelID, a.RoomNumber, a.CheckInTime, a.CheckOutTime, 0); err != nil {
		return err
	}
	if err := s.ensureRoom(a.HotelID, a.RoomNumber); err != nil {
		return err
	}
	return s.DB.Create(a).Error
}

// Update re-validates the overlap invariant (excluding the assignment
// itself) before persisting edits.
func (s *AssignmentService) Update(hotelID, id uint, updates models.GuestRoomAssignment) (models.GuestRoomAssignment, error) {
	existing, err := s.GetByID(hotelID, id)
	if err != nil {
		return existing, err
	}

	if strings.TrimSpace(updates.RoomNumber) != "" {
		existing.RoomNumber = strings.TrimSpace(updates.RoomNumber)
	}
	if updates.GuestNames != "" {
		existing.GuestNames = updates.GuestNames
	}
	if !updates.CheckInTime.IsZero() {
		existing.CheckInTime = updates.CheckInTime
	}
	if !updates.CheckOutTime.IsZero() {
		existing.CheckOutTime = updates.CheckOutTime
	}
	if updates.Status != "" {
		if !models.IsValidAssignmentStatus(updates.Status) {
			return existing, fmt.Errorf("%w: invalid assignment status %q", ErrValidation, updates.Status)
		}
		existing.Status = updates.Status
	}
	if updates.BaseBillAmount != 0 {
		existing.BaseBillAmount = updates.BaseBillAmount
	}
	if updates.TotalBillAmount != 0 {
		existing.TotalBillAmount = updates.TotalBillAmount
	}
	if updates.AmountPaid != 0 {
		existing.AmountPaid = updates.AmountPaid
	}
	if existing.TotalBillAmount < existing.BaseBillAmount {
		existing.TotalBillAmount = existing.BaseBillAmount
	}

	if err := s.ValidateWindow(hotelID, existing.RoomNumber, existing.CheckInTime, existing.CheckOutTime, existing.ID); err != nil {
		return existing, err
	}
	if err := s.ensureRoom(hotelID, existing.RoomNumber); err != nil {
		return existing, err
	}
	if err := s.DB.Save(&existing).Error; err != nil {
		return existing, err
	}
	return existing, nil
}

func (s *AssignmentService) GetByID(hotelID, id uint) (models.GuestRoomAssignment, error) {
	var a models.GuestRoomAssignment
	err := s.DB.Where("hotel_id = ?", hotelID).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return a, fmt.Errorf("%w: assignment %d", ErrNotFound, id)
	}
	return a, err
}

func (s *AssignmentService) GetAll(hotelID uint) ([]models.GuestRoomAssignment, error) {
	var assignments []models.GuestRoomAssignment
	err := s.DB.Where("hotel_id = ?", hotelID).Order("check_in_time").Find(&assignments).Error
	return assignments, err
}

func (s *AssignmentService) Delete(hotelID, id uint) error {
	result := s.DB.Where("hotel_id = ?", hotelID).Delete(&models.GuestRoomAssignment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: assignment %d", ErrNotFound, id)
	}
	return nil
}

// CheckIn moves a confirmed stay to checked_in and marks the room
// occupied.
func (s *AssignmentService) CheckIn(hotelID, id uint) (models.GuestRoomAssignment, error) {
	a, err := s.GetByID(hotelID, id)
	if err != nil {
		return a, err
	}
	if a.Status != models.AssignmentConfirmed {
		return a, fmt.Errorf("%w: assignment %d is %s, expected %s", ErrConflict, id, a.Status, models.AssignmentConfirmed)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&a).Update("status", models.AssignmentCheckedIn).Error; err != nil {
			return err
		}
		return tx.Model(&models.Room{}).
			Where("hotel_id = ? AND room_number = ?", hotelID, a.RoomNumber).
			Update("status", models.RoomOccupied).Error
	})
	if err != nil {
		return a, err
	}
	a.Status = models.AssignmentCheckedIn
	return a, nil
}

// CheckOut closes an active stay and flags the room for cleaning.
func (s *AssignmentService) CheckOut(hotelID, id uint) (models.GuestRoomAssignment, error) {
	a, err := s.GetByID(hotelID, id)
	if err != nil {
		return a, err
	}
	if a.Status != models.AssignmentCheckedIn {
		return a, fmt.Errorf("%w: assignment %d is %s, expected %s", ErrConflict, id, a.Status, models.AssignmentCheckedIn)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&a).Update("status", models.AssignmentCheckedOut).Error; err != nil {
			return err
		}
		return tx.Model(&models.Room{}).
			Where("hotel_id = ? AND room_number = ?", hotelID, a.RoomNumber).
			Update("status", models.RoomCleaning).Error
	})
	if err != nil {
		return a, err
	}
	a.Status = models.AssignmentCheckedOut
	return a, nil
}

// ActiveAssignment returns the checked-in stay whose window contains
// now, or (nil, nil) when the room is empty.
func (s *AssignmentService) ActiveAssignment(hotelID uint, roomNumber string) (*models.GuestRoomAssignment, error) {
	now := s.now()
	var a models.GuestRoomAssignment
	err := s.DB.
		Where("hotel_id = ? AND room_number = ? AND status = ?", hotelID, roomNumber, models.AssignmentCheckedIn).
		Where("check_in_time <= ? AND check_out_time > ?", now, now).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
