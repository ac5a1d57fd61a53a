package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"conci-backend/models"
)

// StaffService owns staff onboarding, login, and the ticket visibility
// filter used by the dashboard.
type StaffService struct {
	DB *gorm.DB
}

func NewStaffService(db *gorm.DB) *StaffService {
	return &StaffService{DB: db}
}

// CreateStaff is the explicit provisioning step for a new staff login:
// hash the password, default the category, link the hotel. There are
// no hidden creation hooks.
func (s *StaffService) CreateStaff(fullName, username, password string, hotelID uint, category string) (models.StaffMember, error) {
	var staff models.StaffMember

	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" || strings.TrimSpace(password) == "" {
		return staff, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if category == "" {
		category = models.CategoryGeneral
	}
	if !models.IsValidStaffCategory(category) {
		return staff, fmt.Errorf("%w: invalid staff category %q", ErrValidation, category)
	}

	var hotel models.Hotel
	if err := s.DB.First(&hotel, hotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return staff, fmt.Errorf("%w: hotel %d", ErrNotFound, hotelID)
		}
		return staff, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return staff, fmt.Errorf("hash password: %w", err)
	}

	staff = models.StaffMember{
		FullName: strings.TrimSpace(fullName),
		Username: username,
		Password: string(hash),
		HotelID:  hotel.ID,
		Category: category,
	}
	if err := s.DB.Create(&staff).Error; err != nil {
		return staff, fmt.Errorf("create staff: %w", err)
	}
	return staff, nil
}

// Authenticate verifies a username/password pair.
func (s *StaffService) Authenticate(username, password string) (models.StaffMember, error) {
	var staff models.StaffMember
	username = strings.TrimSpace(strings.ToLower(username))

	err := s.DB.Where("username = ?", username).First(&staff).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return staff, fmt.Errorf("%w: unknown username", ErrNotFound)
	}
	if err != nil {
		return staff, err
	}

	if bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)) != nil {
		return staff, fmt.Errorf("%w: invalid credentials", ErrValidation)
	}
	return staff, nil
}

func (s *StaffService) GetByID(id uint) (models.StaffMember, error) {
	var staff models.StaffMember
	err := s.DB.First(&staff, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return staff, fmt.Errorf("%w: staff member %d", ErrNotFound, id)
	}
	return staff, err
}

func (s *StaffService) GetAll(hotelID uint) ([]models.StaffMember, error) {
	var staff []models.StaffMember
	err := s.DB.Where("hotel_id = ?", hotelID).Order("full_name").Find(&staff).Error
	return staff, err
}

// VisibleTickets filters the hotel's tickets for a staff member's
// dashboard. General and concierge staff see everything; everyone else
// sees tickets assigned to them plus tickets of their own category.
// This governs visibility only, not authorization.
func (s *StaffService) VisibleTickets(staff models.StaffMember) ([]models.GuestRequest, error) {
	query := s.DB.
		Preload("AmenityRequested").
		Preload("AssignedStaff").
		Where("hotel_id = ?", staff.HotelID)

	if staff.Category != models.CategoryGeneral && staff.Category != models.TypeConcierge {
		query = query.Where("assigned_staff_id = ? OR request_type = ?", staff.ID, staff.Category)
	}

	var tickets []models.GuestRequest
	err := query.Order("created_at DESC").Find(&tickets).Error
	return tickets, err
}
