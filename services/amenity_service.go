package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"conci-backend/models"
)

type AmenityService struct {
	DB *gorm.DB
}

func NewAmenityService(db *gorm.DB) *AmenityService {
	return &AmenityService{DB: db}
}

// Resolve maps a free-text amenity name to a catalog entry:
// case-insensitive exact match against available amenities only.
// Returns (nil, nil) when nothing matches; triage downgrades the
// message rather than fabricating a ticket.
func (s *AmenityService) Resolve(name string) (*models.Amenity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	var amenity models.Amenity
	err := s.DB.
		Where("LOWER(name) = ? AND is_available = ?", strings.ToLower(name), true).
		First(&amenity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve amenity: %w", err)
	}
	return &amenity, nil
}

// Catalog returns the available amenities in classifier-input form.
func (s *AmenityService) Catalog() ([]AmenityInfo, error) {
	var amenities []models.Amenity
	if err := s.DB.Where("is_available = ?", true).Order("name").Find(&amenities).Error; err != nil {
		return nil, fmt.Errorf("load amenity catalog: %w", err)
	}
	catalog := make([]AmenityInfo, 0, len(amenities))
	for _, a := range amenities {
		catalog = append(catalog, AmenityInfo{Name: a.Name, Price: a.Price})
	}
	return catalog, nil
}

func (s *AmenityService) GetAll() ([]models.Amenity, error) {
	var amenities []models.Amenity
	err := s.DB.Order("name").Find(&amenities).Error
	return amenities, err
}

func (s *AmenityService) Create(amenity *models.Amenity) error {
	amenity.Name = strings.TrimSpace(amenity.Name)
	if amenity.Name == "" {
		return fmt.Errorf("%w: amenity name is required", ErrValidation)
	}
	if amenity.Price < 0 {
		return fmt.Errorf("%w: amenity price cannot be negative", ErrValidation)
	}
	return s.DB.Create(amenity).Error
}

func (s *AmenityService) Update(id uint, updates models.Amenity) (models.Amenity, error) {
	var amenity models.Amenity
	if err := s.DB.First(&amenity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return amenity, fmt.Errorf("%w: amenity %d", ErrNotFound, id)
		}
		return amenity, err
	}

	if name := strings.TrimSpace(updates.Name); name != "" {
		amenity.Name = name
	}
	if updates.Price < 0 {
		return amenity, fmt.Errorf("%w: amenity price cannot be negative", ErrValidation)
	}
	amenity.Price = updates.Price
	amenity.IsAvailable = updates.IsAvailable

	if err := s.DB.Save(&amenity).Error; err != nil {
		return amenity, err
	}
	return amenity, nil
}

func (s *AmenityService) Delete(id uint) error {
	result := s.DB.Delete(&models.Amenity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: amenity %d", ErrNotFound, id)
	}
	return nil
}
