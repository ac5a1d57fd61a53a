package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"conci-backend/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Hotel{},
		&models.HotelConfiguration{},
		&models.StaffMember{},
		&models.Room{},
		&models.GuestRoomAssignment{},
		&models.Amenity{},
		&models.GuestRequest{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedHotel(t *testing.T, db *gorm.DB) models.Hotel {
	t.Helper()
	hotel := models.Hotel{Name: "Test Hotel", TotalRooms: 10}
	if err := db.Create(&hotel).Error; err != nil {
		t.Fatalf("seed hotel: %v", err)
	}
	return hotel
}

func seedAmenity(t *testing.T, db *gorm.DB, name string, price float64, available bool) models.Amenity {
	t.Helper()
	amenity := models.Amenity{Name: name, Price: price, IsAvailable: available}
	if err := db.Create(&amenity).Error; err != nil {
		t.Fatalf("seed amenity %s: %v", name, err)
	}
	return amenity
}

// stubClassifier returns a canned classification and records its input.
type stubClassifier struct {
	result     Classification
	gotMessage string
	gotCatalog []AmenityInfo
	calls      int
}

func (s *stubClassifier) Classify(_ context.Context, message string, catalog []AmenityInfo) Classification {
	s.calls++
	s.gotMessage = message
	s.gotCatalog = catalog
	if s.result.Entities.Query == "" {
		s.result.Entities.Query = message
	}
	return s.result
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
