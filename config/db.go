package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"conci-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "conci_db")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)
	return dsn, nil
}

// AllModels lists every persisted entity in parent->child migration order.
func AllModels() []interface{} {
	return []interface{}{
		&models.Hotel{},
		&models.HotelConfiguration{},
		&models.StaffMember{},
		&models.Room{},
		&models.GuestRoomAssignment{},
		&models.Amenity{},
		&models.GuestRequest{},
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := DB.AutoMigrate(AllModels()...); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase ensures a default hotel, staff login, and a starter
// amenity catalog exist. Idempotent; safe to run on every boot.
func SeedDatabase() {
	var hotelCount int64
	DB.Model(&models.Hotel{}).Count(&hotelCount)

	var hotel models.Hotel
	if hotelCount == 0 {
		hotel = models.Hotel{Name: "Conci Demo Hotel", TotalRooms: 20}
		if err := DB.Create(&hotel).Error; err != nil {
			log.Printf("warning: failed to seed default hotel: %v", err)
			return
		}
		log.Println("Default hotel seeded")
	} else {
		DB.Order("id").First(&hotel)
	}

	var staffCount int64
	DB.Model(&models.StaffMember{}).Count(&staffCount)
	if staffCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default staff password: %v", err)
		} else {
			staff := models.StaffMember{
				FullName: "Front Desk",
				Username: "staff@conci.local",
				Password: string(hash),
				HotelID:  hotel.ID,
				Category: models.CategoryGeneral,
			}
			if err := DB.Create(&staff).Error; err != nil {
				log.Printf("warning: failed to create default staff: %v", err)
			} else {
				log.Println("Default staff seeded")
			}
		}
	}

	var amenityCount int64
	DB.Model(&models.Amenity{}).Count(&amenityCount)
	if amenityCount == 0 {
		amenities := []models.Amenity{
			{Name: "Towel", Price: 2.00, IsAvailable: true},
			{Name: "Water Bottle", Price: 1.50, IsAvailable: true},
			{Name: "Extra Pillow", Price: 3.00, IsAvailable: true},
			{Name: "Toothbrush Kit", Price: 2.50, IsAvailable: true},
		}
		if err := DB.Create(&amenities).Error; err != nil {
			log.Printf("warning: failed to seed amenities: %v", err)
		} else {
			log.Println("Amenities seeded")
		}
	}
}
