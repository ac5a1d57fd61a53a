package services

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"conci-backend/models"
)

func seedTicketOfType(t *testing.T, svc *StaffService, hotelID uint, requestType string, assignedTo *uint) models.GuestRequest {
	t.Helper()
	req := models.GuestRequest{
		HotelID:         hotelID,
		RoomNumber:      "101",
		Status:          models.RequestPending,
		RequestType:     requestType,
		AssignedStaffID: assignedTo,
	}
	if err := svc.DB.Create(&req).Error; err != nil {
		t.Fatalf("seed ticket: %v", err)
	}
	return req
}

func TestCreateStaff(t *testing.T) {
	db := openTestDB(t)
	hotel := seedHotel(t, db)
	svc := NewStaffService(db)

	staff, err := svc.CreateStaff("Mara Chen", "Mara@Conci.Local", "s3cret", hotel.ID, models.TypeHousekeeping)
	if err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}
	if staff.Username != "mara@conci.local" {
		t.Errorf("username = %q, want lowercased", staff.Username)
	}
	if staff.Category != models.TypeHousekeeping {
		t.Errorf("category = %q", staff.Category)
	}
	if bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte("s3cret")) != nil {
		t.Error("stored password must be a bcrypt hash of the input")
	}

	if _, err := svc.CreateStaff("", "x@y", "pw", hotel.ID, "astronaut"); !errors.Is(err, ErrValidation) {
		t.Errorf("invalid category: err = %v, want ErrValidation", err)
	}
	if _, err := svc.CreateStaff("", "x@y", "pw", 9999, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown hotel: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.CreateStaff("", "", "pw", hotel.ID, ""); !errors.Is(err, ErrValidation) {
		t.Errorf("missing username: err = %v, want ErrValidation", err)
	}
}

func TestAuthenticate(t *testing.T) {
	db := openTestDB(t)
	hotel := seedHotel(t, db)
	svc := NewStaffService(db)

	if _, err := svc.CreateStaff("Mara Chen", "mara@conci.local", "s3cret", hotel.ID, ""); err != nil {
		t.Fatalf("CreateStaff: %v", err)
	}

	if _, err := svc.Authenticate("mara@conci.local", "s3cret"); err != nil {
		t.Errorf("valid credentials rejected: %v", err)
	}
	if _, err := svc.Authenticate("mara@conci.local", "wrong"); !errors.Is(err, ErrValidation) {
		t.Errorf("bad password: err = %v, want ErrValidation", err)
	}
	if _, err := svc.Authenticate("nobody@conci.local", "pw"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user: err = %v, want ErrNotFound", err)
	}
}

func TestVisibleTickets(t *testing.T) {
	db := openTestDB(t)
	hotel := seedHotel(t, db)
	svc := NewStaffService(db)

	general := models.StaffMember{Username: "gm@conci.local", HotelID: hotel.ID, Category: models.CategoryGeneral}
	concierge := models.StaffMember{Username: "con@conci.local", HotelID: hotel.ID, Category: models.TypeConcierge}
	housekeeper := models.StaffMember{Username: "hk@conci.local", HotelID: hotel.ID, Category: models.TypeHousekeeping}
	db.Create(&general)
	db.Create(&concierge)
	db.Create(&housekeeper)

	seedTicketOfType(t, svc, hotel.ID, models.TypeHousekeeping, nil)
	seedTicketOfType(t, svc, hotel.ID, models.TypeMaintenance, nil)
	assigned := seedTicketOfType(t, svc, hotel.ID, models.TypeRoomService, &housekeeper.ID)

	// Tickets of another hotel are never visible.
	other := models.Hotel{Name: "Other"}
	db.Create(&other)
	db.Create(&models.GuestRequest{HotelID: other.ID, RoomNumber: "9", Status: models.RequestPending, RequestType: models.TypeHousekeeping})

	got, err := svc.VisibleTickets(general)
	if err != nil {
		t.Fatalf("VisibleTickets(general): %v", err)
	}
	if len(got) != 3 {
		t.Errorf("general sees %d tickets, want 3", len(got))
	}

	got, err = svc.VisibleTickets(concierge)
	if err != nil {
		t.Fatalf("VisibleTickets(concierge): %v", err)
	}
	if len(got) != 3 {
		t.Errorf("concierge sees %d tickets, want 3", len(got))
	}

	got, err = svc.VisibleTickets(housekeeper)
	if err != nil {
		t.Fatalf("VisibleTickets(housekeeper): %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("housekeeper sees %d tickets, want 2 (own category + assigned)", len(got))
	}
	seen := map[uint]bool{}
	for _, ticket := range got {
		seen[ticket.ID] = true
	}
	if !seen[assigned.ID] {
		t.Error("housekeeper must see the ticket assigned to them regardless of type")
	}
}
