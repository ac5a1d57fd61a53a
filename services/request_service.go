package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"conci-backend/models"
)

// RequestService drives a ticket through its status lifecycle and owns
// the one-time amenity billing side-effect.
type RequestService struct {
	DB *gorm.DB

	// now is swappable for tests.
	now func() time.Time
}

func NewRequestService(db *gorm.DB) *RequestService {
	return &RequestService{DB: db, now: time.Now}
}

// TransitionResult reports the outcome of a status change. When an
// amenity completion is billed, NewBillTotal carries the updated stay
// total; when billing had to be skipped, BillSkippedReason says why so
// staff can follow up manually.
type TransitionResult struct {
	Request           models.GuestRequest `json:"request"`
	BillApplied       bool                `json:"bill_applied"`
	BillAmount        float64             `json:"bill_amount,omitempty"`
	NewBillTotal      float64             `json:"new_bill_total,omitempty"`
	BillSkippedReason string              `json:"bill_skipped_reason,omitempty"`
}

func (s *RequestService) GetByID(hotelID, id uint) (models.GuestRequest, error) {
	var req models.GuestRequest
	err := s.DB.
		Preload("AmenityRequested").
		Preload("AssignedStaff").
		Where("hotel_id = ?", hotelID).
		First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return req, fmt.Errorf("%w: request %d", ErrNotFound, id)
	}
	return req, err
}

// UpdateStatus applies a staff-initiated transition. Terminal tickets
// are frozen; unknown statuses are rejected without mutating the
// ticket. Completing an unbilled amenity_request while the guest is
// checked in increments the stay's bill exactly once.
func (s *RequestService) UpdateStatus(hotelID, id uint, newStatus string) (TransitionResult, error) {
	if !models.IsValidRequestStatus(newStatus) {
		return TransitionResult{}, fmt.Errorf("%w: invalid status %q", ErrValidation, newStatus)
	}

	var result TransitionResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var req models.GuestRequest
		err := tx.Preload("AmenityRequested").Where("hotel_id = ?", hotelID).First(&req, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: request %d", ErrNotFound, id)
		}
		if err != nil {
			return err
		}

		// Terminal tickets accept nothing, not even a repeat of the
		// same status; this also prevents a skipped billing from being
		// retried by completing twice.
		if models.IsTerminalRequestStatus(req.Status) {
			log.Printf("rejected transition of terminal request %d (%s -> %s)", id, req.Status, newStatus)
			return fmt.Errorf("%w: request %d is %s and accepts no further transitions", ErrConflict, id, req.Status)
		}

		if req.RequestType == models.TypeAmenityRequest &&
			newStatus == models.RequestCompleted && !req.BillAdded {
			if err := s.billAmenity(tx, &req, &result); err != nil {
				return err
			}
		}

		if err := tx.Model(&models.GuestRequest{}).Where("id = ?", req.ID).
			Update("status", newStatus).Error; err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		req.Status = newStatus
		result.Request = req
		return nil
	})
	if err != nil {
		return TransitionResult{}, err
	}
	return result, nil
}

// billAmenity applies the at-most-once billing side-effect inside the
// caller's transaction. The bill_added flip is a conditional update so
// two concurrent completions cannot both charge; billing is
// best-effort and never blocks the completion itself.
func (s *RequestService) billAmenity(tx *gorm.DB, req *models.GuestRequest, result *TransitionResult) error {
	now := s.now()

	var assignment models.GuestRoomAssignment
	err := tx.
		Where("hotel_id = ? AND room_number = ? AND status = ?", req.HotelID, req.RoomNumber, models.AssignmentCheckedIn).
		Where("check_in_time <= ? AND check_out_time > ?", now, now).
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		result.BillSkippedReason = fmt.Sprintf("no active checked-in assignment for room %s", req.RoomNumber)
		log.Printf("warning: request %d completed but %s; bill not updated", req.ID, result.BillSkippedReason)
		return nil
	}
	if err != nil {
		return fmt.Errorf("active assignment lookup: %w", err)
	}

	if req.AmenityRequested == nil || req.AmenityQuantity <= 0 {
		result.BillSkippedReason = "amenity or quantity missing on request"
		log.Printf("warning: request %d completed but %s; bill not updated", req.ID, result.BillSkippedReason)
		return nil
	}

	claim := tx.Model(&models.GuestRequest{}).
		Where("id = ? AND bill_added = ?", req.ID, false).
		Update("bill_added", true)
	if claim.Error != nil {
		return fmt.Errorf("claim billing flag: %w", claim.Error)
	}
	if claim.RowsAffected == 0 {
		// Another completion already billed this ticket.
		req.BillAdded = true
		return nil
	}

	cost := req.AmenityRequested.Price * float64(req.AmenityQuantity)
	if err := tx.Model(&models.GuestRoomAssignment{}).
		Where("id = ?", assignment.ID).
		Update("total_bill_amount", gorm.Expr("total_bill_amount + ?", cost)).Error; err != nil {
		return fmt.Errorf("apply amenity charge: %w", err)
	}

	req.BillAdded = true
	result.BillApplied = true
	result.BillAmount = cost
	result.NewBillTotal = assignment.TotalBillAmount + cost
	log.Printf("added $%.2f for %dx %s to room %s's bill (new total $%.2f)",
		cost, req.AmenityQuantity, req.AmenityRequested.Name, req.RoomNumber, result.NewBillTotal)
	return nil
}

func (s *RequestService) UpdateNotes(hotelID, id uint, notes string) (models.GuestRequest, error) {
	req, err := s.GetByID(hotelID, id)
	if err != nil {
		return req, err
	}
	if err := s.DB.Model(&req).Update("staff_notes", notes).Error; err != nil {
		return req, fmt.Errorf("update notes: %w", err)
	}
	req.StaffNotes = notes
	return req, nil
}

// Assign routes a ticket to a staff member of the same hotel. A zero
// staff ID clears the assignment.
func (s *RequestService) Assign(hotelID, id, staffID uint) (models.GuestRequest, error) {
	req, err := s.GetByID(hotelID, id)
	if err != nil {
		return req, err
	}

	if staffID == 0 {
		if err := s.DB.Model(&req).Update("assigned_staff_id", nil).Error; err != nil {
			return req, err
		}
		req.AssignedStaffID = nil
		return req, nil
	}

	var staff models.StaffMember
	if err := s.DB.Where("hotel_id = ?", hotelID).First(&staff, staffID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return req, fmt.Errorf("%w: staff member %d", ErrNotFound, staffID)
		}
		return req, err
	}

	if err := s.DB.Model(&req).Update("assigned_staff_id", staff.ID).Error; err != nil {
		return req, err
	}
	req.AssignedStaffID = &staff.ID
	return req, nil
}

// CountNewSince backs the staff notification bell: pending actionable
// tickets created after the given instant.
func (s *RequestService) CountNewSince(hotelID uint, since time.Time) (int64, error) {
	var count int64
	err := s.DB.Model(&models.GuestRequest{}).
		Where("hotel_id = ? AND status = ?", hotelID, models.RequestPending).
		Where("request_type IN ?", models.ActionableTypes).
		Where("created_at > ?", since).
		Count(&count).Error
	return count, err
}

// CompletedSince backs the guest-side poll: tickets for a room that
// reached a resolution after the given instant.
func (s *RequestService) CompletedSince(hotelID uint, roomNumber string, since time.Time) ([]models.GuestRequest, error) {
	var reqs []models.GuestRequest
	err := s.DB.
		Where("hotel_id = ? AND room_number = ?", hotelID, roomNumber).
		Where("status IN ?", []string{models.RequestCompleted, models.RequestCancelled}).
		Where("request_type <> ?", models.TypeCasualChat).
		Where("updated_at > ?", since).
		Order("updated_at").
		Find(&reqs).Error
	return reqs, err
}
