package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"conci-backend/models"
)

// TriageService runs the per-message decision pipeline: classify,
// resolve amenities, then either fold the exchange into the room's
// conversation or open a new pending ticket.
type TriageService struct {
	DB         *gorm.DB
	Classifier Classifier
	Amenities  *AmenityService
	Policy     CommitmentPolicy

	mu        sync.Mutex
	roomLocks map[string]*sync.Mutex
}

func NewTriageService(db *gorm.DB, classifier Classifier, amenities *AmenityService, policy CommitmentPolicy) *TriageService {
	if policy == nil {
		policy = DefaultCommitmentPolicy()
	}
	return &TriageService{
		DB:         db,
		Classifier: classifier,
		Amenities:  amenities,
		Policy:     policy,
		roomLocks:  make(map[string]*sync.Mutex),
	}
}

// roomLock returns the mutex serializing conversation writes for one
// (hotel, room) pair. Two messages for the same room must not both
// read the latest ticket and then both append.
func (s *TriageService) roomLock(hotelID uint, roomNumber string) *sync.Mutex {
	key := fmt.Sprintf("%d:%s", hotelID, roomNumber)
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.roomLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.roomLocks[key] = lock
	}
	return lock
}

// TriageResult is what the guest-facing API returns.
type TriageResult struct {
	Reply       string            `json:"conci_response"`
	RequestID   uint              `json:"request_id"`
	ChatHistory []models.ChatTurn `json:"chat_history"`
}

// LatestTicket returns the most recently created ticket for a room
// regardless of status; it anchors the room's conversation. (nil, nil)
// when the room has no tickets yet.
func (s *TriageService) LatestTicket(hotelID uint, roomNumber string) (*models.GuestRequest, error) {
	var req models.GuestRequest
	err := s.DB.
		Where("hotel_id = ? AND room_number = ?", hotelID, roomNumber).
		Order("created_at DESC, id DESC").
		First(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest ticket lookup: %w", err)
	}
	return &req, nil
}

// ProcessGuestMessage runs one triage pass. The classifier is invoked
// before the room lock is taken so a slow or failing remote call never
// blocks other rooms' writes.
func (s *TriageService) ProcessGuestMessage(ctx context.Context, hotelID uint, roomNumber, message string) (TriageResult, error) {
	message = strings.TrimSpace(message)
	roomNumber = strings.TrimSpace(roomNumber)
	if message == "" || roomNumber == "" || hotelID == 0 {
		return TriageResult{}, fmt.Errorf("%w: message, hotel_id and room_number are required", ErrValidation)
	}

	var hotel models.Hotel
	if err := s.DB.First(&hotel, hotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TriageResult{}, fmt.Errorf("%w: hotel %d", ErrNotFound, hotelID)
		}
		return TriageResult{}, err
	}

	catalog, err := s.Amenities.Catalog()
	if err != nil {
		return TriageResult{}, err
	}

	classification := s.Classifier.Classify(ctx, message, catalog)

	requestType := classification.Intent
	reply := classification.Reply
	entities := classification.Entities

	var amenity *models.Amenity
	quantity := entities.Quantity
	if quantity < 1 {
		quantity = 1
	}

	actionableAmenity := false
	if requestType == models.TypeAmenityRequest {
		if entities.AmenityName == "" {
			requestType = models.TypeGeneralInquiry
			reply = "I understand you're looking for an amenity, but I didn't catch which one. Could you please specify?"
		} else {
			amenity, err = s.Amenities.Resolve(entities.AmenityName)
			if err != nil {
				return TriageResult{}, err
			}
			if amenity == nil {
				requestType = models.TypeGeneralInquiry
				reply = fmt.Sprintf("I'm sorry, %q is not currently available or recognized as an amenity. Can I help with something else?", entities.AmenityName)
			} else if s.Policy.IsDeliveryCommitment(reply) {
				actionableAmenity = true
			}
		}
	}

	lock := s.roomLock(hotelID, roomNumber)
	lock.Lock()
	defer lock.Unlock()

	latest, err := s.LatestTicket(hotelID, roomNumber)
	if err != nil {
		return TriageResult{}, err
	}

	history := []models.ChatTurn{}
	if latest != nil {
		history = latest.History()
	}
	history = append(history,
		models.ChatTurn{Role: "user", Text: message},
		models.ChatTurn{Role: "model", Text: reply},
	)

	// Casual chat and informational amenity exchanges never open a
	// pending ticket; they live on the latest ticket so the
	// conversation is never lost.
	if requestType == models.TypeCasualChat || (requestType == models.TypeAmenityRequest && !actionableAmenity) {
		if latest != nil {
			if err := latest.SetHistory(history); err != nil {
				return TriageResult{}, err
			}
			if err := s.DB.Model(latest).Update("chat_history", latest.ChatHistory).Error; err != nil {
				return TriageResult{}, fmt.Errorf("append chat history: %w", err)
			}
			return TriageResult{Reply: reply, RequestID: latest.ID, ChatHistory: history}, nil
		}

		placeholder := models.GuestRequest{
			HotelID:           hotelID,
			RoomNumber:        roomNumber,
			RawText:           message,
			ConciResponseText: reply,
			Status:            models.RequestCompleted,
			RequestType:       models.TypeCasualChat,
			AmenityQuantity:   1,
		}
		if err := placeholder.SetHistory(history); err != nil {
			return TriageResult{}, err
		}
		if err := s.DB.Create(&placeholder).Error; err != nil {
			return TriageResult{}, fmt.Errorf("create casual-chat ticket: %w", err)
		}
		return TriageResult{Reply: reply, RequestID: placeholder.ID, ChatHistory: history}, nil
	}

	// Actionable: always a fresh pending ticket carrying the full
	// conversation so far.
	entities.Quantity = quantity
	ticket := models.GuestRequest{
		HotelID:           hotelID,
		RoomNumber:        roomNumber,
		RawText:           message,
		AIIntent:          requestType,
		ConciResponseText: reply,
		Status:            models.RequestPending,
		RequestType:       requestType,
		AmenityQuantity:   quantity,
	}
	if amenity != nil {
		ticket.AmenityRequestedID = &amenity.ID
	}
	if err := ticket.SetEntities(entities); err != nil {
		return TriageResult{}, err
	}
	if err := ticket.SetHistory(history); err != nil {
		return TriageResult{}, err
	}
	if err := s.DB.Create(&ticket).Error; err != nil {
		return TriageResult{}, fmt.Errorf("create ticket: %w", err)
	}

	return TriageResult{Reply: reply, RequestID: ticket.ID, ChatHistory: history}, nil
}
