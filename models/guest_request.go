package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RequestPending    = "pending"
	RequestInProgress = "in_progress"
	RequestCompleted  = "completed"
	RequestCancelled  = "cancelled"
)

const (
	TypeMaintenance    = "maintenance"
	TypeRepairs        = "repairs"
	TypeHousekeeping   = "housekeeping"
	TypeRoomService    = "room_service"
	TypeConcierge      = "concierge"
	TypeAmenityRequest = "amenity_request"
	TypeGeneralInquiry = "general_inquiry"
	TypeCasualChat     = "casual_chat"
)

var requestStatuses = map[string]bool{
	RequestPending:    true,
	RequestInProgress: true,
	RequestCompleted:  true,
	RequestCancelled:  true,
}

var requestTypes = map[string]bool{
	TypeMaintenance:    true,
	TypeRepairs:        true,
	TypeHousekeeping:   true,
	TypeRoomService:    true,
	TypeConcierge:      true,
	TypeAmenityRequest: true,
	TypeGeneralInquiry: true,
	TypeCasualChat:     true,
}

// ActionableTypes are the request types that require staff follow-up
// and therefore open a pending ticket.
var ActionableTypes = []string{
	TypeMaintenance, TypeRepairs, TypeHousekeeping,
	TypeRoomService, TypeConcierge, TypeGeneralInquiry, TypeAmenityRequest,
}

func IsValidRequestStatus(s string) bool { return requestStatuses[s] }
func IsValidRequestType(s string) bool   { return requestTypes[s] }

// IsTerminalRequestStatus reports whether no further transitions are
// accepted from s.
func IsTerminalRequestStatus(s string) bool {
	return s == RequestCompleted || s == RequestCancelled
}

// ChatTurn is one entry of a ticket's conversation log. Role is "user"
// for the guest and "model" for Conci.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// IntentEntities is the structured payload extracted by the classifier.
// Query is always set; AmenityName/Quantity only for amenity intents
// (zero values mean "not an amenity request").
type IntentEntities struct {
	Query       string `json:"query"`
	AmenityName string `json:"amenity_name,omitempty"`
	Quantity    int    `json:"quantity,omitempty"`
}

// GuestRequest is one service ticket. The chat log for a room's
// conversation rides on whichever ticket is most recent; there is no
// separate conversation entity.
type GuestRequest struct {
	gorm.Model

	HotelID    uint   `json:"hotelId" gorm:"column:hotel_id;index"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;index;type:varchar(10)"`

	RawText           string         `json:"rawText" gorm:"column:raw_text;type:text"`
	AIIntent          string         `json:"aiIntent" gorm:"column:ai_intent;size:255"`
	AIEntities        datatypes.JSON `json:"aiEntities" gorm:"column:ai_entities"`
	ConciResponseText string         `json:"conciResponseText" gorm:"column:conci_response_text;type:text"`

	Status      string `json:"status" gorm:"size:20;default:pending"`
	RequestType string `json:"requestType" gorm:"column:request_type;size:50;default:general_inquiry"`

	AmenityRequestedID *uint `json:"amenityRequestedId,omitempty" gorm:"column:amenity_requested_id"`
	AmenityQuantity    int   `json:"amenityQuantity" gorm:"column:amenity_quantity;default:1"`

	// BillAdded flips false->true at most once, together with exactly
	// one increment of the active assignment's total_bill_amount.
	BillAdded bool `json:"billAdded" gorm:"column:bill_added;default:false"`

	AssignedStaffID *uint  `json:"assignedStaffId,omitempty" gorm:"column:assigned_staff_id"`
	StaffNotes      string `json:"staffNotes" gorm:"column:staff_notes;type:text"`

	ChatHistory datatypes.JSON `json:"chatHistory" gorm:"column:chat_history"`

	Hotel            Hotel        `gorm:"foreignKey:HotelID" json:"-"`
	AmenityRequested *Amenity     `gorm:"foreignKey:AmenityRequestedID" json:"amenityRequested,omitempty"`
	AssignedStaff    *StaffMember `gorm:"foreignKey:AssignedStaffID" json:"assignedStaff,omitempty"`
}

// History decodes the chat log. A missing or corrupt blob yields an
// empty history rather than an error; the conversation restarts clean.
func (r *GuestRequest) History() []ChatTurn {
	if len(r.ChatHistory) == 0 {
		return []ChatTurn{}
	}
	var turns []ChatTurn
	if err := json.Unmarshal(r.ChatHistory, &turns); err != nil {
		return []ChatTurn{}
	}
	return turns
}

func (r *GuestRequest) SetHistory(turns []ChatTurn) error {
	raw, err := json.Marshal(turns)
	if err != nil {
		return err
	}
	r.ChatHistory = datatypes.JSON(raw)
	return nil
}

// Entities decodes the structured classifier payload; zero value on
// absent/corrupt data.
func (r *GuestRequest) Entities() IntentEntities {
	var e IntentEntities
	if len(r.AIEntities) > 0 {
		_ = json.Unmarshal(r.AIEntities, &e)
	}
	return e
}

func (r *GuestRequest) SetEntities(e IntentEntities) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	r.AIEntities = datatypes.JSON(raw)
	return nil
}
