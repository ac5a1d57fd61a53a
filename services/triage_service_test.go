package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"conci-backend/models"
)

func setupTriage(t *testing.T, stub *stubClassifier) (*TriageService, models.Hotel) {
	t.Helper()
	db := openTestDB(t)
	hotel := seedHotel(t, db)
	amenities := NewAmenityService(db)
	return NewTriageService(db, stub, amenities, DefaultCommitmentPolicy()), hotel
}

func TestProcessGuestMessage_CasualChatCreatesCompletedPlaceholder(t *testing.T) {
	stub := &stubClassifier{result: Classification{
		Intent: models.TypeCasualChat,
		Reply:  "Hello! How can I help you today?",
	}}
	svc, hotel := setupTriage(t, stub)

	result, err := svc.ProcessGuestMessage(context.Background(), hotel.ID, "101", "hi there")
	if err != nil {
		t.Fatalf("ProcessGuestMessage: %v", err)
	}
	if result.RequestID == 0 {
		t.Fatal("expected a ticket to anchor the conversation")
	}

	var ticket models.GuestRequest
	if err := svc.DB.First(&ticket, result.RequestID).Error; err != nil {
		t.Fatalf("load ticket: %v", err)
	}
	if ticket.Status != models.RequestCompleted {
		t.Errorf("status = %q, want %q", ticket.Status, models.RequestCompleted)
	}
	if ticket.RequestType != models.TypeCasualChat {
		t.Errorf("request_type = %q, want %q", ticket.RequestType, models.TypeCasualChat)
	}

	var pending int64
	svc.DB.Model(&models.GuestRequest{}).Where("status = ?", models.RequestPending).Count(&pending)
	if pending != 0 {
		t.Errorf("casual chat created %d pending tickets, want 0", pending)
	}

	want := []models.ChatTurn{
		{Role: "user", Text: "hi there"},
		{Role: "model", Text: "Hello! How can I help you today?"},
	}
	if got := result.ChatHistory; len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("chat history = %v, want %v", got, want)
	}
}

func TestProcessGuestMessage_CasualChatAppendsToLatestTicket(t *testing.T) {
	stub := &stubClassifier{result: Classification{
		Intent: models.TypeCasualChat,
		Reply:  "You're welcome!",
	}}
	svc, hotel := setupTriage(t, stub)

	existing := models.GuestRequest{
		HotelID:     hotel.ID,
		RoomNumber:  "101",
		RawText:     "AC is broken",
		Status:      models.RequestPending,
		RequestType: models.TypeMaintenance,
	}
	if err := existing.SetHistory([]models.ChatTurn{
		{Role: "user", Text: "AC is broken"},
		{Role: "model", Text: "I've logged that for maintenance."},
	}); err != nil {
		t.Fatalf("set history: %v", err)
	}
	if err := svc.DB.Create(&existing).Error; err != nil {
		t.Fatalf("seed ticket: %v", err)
	}

	result, err := svc.ProcessGuestMessage(context.Background(), hotel.ID, "101", "thanks")
	if err != nil {
		t.Fatalf("ProcessGuestMessage: %v", err)
	}
	if result.RequestID != existing.ID {
		t.Errorf("request_id = %d, want latest ticket %d", result.RequestID, existing.ID)
	}
	if len(result.ChatHistory) != 4 {
		t.Fatalf("chat history length = %d, want 4", len(result.ChatHistory))
	}

	var count int64
	svc.DB.Model(&models.GuestRequest{}).Count(&count)
	if count != 1 {
		t.Errorf("ticket count = %d, want 1 (no new ticket for casual chat)", count)
	}

	var reloaded models.GuestRequest
	svc.DB.First(&reloaded, existing.ID)
	if got := reloaded.History(); len(got) != 4 || got[3].Text != "You're welcome!" {
		t.Errorf("persisted history = %v, want appended turns", got)
	}
}

func TestProcessGuestMessage_ActionableCreatesPendingTicket(t *testing.T) {
	stub := &stubClassifier{result: Classification{
		Intent: models.TypeMaintenance,
		Reply:  "I've reported the leaky faucet to our maintenance team.",
	}}
	svc, hotel := setupTriage(t, stub)

	result, err := svc.ProcessGuestMessage(context.Background(), hotel.ID, "204", "the faucet is leaking")
	if err != nil {
		t.Fatalf("ProcessGuestMessage: %v", err)
	}

	var ticket models.GuestRequest
	if err := svc.DB.First(&ticket, result.RequestID).Error; err != nil {
		t.Fatalf("load ticket: %v", err)
	}
	if ticket.Status != models.RequestPending {
		t.Errorf("status = %q, want %q", ticket.Status, models.RequestPending)
	}
	if ticket.RequestType != models.TypeMaintenance {
		t.Errorf("request_type = %q, want %q", ticket.RequestType, models.TypeMaintenance)
	}
	if ticket.BillAdded {
		t.Error("new ticket must start with bill_added = false")
	}
	if e := ticket.Entities(); e.Query != "the faucet is leaking" {
		t.Errorf("entities query = %q, want raw message", e.Query)
	}
}

func TestProcessGuestMessage_AmenityDeliveryOpensTicket(t *testing.T) {
	stub := &stubClassifier{result: Classification{
		Intent: models.TypeAmenityRequest,
		Entities: models.IntentEntities{
			Query:       "can I get 2 extra towels",
			AmenityName: "Towel",
			Quantity:    2,
		},
		Reply: "I'll have 2 towels delivered, $4.00 will be added to your bill.",
	}}
	svc, hotel := setupTriage(t, stub)
	towel := seedAmenity(t, svc.DB, "Towel", 2.00, true)

	result, err := svc.ProcessGuestMessage(context.Background(), hotel.ID, "101", "can I get 2 extra towels")
	if err != nil {
		t.Fatalf("ProcessGuestMessage: %v", err)
	}

	var ticket models.GuestRequest
	if err := svc.DB.First(&ticket, result.RequestID).Error; err != nil {
		t.Fatalf("load ticket: %v", err)
	}
	if ticket.Status != models.RequestPending || ticket.RequestType != models.TypeAmenityRequest {
		t.Errorf("got status=%q type=%q, want pending amenity_request", ticket.Status, ticket.RequestType)
	}
	if ticket.AmenityRequestedID == nil || *ticket.AmenityRequestedID != towel.ID {
		t.Errorf("amenity_requested_id = %v, want %d", ticket.AmenityRequestedID, towel.ID)
	}
	if ticket.AmenityQuantity != 2 {
		t.Errorf("amenity_quantity = %d, want 2", ticket.AmenityQuantity)
	}
}

func TestProcessGuestMessage_AmenityPriceQuestionIsNotActionable(t *testing.T) {
	stub := &stubClassifier{result: Classification{
		Intent: models.TypeAmenityRequest,
		Entities: models.IntentEntities{
			Query:       "how much is a towel",
			AmenityName: "Towel",
		},
		Reply: "A towel costs $2.00. Just let me know if you'd like one!",
	}}
	svc, hotel := setupTriage(t, stub)
	seedAmenity(t, svc.DB, "Towel", 2.00, true)

	result, err := svc.ProcessGuestMessage(context.Background(), hotel.ID, "101", "how much is a towel")
	if err != nil {
		t.Fatalf("ProcessGuestMessage: %v", err)
	}

	var ticket models.GuestRequest
	svc.DB.First(&ticket, result.RequestID)
	if ticket.Status != models.RequestCompleted || ticket.RequestType != models.TypeCasualChat {
		t.Errorf("informational amenity exchange created status=%q type=%q, want completed casual_chat",
			ticket.Status, ticket.RequestType)
	}
}

func TestProcessGuestMessage_UnresolvedAmenityDowngraded(t *testing.T) {
	stub := &stubClassifier{result: Classification{
		Intent: models.TypeAmenityRequest,
		Entities: models.IntentEntities{
			Query:       "I'd like a sauna pass delivered",
			AmenityName: "Sauna Pass",
			Quantity:    1,
		},
		Reply: "I'll have a sauna pass delivered right away.",
	}}
	svc, hotel := setupTriage(t, stub)

	result, err := svc.ProcessGuestMessage(context.Background(), hotel.ID, "101", "I'd like a sauna pass delivered")
	if err != nil {
		t.Fatalf("ProcessGuestMessage: %v", err)
	}
	if !strings.Contains(result.Reply, "Sauna Pass") || !strings.Contains(result.Reply, "not currently available") {
		t.Errorf("reply = %q, want corrective downgrade message", result.Reply)
	}

	var ticket models.GuestRequest
	svc.DB.First(&ticket, result.RequestID)
	if ticket.RequestType != models.TypeGeneralInquiry {
		t.Errorf("request_type = %q, want %q after downgrade", ticket.RequestType, models.TypeGeneralInquiry)
	}
	if ticket.AmenityRequestedID != nil {
		t.Error("downgraded ticket must not reference an amenity")
	}
}

func TestProcessGuestMessage_AmenityIntentWithoutName(t *testing.T) {
	stub := &stubClassifier{result: Classification{
		Intent:   models.TypeAmenityRequest,
		Entities: models.IntentEntities{Query: "can I get one of those"},
		Reply:    "Certainly, I'll send it up.",
	}}
	svc, hotel := setupTriage(t, stub)

	result, err := svc.ProcessGuestMessage(context.Background(), hotel.ID, "101", "can I get one of those")
	if err != nil {
		t.Fatalf("ProcessGuestMessage: %v", err)
	}
	if !strings.Contains(result.Reply, "didn't catch which one") {
		t.Errorf("reply = %q, want clarification prompt", result.Reply)
	}

	var ticket models.GuestRequest
	svc.DB.First(&ticket, result.RequestID)
	if ticket.RequestType != models.TypeGeneralInquiry || ticket.Status != models.RequestPending {
		t.Errorf("got status=%q type=%q, want pending general_inquiry", ticket.Status, ticket.RequestType)
	}
}

func TestProcessGuestMessage_CatalogPassedToClassifier(t *testing.T) {
	stub := &stubClassifier{result: Classification{Intent: models.TypeCasualChat, Reply: "Hi!"}}
	svc, hotel := setupTriage(t, stub)
	seedAmenity(t, svc.DB, "Towel", 2.00, true)
	seedAmenity(t, svc.DB, "Minibar Key", 5.00, false)

	if _, err := svc.ProcessGuestMessage(context.Background(), hotel.ID, "101", "hello"); err != nil {
		t.Fatalf("ProcessGuestMessage: %v", err)
	}
	if len(stub.gotCatalog) != 1 || stub.gotCatalog[0].Name != "Towel" {
		t.Errorf("classifier catalog = %v, want only available amenities", stub.gotCatalog)
	}
}

func TestProcessGuestMessage_Validation(t *testing.T) {
	stub := &stubClassifier{result: Classification{Intent: models.TypeCasualChat, Reply: "Hi!"}}
	svc, hotel := setupTriage(t, stub)

	if _, err := svc.ProcessGuestMessage(context.Background(), hotel.ID, "101", "   "); !errors.Is(err, ErrValidation) {
		t.Errorf("empty message: err = %v, want ErrValidation", err)
	}
	if _, err := svc.ProcessGuestMessage(context.Background(), hotel.ID, "", "hi"); !errors.Is(err, ErrValidation) {
		t.Errorf("empty room: err = %v, want ErrValidation", err)
	}
	if _, err := svc.ProcessGuestMessage(context.Background(), 9999, "101", "hi"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown hotel: err = %v, want ErrNotFound", err)
	}
	if stub.calls != 0 {
		t.Errorf("classifier called %d times for invalid input, want 0", stub.calls)
	}
}

// A degraded classifier still produces a reply and a conversation home;
// triage never surfaces the remote failure.
func TestProcessGuestMessage_FallbackClassification(t *testing.T) {
	svc, hotel := setupTriage(t, nil)
	svc.Classifier = NewOpenAIClassifier("") // no API key: always fallback

	result, err := svc.ProcessGuestMessage(context.Background(), hotel.ID, "101", "is the pool open?")
	if err != nil {
		t.Fatalf("ProcessGuestMessage with degraded classifier: %v", err)
	}
	if result.Reply == "" {
		t.Error("expected a conversational reply from the fallback path")
	}

	var ticket models.GuestRequest
	if err := svc.DB.First(&ticket, result.RequestID).Error; err != nil {
		t.Fatalf("load ticket: %v", err)
	}
	if ticket.RequestType != models.TypeGeneralInquiry {
		t.Errorf("request_type = %q, want %q", ticket.RequestType, models.TypeGeneralInquiry)
	}
}
