package services

import (
	"context"
	"strings"
	"testing"

	"conci-backend/models"
)

func TestParseClassification(t *testing.T) {
	raw := `{"intent": "amenity_request", "entities": {"amenity_name": "Towel", "quantity": 2, "query": "can I get 2 towels"}, "conci_response": "I'll have 2 towels delivered."}`

	got, err := parseClassification(raw)
	if err != nil {
		t.Fatalf("parseClassification: %v", err)
	}
	if got.Intent != models.TypeAmenityRequest {
		t.Errorf("intent = %q, want amenity_request", got.Intent)
	}
	if got.Entities.AmenityName != "Towel" || got.Entities.Quantity != 2 {
		t.Errorf("entities = %+v, want Towel x2", got.Entities)
	}
	if got.Reply != "I'll have 2 towels delivered." {
		t.Errorf("reply = %q", got.Reply)
	}
}

func TestParseClassification_SurroundingProse(t *testing.T) {
	raw := "Sure! Here is the JSON you asked for:\n```json\n" +
		`{"intent": "casual_chat", "entities": {"query": "hi"}, "conci_response": "Hello!"}` +
		"\n```\nLet me know if you need anything else."

	got, err := parseClassification(raw)
	if err != nil {
		t.Fatalf("parseClassification: %v", err)
	}
	if got.Intent != models.TypeCasualChat || got.Reply != "Hello!" {
		t.Errorf("got %+v, want casual_chat/Hello!", got)
	}
}

func TestParseClassification_UnknownIntentNormalized(t *testing.T) {
	raw := `{"intent": "pizza_delivery", "entities": {"query": "x"}, "conci_response": "Hmm."}`
	got, err := parseClassification(raw)
	if err != nil {
		t.Fatalf("parseClassification: %v", err)
	}
	if got.Intent != models.TypeGeneralInquiry {
		t.Errorf("intent = %q, want general_inquiry for unknown intents", got.Intent)
	}
}

func TestParseClassification_NoJSON(t *testing.T) {
	if _, err := parseClassification("I am sorry, I cannot help with that."); err == nil {
		t.Fatal("expected error for output with no JSON object")
	}
}

func TestParseClassification_EmptyReplyDefaulted(t *testing.T) {
	raw := `{"intent": "casual_chat", "entities": {"query": "hi"}, "conci_response": ""}`
	got, err := parseClassification(raw)
	if err != nil {
		t.Fatalf("parseClassification: %v", err)
	}
	if got.Reply == "" {
		t.Error("empty model reply must be replaced with a default")
	}
}

func TestClassify_NoAPIKeyFallsBack(t *testing.T) {
	c := NewOpenAIClassifier("")

	got := c.Classify(context.Background(), "is breakfast included?", nil)
	if got.Intent != models.TypeGeneralInquiry {
		t.Errorf("intent = %q, want general_inquiry fallback", got.Intent)
	}
	if got.Entities.Query != "is breakfast included?" {
		t.Errorf("entities query = %q, want the guest message", got.Entities.Query)
	}
	if got.Reply != fallbackOffline {
		t.Errorf("reply = %q, want offline fallback", got.Reply)
	}
}

func TestBuildSystemInstruction_Catalog(t *testing.T) {
	instr := buildSystemInstruction([]AmenityInfo{
		{Name: "Towel", Price: 2},
		{Name: "Water Bottle", Price: 1.5},
	})
	if !strings.Contains(instr, "Towel ($2.00)") || !strings.Contains(instr, "Water Bottle ($1.50)") {
		t.Errorf("instruction missing priced catalog entries:\n%s", instr)
	}

	empty := buildSystemInstruction(nil)
	if !strings.Contains(empty, "No specific amenities are currently listed as available.") {
		t.Error("empty catalog must be stated explicitly")
	}
}
