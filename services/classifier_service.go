package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"conci-backend/models"
)

// AmenityInfo is the slice of the catalog the classifier is grounded
// on: just the name and price of each available amenity.
type AmenityInfo struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Classification is the classifier's verdict on one guest message.
type Classification struct {
	Intent   string                `json:"intent"`
	Entities models.IntentEntities `json:"entities"`
	Reply    string                `json:"conci_response"`
}

// Classifier turns a raw guest message into an intent, entities, and a
// natural-language reply. Implementations must never return an error
// path to callers: any failure collapses into a fallback
// Classification, so triage can assume classification always succeeds.
type Classifier interface {
	Classify(ctx context.Context, message string, catalog []AmenityInfo) Classification
}

// OpenAIClassifier calls a chat-completion model. It is treated as an
// unreliable remote collaborator: bounded timeout, client-side rate
// limit, and a safe fallback on every failure mode.
type OpenAIClassifier struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
}

func NewOpenAIClassifier(apiKey string) *OpenAIClassifier {
	model := strings.TrimSpace(os.Getenv("OPENAI_MODEL"))
	if model == "" {
		model = openai.GPT4o
	}

	timeout := 10 * time.Second
	if raw := strings.TrimSpace(os.Getenv("CLASSIFIER_TIMEOUT_SEC")); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	c := &OpenAIClassifier{
		model:   model,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Limit(3), 5),
	}
	if apiKey != "" {
		c.client = openai.NewClient(apiKey)
	}
	return c
}

func fallback(message, reply string) Classification {
	return Classification{
		Intent:   models.TypeGeneralInquiry,
		Entities: models.IntentEntities{Query: message},
		Reply:    reply,
	}
}

const (
	fallbackOffline    = "I'm sorry, my AI capabilities are currently offline. Please inform the staff."
	fallbackConnection = "I'm having trouble connecting right now. Please try again in a moment."
	fallbackMalformed  = "I received an unexpected response. Could you please rephrase your request?"
)

func buildSystemInstruction(catalog []AmenityInfo) string {
	parts := make([]string, 0, len(catalog))
	for _, a := range catalog {
		parts = append(parts, fmt.Sprintf("%s ($%.2f)", a.Name, a.Price))
	}
	amenitiesInfo := "No specific amenities are currently listed as available."
	if len(parts) > 0 {
		amenitiesInfo = "Available amenities: " + strings.Join(parts, ", ") + "."
	}

	return `You are an AI hotel concierge named Conci. Your primary goal is to assist guests with their requests.
Analyze the guest's message to determine their intent and extract relevant entities.

Here are the possible request types you can identify:
- 'amenity_request': The guest is asking for a specific item that is an amenity (e.g., "water bottle", "fresh towels", "extra pillow").
- 'maintenance': The guest is reporting a problem that requires maintenance (e.g., "AC not working", "leaky faucet").
- 'repairs': The guest is reporting something broken that needs repair.
- 'housekeeping': The guest is requesting cleaning or supplies (e.g., "clean my room", "more soap").
- 'room_service': The guest is asking for food or drinks (e.g., "order breakfast", "bring coffee", "menu").
- 'concierge': The guest is asking for concierge-style assistance (e.g., "taxi", "restaurant recommendation", "directions").
- 'general_inquiry': A question or statement that doesn't fit other categories but needs a helpful response (e.g., "What time is checkout?").
- 'casual_chat': A greeting, farewell, or conversational filler that requires no action (e.g., "Hi", "Thank you").

` + amenitiesInfo + `

When an 'amenity_request' is identified, also extract 'amenity_name' (must exactly match one of the available amenities if possible) and 'quantity' (default to 1 if not specified).

IMPORTANT: If an 'amenity_request' is identified, you MUST include the amenity's price in your 'conci_response' and state that the cost will be added to the guest's bill upon completion ONLY IF THE GUEST IS CLEARLY REQUESTING THE AMENITY FOR DELIVERY. If the guest is only asking about price or availability, provide the information without implying a delivery or a bill charge.

If the guest asks for information you cannot provide, say so and offer to help with hotel-related inquiries instead. Do not make up information.

Respond with ONLY a JSON object of this exact shape:
{"intent": "request_type_string", "entities": {"amenity_name": "string (if amenity_request)", "quantity": 1, "query": "original user message"}, "conci_response": "Your natural language response to the guest."}`
}

// Classify sends the message to the model. On any failure (no API key,
// rate/transport error, empty choices, unparseable body) it returns a
// general_inquiry fallback; it never returns an error.
func (c *OpenAIClassifier) Classify(ctx context.Context, message string, catalog []AmenityInfo) Classification {
	if c.client == nil {
		log.Println("classifier: no API key configured, returning fallback")
		return fallback(message, fallbackOffline)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		log.Printf("classifier: rate limiter wait failed: %v", err)
		return fallback(message, fallbackConnection)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildSystemInstruction(catalog)},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		Temperature: 0.1,
	})
	if err != nil {
		log.Printf("classifier: chat completion failed: %v", err)
		return fallback(message, fallbackConnection)
	}
	if len(resp.Choices) == 0 {
		log.Println("classifier: response contained no choices")
		return fallback(message, fallbackMalformed)
	}

	result, err := parseClassification(resp.Choices[0].Message.Content)
	if err != nil {
		log.Printf("classifier: parse failed: %v", err)
		return fallback(message, fallbackMalformed)
	}

	if result.Entities.Query == "" {
		result.Entities.Query = message
	}
	return result
}

// parseClassification extracts the JSON object from the raw model
// output, tolerating surrounding prose or code fences.
func parseClassification(raw string) (Classification, error) {
	jsonStart := strings.Index(raw, "{")
	jsonEnd := strings.LastIndex(raw, "}")
	if jsonStart == -1 || jsonEnd <= jsonStart {
		return Classification{}, fmt.Errorf("no JSON object in model output")
	}

	var result Classification
	if err := json.Unmarshal([]byte(raw[jsonStart:jsonEnd+1]), &result); err != nil {
		return Classification{}, fmt.Errorf("decode model output: %w", err)
	}

	if !models.IsValidRequestType(result.Intent) {
		result.Intent = models.TypeGeneralInquiry
	}
	if result.Reply == "" {
		result.Reply = "I apologize, I couldn't fully understand that. Can you please rephrase?"
	}
	return result, nil
}
