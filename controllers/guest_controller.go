package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"conci-backend/models"
	"conci-backend/services"
	"conci-backend/utils"
)

type GuestController struct {
	Triage   *services.TriageService
	Requests *services.RequestService
}

func NewGuestController(triage *services.TriageService, requests *services.RequestService) *GuestController {
	return &GuestController{Triage: triage, Requests: requests}
}

type GuestCommandPayload struct {
	HotelID    uint   `json:"hotel_id" binding:"required"`
	RoomNumber string `json:"room_number" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

// ProcessCommand handles one inbound guest message. The guest always
// receives a conversational reply, even when classification degrades.
func (ctrl *GuestController) ProcessCommand(c *gin.Context) {
	var payload GuestCommandPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "missing message, hotel_id, or room_number")
		return
	}

	result, err := ctrl.Triage.ProcessGuestMessage(c.Request.Context(), payload.HotelID, payload.RoomNumber, payload.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"conci_response": result.Reply,
		"request_id":     result.RequestID,
		"chat_history":   result.ChatHistory,
	})
}

// GetUpdates is the guest-side poll: the room's current chat history
// plus any requests resolved since last_check.
func (ctrl *GuestController) GetUpdates(c *gin.Context) {
	hotelID, ok := parseUintParam(c, "hotelID")
	if !ok {
		return
	}
	roomNumber := c.Param("roomNumber")

	latest, err := ctrl.Triage.LatestTicket(hotelID, roomNumber)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	history := []models.ChatTurn{}
	var latestID uint
	if latest != nil {
		history = latest.History()
		latestID = latest.ID
	}

	resolved := []models.GuestRequest{}
	if raw := c.Query("last_check"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "last_check must be RFC 3339")
			return
		}
		resolved, err = ctrl.Requests.CompletedSince(hotelID, roomNumber, since)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"latest_request_id": latestID,
		"chat_history":      history,
		"resolved_requests": resolved,
		"current_timestamp": time.Now().Format(time.RFC3339),
	})
}
