package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"conci-backend/models"
	"conci-backend/services"
	"conci-backend/utils"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{Rooms: svc}
}

type RoomPayload struct {
	HotelID    uint   `json:"hotel_id" binding:"required"`
	RoomNumber string `json:"room_number" binding:"required"`
	RoomType   string `json:"room_type"`
	Status     string `json:"status"`
}

func (ctrl *RoomController) List(c *gin.Context) {
	hotelID, ok := hotelIDFromQuery(c)
	if !ok {
		return
	}
	rooms, err := ctrl.Rooms.GetAll(hotelID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctrl *RoomController) Create(c *gin.Context) {
	var payload RoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "hotel_id and room_number are required")
		return
	}

	room := models.Room{
		HotelID:    payload.HotelID,
		RoomNumber: payload.RoomNumber,
		RoomType:   payload.RoomType,
		Status:     payload.Status,
	}
	if err := ctrl.Rooms.Create(&room); err != nil {
		if isDuplicateError(err) {
			utils.JSONError(c, http.StatusConflict, "that room number already exists for this hotel")
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

type RoomStatusPayload struct {
	HotelID uint   `json:"hotel_id" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// UpdateStatus is the housekeeping action (cleaning, maintenance, back
// to available).
func (ctrl *RoomController) UpdateStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var payload RoomStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "hotel_id and status are required")
		return
	}

	room, err := ctrl.Rooms.UpdateStatus(payload.HotelID, id, payload.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctrl *RoomController) Delete(c *gin.Context) {
	hotelID, ok := hotelIDFromQuery(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Rooms.Delete(hotelID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room deleted successfully."})
}
