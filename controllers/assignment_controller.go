package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"conci-backend/models"
	"conci-backend/services"
	"conci-backend/utils"
)

type AssignmentController struct {
	Assignments *services.AssignmentService
}

func NewAssignmentController(svc *services.AssignmentService) *AssignmentController {
	return &AssignmentController{Assignments: svc}
}

type AssignmentPayload struct {
	HotelID         uint      `json:"hotel_id"`
	RoomNumber      string    `json:"room_number"`
	GuestNames      string    `json:"guest_names"`
	CheckInTime     time.Time `json:"check_in_time"`
	CheckOutTime    time.Time `json:"check_out_time"`
	BaseBillAmount  float64   `json:"base_bill_amount"`
	TotalBillAmount float64   `json:"total_bill_amount"`
	AmountPaid      float64   `json:"amount_paid"`
	Status          string    `json:"status"`
}

func (p AssignmentPayload) toModel() models.GuestRoomAssignment {
	return models.GuestRoomAssignment{
		HotelID:         p.HotelID,
		RoomNumber:      p.RoomNumber,
		GuestNames:      p.GuestNames,
		CheckInTime:     p.CheckInTime,
		CheckOutTime:    p.CheckOutTime,
		BaseBillAmount:  p.BaseBillAmount,
		TotalBillAmount: p.TotalBillAmount,
		AmountPaid:      p.AmountPaid,
		Status:          p.Status,
	}
}

// Create runs the booking conflict validator before persisting; an
// overlapping window is rejected with a 409 naming the room and window.
func (ctrl *AssignmentController) Create(c *gin.Context) {
	var payload AssignmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid assignment payload: "+err.Error())
		return
	}

	assignment := payload.toModel()
	if err := ctrl.Assignments.Create(&assignment); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, assignment)
}

func (ctrl *AssignmentController) List(c *gin.Context) {
	hotelID, ok := hotelIDFromQuery(c)
	if !ok {
		return
	}
	assignments, err := ctrl.Assignments.GetAll(hotelID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, assignments)
}

func (ctrl *AssignmentController) GetByID(c *gin.Context) {
	hotelID, ok := hotelIDFromQuery(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	assignment, err := ctrl.Assignments.GetByID(hotelID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, assignment)
}

func (ctrl *AssignmentController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var payload AssignmentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid assignment payload: "+err.Error())
		return
	}
	if payload.HotelID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "hotel_id is required")
		return
	}

	assignment, err := ctrl.Assignments.Update(payload.HotelID, id, payload.toModel())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, assignment)
}

func (ctrl *AssignmentController) Delete(c *gin.Context) {
	hotelID, ok := hotelIDFromQuery(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Assignments.Delete(hotelID, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Assignment deleted successfully."})
}

type StayTransitionPayload struct {
	HotelID uint `json:"hotel_id" binding:"required"`
}

func (ctrl *AssignmentController) CheckIn(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var payload StayTransitionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "hotel_id is required")
		return
	}

	assignment, err := ctrl.Assignments.CheckIn(payload.HotelID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, assignment)
}

func (ctrl *AssignmentController) CheckOut(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var payload StayTransitionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "hotel_id is required")
		return
	}

	assignment, err := ctrl.Assignments.CheckOut(payload.HotelID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, assignment)
}
