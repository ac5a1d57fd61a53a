package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"conci-backend/services"
	"conci-backend/utils"
)

type RequestController struct {
	Requests *services.RequestService
	Staff    *services.StaffService
}

func NewRequestController(requests *services.RequestService, staff *services.StaffService) *RequestController {
	return &RequestController{Requests: requests, Staff: staff}
}

// List returns the tickets visible to the calling staff member.
func (ctrl *RequestController) List(c *gin.Context) {
	staffIDRaw := c.Query("staff_id")
	staffID, err := strconv.ParseUint(staffIDRaw, 10, 64)
	if err != nil || staffID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "staff_id query parameter is required")
		return
	}

	staff, err := ctrl.Staff.GetByID(uint(staffID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	tickets, err := ctrl.Staff.VisibleTickets(staff)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tickets)
}

func (ctrl *RequestController) GetByID(c *gin.Context) {
	hotelID, ok := hotelIDFromQuery(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	req, err := ctrl.Requests.GetByID(hotelID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"request":      req,
		"ai_entities":  req.Entities(),
		"chat_history": req.History(),
	})
}

type UpdateStatusPayload struct {
	HotelID   uint   `json:"hotel_id" binding:"required"`
	NewStatus string `json:"new_status" binding:"required"`
}

// UpdateStatus applies a lifecycle transition. On amenity completion
// the response carries the updated bill total, or the reason billing
// was skipped.
func (ctrl *RequestController) UpdateStatus(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var payload UpdateStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "hotel_id and new_status are required")
		return
	}

	result, err := ctrl.Requests.UpdateStatus(payload.HotelID, id, payload.NewStatus)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{
		"success": true,
		"message": "Status updated successfully.",
		"request": result.Request,
	}
	if result.BillApplied {
		resp["bill_amount"] = result.BillAmount
		resp["new_bill_total"] = result.NewBillTotal
	}
	if result.BillSkippedReason != "" {
		resp["bill_skipped_reason"] = result.BillSkippedReason
	}
	c.JSON(http.StatusOK, resp)
}

type UpdateNotesPayload struct {
	HotelID uint   `json:"hotel_id" binding:"required"`
	Notes   string `json:"notes"`
}

func (ctrl *RequestController) UpdateNotes(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var payload UpdateNotesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "hotel_id is required")
		return
	}

	req, err := ctrl.Requests.UpdateNotes(payload.HotelID, id, payload.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, req)
}

type AssignPayload struct {
	HotelID uint `json:"hotel_id" binding:"required"`
	StaffID uint `json:"staff_id"`
}

func (ctrl *RequestController) Assign(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var payload AssignPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "hotel_id is required")
		return
	}

	req, err := ctrl.Requests.Assign(payload.HotelID, id, payload.StaffID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, req)
}

// CheckNew backs the staff notification bell.
func (ctrl *RequestController) CheckNew(c *gin.Context) {
	hotelID, ok := hotelIDFromQuery(c)
	if !ok {
		return
	}

	count := int64(0)
	if raw := c.Query("last_check"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "last_check must be RFC 3339")
			return
		}
		count, err = ctrl.Requests.CountNewSince(hotelID, since)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"new_requests_exist": count > 0,
		"new_requests_count": count,
		"current_timestamp":  time.Now().Format(time.RFC3339),
	})
}
