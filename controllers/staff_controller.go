package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"conci-backend/services"
	"conci-backend/utils"
)

type StaffController struct {
	Staff *services.StaffService
}

func NewStaffController(svc *services.StaffService) *StaffController {
	return &StaffController{Staff: svc}
}

type CreateStaffPayload struct {
	FullName string `json:"full_name"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	HotelID  uint   `json:"hotel_id" binding:"required"`
	Category string `json:"category"`
}

// Create is the explicit staff provisioning endpoint.
func (ctrl *StaffController) Create(c *gin.Context) {
	var payload CreateStaffPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "username, password and hotel_id are required")
		return
	}

	staff, err := ctrl.Staff.CreateStaff(payload.FullName, payload.Username, payload.Password, payload.HotelID, payload.Category)
	if err != nil {
		if isDuplicateError(err) {
			utils.JSONError(c, http.StatusConflict, "that username is already taken")
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, staff)
}

func (ctrl *StaffController) List(c *gin.Context) {
	hotelID, ok := hotelIDFromQuery(c)
	if !ok {
		return
	}
	staff, err := ctrl.Staff.GetAll(hotelID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, staff)
}

type LoginPayload struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ctrl *StaffController) Login(c *gin.Context) {
	var payload LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "username and password are required")
		return
	}

	staff, err := ctrl.Staff.Authenticate(payload.Username, payload.Password)
	if err != nil {
		// Don't distinguish unknown user from bad password.
		utils.JSONError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"staff":   staff,
	})
}
