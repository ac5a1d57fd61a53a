package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"conci-backend/services"
	"conci-backend/utils"
)

type HotelController struct {
	Hotels *services.HotelService
}

func NewHotelController(svc *services.HotelService) *HotelController {
	return &HotelController{Hotels: svc}
}

func (ctrl *HotelController) Summary(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	summary, err := ctrl.Hotels.Summary(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}

func (ctrl *HotelController) GetConfig(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	entries, err := ctrl.Hotels.GetConfig(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, entries)
}

type ConfigPayload struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

func (ctrl *HotelController) SetConfig(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var payload ConfigPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "configuration key is required")
		return
	}

	entry, err := ctrl.Hotels.SetConfig(id, payload.Key, payload.Value)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, entry)
}
