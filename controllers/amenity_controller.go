package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"conci-backend/models"
	"conci-backend/services"
	"conci-backend/utils"
)

type AmenityController struct {
	Amenities *services.AmenityService
}

func NewAmenityController(svc *services.AmenityService) *AmenityController {
	return &AmenityController{Amenities: svc}
}

type AmenityPayload struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price"`
	IsAvailable *bool   `json:"is_available"`
}

func (ctrl *AmenityController) List(c *gin.Context) {
	amenities, err := ctrl.Amenities.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, amenities)
}

func (ctrl *AmenityController) Create(c *gin.Context) {
	var payload AmenityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "amenity name is required")
		return
	}

	available := true
	if payload.IsAvailable != nil {
		available = *payload.IsAvailable
	}
	amenity := models.Amenity{Name: payload.Name, Price: payload.Price, IsAvailable: available}
	if err := ctrl.Amenities.Create(&amenity); err != nil {
		if isDuplicateError(err) {
			utils.JSONError(c, http.StatusConflict, "an amenity with that name already exists")
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, amenity)
}

func (ctrl *AmenityController) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var payload AmenityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "amenity name is required")
		return
	}

	available := true
	if payload.IsAvailable != nil {
		available = *payload.IsAvailable
	}
	amenity, err := ctrl.Amenities.Update(id, models.Amenity{
		Name: payload.Name, Price: payload.Price, IsAvailable: available,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, amenity)
}

func (ctrl *AmenityController) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := ctrl.Amenities.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Amenity deleted successfully."})
}
