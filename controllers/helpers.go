package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/gin-gonic/gin"

	"conci-backend/services"
	"conci-backend/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP
// statuses. Unknown errors are logged and reported as 500s without
// leaking internals.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(c, http.StatusConflict, err.Error())
	default:
		log.Printf("internal error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "a server error occurred")
	}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// hotelIDFromQuery reads the explicit hotel scope every staff endpoint
// requires.
func hotelIDFromQuery(c *gin.Context) (uint, bool) {
	raw := c.Query("hotel_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "hotel_id query parameter is required")
		return 0, false
	}
	return uint(id), true
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
