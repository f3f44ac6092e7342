package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/moom-ugrd-24f/poke-n-pump-server/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to the HTTP taxonomy: not-found -> 404,
// conflict/invalid state -> 400, anything else -> 500. The body carries a
// human-readable message plus the underlying error.
func respondError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrInvalidState):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"message": message, "error": err.Error()})
}

// idParam parses a numeric path parameter; on failure it writes the 400
// itself and returns false.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name, "error": err.Error()})
		return 0, false
	}
	return uint(id), true
}
