package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"staff_transit/internal/services"
)

// respondError maps service sentinels onto HTTP statuses. Timeouts get
// their own status so clients can offer a retry prompt; the underlying
// statement may still have completed server-side.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out, please retry"})
	case errors.Is(err, services.ErrTripNotFound),
		errors.Is(err, services.ErrReservationNotFound),
		errors.Is(err, services.ErrLinkNotFound),
		errors.Is(err, services.ErrVehicleNotFound),
		errors.Is(err, services.ErrDriverNotFound),
		errors.Is(err, services.ErrDestinationNotFound),
		errors.Is(err, services.ErrVisitorNotFound),
		errors.Is(err, services.ErrTemplateNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateReservation),
		errors.Is(err, services.ErrSeatTaken),
		errors.Is(err, services.ErrTripFull),
		errors.Is(err, services.ErrLinkExists),
		errors.Is(err, services.ErrHasActiveReturn),
		errors.Is(err, services.ErrAlreadyDeparted),
		errors.Is(err, services.ErrNotDeparted),
		errors.Is(err, services.ErrNotReserved),
		errors.Is(err, services.ErrAttendancePending):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotPosted),
		errors.Is(err, services.ErrNoCapacity),
		errors.Is(err, services.ErrSelfLink):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error: " + err.Error()})
	}
}

// paramID parses a numeric URL parameter, writing 400 when malformed.
func paramID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}
