package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"staff_transit/internal/services"
)

// AttendanceController exposes the driver-facing trip flow.
type AttendanceController struct {
	attendance *services.AttendanceService
}

func NewAttendanceController(attendance *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendance: attendance}
}

// MarkDeparture stamps the real departure of a trip.
func (ac *AttendanceController) MarkDeparture(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	trip, err := ac.attendance.MarkActualDeparture(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// MarkArrival stamps the real arrival of a trip.
func (ac *AttendanceController) MarkArrival(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	trip, err := ac.attendance.MarkActualArrival(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// MarkAttendance flips a rider's reservation to attended or no_show.
func (ac *AttendanceController) MarkAttendance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input struct {
		RiderID   uint   `json:"rider_id" binding:"required"`
		RiderKind string `json:"rider_kind" binding:"required"`
		Attended  *bool  `json:"attended" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ac.attendance.MarkAttendance(
		c.Request.Context(), id, input.RiderID, input.RiderKind, *input.Attended); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attendance recorded"})
}

// CanStartReturn reports whether a return leg may depart.
func (ac *AttendanceController) CanStartReturn(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	ready, err := ac.attendance.CanStartReturn(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"can_start_return": ready})
}
