package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"staff_transit/internal/services"
)

// ReservationController exposes seat reservation operations for both
// rider kinds.
type ReservationController struct {
	reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) *ReservationController {
	return &ReservationController{reservations: reservations}
}

// ReservePersonnelSeat reserves a seat for an employee, optionally on
// the linked return leg too.
func (rc *ReservationController) ReservePersonnelSeat(c *gin.Context) {
	var input struct {
		TripID            uint `json:"trip_id" binding:"required"`
		SeatNumber        int  `json:"seat_number" binding:"required"`
		EmployeeID        uint `json:"employee_id" binding:"required"`
		AlsoReserveReturn bool `json:"also_reserve_return"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := rc.reservations.ReservePersonnelSeat(
		c.Request.Context(), input.TripID, input.SeatNumber, input.EmployeeID, input.AlsoReserveReturn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"reservation": res})
}

// ReserveVisitorSeat reserves a single-leg seat for a visitor.
func (rc *ReservationController) ReserveVisitorSeat(c *gin.Context) {
	var input struct {
		TripID     uint `json:"trip_id" binding:"required"`
		SeatNumber int  `json:"seat_number" binding:"required"`
		VisitorID  uint `json:"visitor_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := rc.reservations.ReserveVisitorSeat(
		c.Request.Context(), input.TripID, input.SeatNumber, input.VisitorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"reservation": res})
}

// CancelReservation frees a seat by (trip, seat number).
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	var input struct {
		TripID     uint   `json:"trip_id" binding:"required"`
		SeatNumber int    `json:"seat_number" binding:"required"`
		RiderKind  string `json:"rider_kind" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := rc.reservations.CancelReservation(
		c.Request.Context(), input.TripID, input.SeatNumber, input.RiderKind); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled"})
}

// ChangeReservation moves an employee to another trip or seat.
func (rc *ReservationController) ChangeReservation(c *gin.Context) {
	var input struct {
		EmployeeID    uint `json:"employee_id" binding:"required"`
		NewTripID     uint `json:"new_trip_id" binding:"required"`
		NewSeatNumber int  `json:"new_seat_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := rc.reservations.ChangeReservation(
		c.Request.Context(), input.EmployeeID, input.NewTripID, input.NewSeatNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": res})
}

// ListTripReservations returns the manifest for a trip.
func (rc *ReservationController) ListTripReservations(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	personnel, visitors, err := rc.reservations.ListTripReservations(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"personnel": personnel, "visitors": visitors})
}
