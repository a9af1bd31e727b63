package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"staff_transit/internal/services"
)

// TripController exposes the trip lifecycle operations.
type TripController struct {
	trips *services.TripService
}

func NewTripController(trips *services.TripService) *TripController {
	return &TripController{trips: trips}
}

// CreateTrip schedules a single trip.
func (tc *TripController) CreateTrip(c *gin.Context) {
	var input services.TripInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid trip input: " + err.Error()})
		return
	}
	trip, err := tc.trips.CreateTrip(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"trip": trip})
}

// CreateRoundTrip schedules an outbound/return pair and links them.
func (tc *TripController) CreateRoundTrip(c *gin.Context) {
	var input struct {
		Outbound services.TripInput `json:"outbound" binding:"required"`
		Return   services.TripInput `json:"return" binding:"required"`
		Notes    string             `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid round trip input: " + err.Error()})
		return
	}
	pair, err := tc.trips.CreateRoundTrip(c.Request.Context(), input.Outbound, input.Return, input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	logrus.WithField("outbound_id", pair.Outbound.ID).
		WithField("return_id", pair.Return.ID).
		Info("round trip created")
	c.JSON(http.StatusCreated, pair)
}

// GetTrip returns one trip with its nested projection.
func (tc *TripController) GetTrip(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	trip, err := tc.trips.GetTrip(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// UpdateTrip applies field updates to a trip.
func (tc *TripController) UpdateTrip(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input services.TripUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update"})
		return
	}
	trip, err := tc.trips.UpdateTrip(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// UpdateAssignment applies crew or status changes to an assignment.
func (tc *TripController) UpdateAssignment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input services.AssignmentUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update"})
		return
	}
	assignment, err := tc.trips.UpdateAssignment(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assignment": assignment})
}

// DeleteTrip removes an unpaired trip and its assignment.
func (tc *TripController) DeleteTrip(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := tc.trips.DeleteTrip(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted"})
}

// DeleteTripWithReturn removes a round-trip pair and its link.
func (tc *TripController) DeleteTripWithReturn(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := tc.trips.DeleteTripWithReturn(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Round trip deleted"})
}
