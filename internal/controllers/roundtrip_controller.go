package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"staff_transit/internal/services"
)

// RoundTripController exposes the outbound/return linkage operations.
type RoundTripController struct {
	links *services.RoundTripService
}

func NewRoundTripController(links *services.RoundTripService) *RoundTripController {
	return &RoundTripController{links: links}
}

// CreateLink pairs an existing outbound trip with a return trip.
func (rc *RoundTripController) CreateLink(c *gin.Context) {
	var input struct {
		OutboundTripID uint   `json:"outbound_trip_id" binding:"required"`
		ReturnTripID   uint   `json:"return_trip_id" binding:"required"`
		Notes          string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	link, err := rc.links.CreateLink(c.Request.Context(), input.OutboundTripID, input.ReturnTripID, input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"link": link})
}

// HasReturn reports whether a trip has an active return leg.
func (rc *RoundTripController) HasReturn(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	exists, returnID, err := rc.links.HasReturn(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := gin.H{"exists": exists}
	if exists {
		resp["return_trip_id"] = returnID
	}
	c.JSON(http.StatusOK, resp)
}

// GetReturnTrip resolves a trip's return leg.
func (rc *RoundTripController) GetReturnTrip(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	trip, err := rc.links.GetReturnTrip(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// GetOutboundTrip resolves the outbound leg of a return trip.
func (rc *RoundTripController) GetOutboundTrip(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	trip, err := rc.links.GetOutboundTrip(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip": trip})
}

// CancelLink soft-cancels a trip's active return link.
func (rc *RoundTripController) CancelLink(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := rc.links.CancelLink(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Link cancelled"})
}

// DeleteLink hard-deletes a trip's return link rows.
func (rc *RoundTripController) DeleteLink(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := rc.links.DeleteLink(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Link deleted"})
}

// ListTripsWithReturnInfo lists open trips with their return legs.
func (rc *RoundTripController) ListTripsWithReturnInfo(c *gin.Context) {
	trips, err := rc.links.ListTripsWithReturnInfo(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": trips})
}
