package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"staff_transit/internal/services"
)

// CatalogController serves the destination and open-trip catalog.
type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// CreateDestination stores a destination with an optional GeoJSON point.
func (cc *CatalogController) CreateDestination(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Region      string `json:"region"`
		Geometry    string `json:"geometry"` // GeoJSON point
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateDestination: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	dest, err := cc.catalog.CreateDestination(
		c.Request.Context(), input.Name, input.Description, input.Region, input.Geometry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid geometry: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"destination": dest})
}

// ListDestinations lists all destinations.
func (cc *CatalogController) ListDestinations(c *gin.Context) {
	destinations, err := cc.catalog.ListDestinations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": destinations})
}

// GetDestination returns one destination.
func (cc *CatalogController) GetDestination(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	dest, err := cc.catalog.GetDestination(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"destination": dest})
}

// ListOpenTrips lists trips that have not arrived yet with seat
// availability.
func (cc *CatalogController) ListOpenTrips(c *gin.Context) {
	trips, err := cc.catalog.ListOpenTrips(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": trips})
}
