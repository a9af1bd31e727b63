package routes

import (
	"github.com/gin-gonic/gin"

	"staff_transit/internal/middleware"
)

// CatalogRoutes are read-only and open to any authenticated user.
func CatalogRoutes(r *gin.Engine, h *handlers) {
	catalog := r.Group("/catalog")
	catalog.Use(middleware.RequireAuth())
	{
		catalog.GET("/destinations", h.catalog.ListDestinations)
		catalog.GET("/destinations/:id", h.catalog.GetDestination)
		catalog.GET("/trips", h.catalog.ListOpenTrips)
		catalog.GET("/trips/:id", h.trips.GetTrip)
		catalog.GET("/trips/:id/has-return", h.links.HasReturn)
		catalog.GET("/trips/:id/return", h.links.GetReturnTrip)
		catalog.GET("/trips/:id/outbound", h.links.GetOutboundTrip)
	}
}
