package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"staff_transit/internal/controllers"
	"staff_transit/internal/middleware"
)

func AdminRoutes(r *gin.Engine, h *handlers) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	admin.Use(middleware.WithTimeout(10 * time.Second))
	{
		admin.POST("/vehicles", controllers.CreateVehicle)
		admin.GET("/vehicles", controllers.ListVehicles)
		admin.PATCH("/vehicles/:id", controllers.UpdateVehicle)
		admin.DELETE("/vehicles/:id", controllers.DeleteVehicle)

		admin.POST("/companies", controllers.CreateCompany)
		admin.GET("/companies", controllers.ListCompanies)
		admin.GET("/companies/:id", controllers.GetCompany)
		admin.GET("/drivers", controllers.ListDrivers)

		admin.POST("/destinations", h.catalog.CreateDestination)
		admin.POST("/postings", controllers.CreatePosting)
		admin.GET("/postings", controllers.ListPostings)

		admin.POST("/trips", h.trips.CreateTrip)
		admin.POST("/trips/round", h.trips.CreateRoundTrip)
		admin.GET("/trips/awaiting-return", h.links.ListTripsWithReturnInfo)
		admin.PATCH("/trips/:id", h.trips.UpdateTrip)
		admin.PATCH("/assignments/:id", h.trips.UpdateAssignment)
		admin.DELETE("/trips/:id", h.trips.DeleteTrip)
		admin.DELETE("/trips/:id/with-return", h.trips.DeleteTripWithReturn)

		admin.POST("/links", h.links.CreateLink)
		admin.DELETE("/links/:id", h.links.CancelLink)
		admin.DELETE("/links/:id/hard", h.links.DeleteLink)

		admin.POST("/templates", h.templates.CreateTemplate)
		admin.GET("/templates", h.templates.ListTemplates)
		admin.DELETE("/templates/:id", h.templates.DeleteTemplate)
		admin.POST("/templates/:id/apply", h.templates.ApplyTemplate)

		admin.GET("/reports/occupancy", h.reports.Occupancy)
		admin.GET("/reports/destinations/:id/attendance", h.reports.Attendance)
		admin.GET("/reports/companies", h.reports.TripsByCompany)
	}
}
