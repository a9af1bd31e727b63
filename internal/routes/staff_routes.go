package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"staff_transit/internal/controllers"
	"staff_transit/internal/middleware"
)

func StaffRoutes(r *gin.Engine, h *handlers) {
	staff := r.Group("/staff")
	staff.Use(middleware.RequireAuthWithRole("staff", "admin"))
	staff.Use(middleware.WithTimeout(10 * time.Second))
	{
		staff.POST("/reservations/personnel", h.reservations.ReservePersonnelSeat)
		staff.POST("/reservations/visitor", h.reservations.ReserveVisitorSeat)
		staff.POST("/reservations/cancel", h.reservations.CancelReservation)
		staff.POST("/reservations/change", h.reservations.ChangeReservation)
		staff.GET("/trips/:id/reservations", h.reservations.ListTripReservations)

		staff.POST("/visitors", controllers.RegisterVisitor)
	}
}
