package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"staff_transit/internal/middleware"
)

func DriverRoutes(r *gin.Engine, h *handlers) {
	driver := r.Group("/driver")
	driver.Use(middleware.RequireAuthWithRole("driver", "admin"))
	driver.Use(middleware.WithTimeout(10 * time.Second))
	{
		driver.POST("/trips/:id/depart", h.attendance.MarkDeparture)
		driver.POST("/trips/:id/arrive", h.attendance.MarkArrival)
		driver.POST("/trips/:id/attendance", h.attendance.MarkAttendance)
		driver.GET("/trips/:id/can-start-return", h.attendance.CanStartReturn)
	}
}
