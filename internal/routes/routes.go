package routes

import (
	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"staff_transit/internal/cache"
	"staff_transit/internal/controllers"
	"staff_transit/internal/queue"
	"staff_transit/internal/services"
)

// handlers bundles the controllers the route groups share.
type handlers struct {
	trips        *controllers.TripController
	links        *controllers.RoundTripController
	reservations *controllers.ReservationController
	attendance   *controllers.AttendanceController
	catalog      *controllers.CatalogController
	templates    *controllers.TemplateController
	reports      *controllers.ReportController
}

func SetupRouter(db *gorm.DB, seats *cache.Seats, events *queue.Publisher) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlogger.SetLogger())

	h := &handlers{
		trips:        controllers.NewTripController(services.NewTripService(db, seats, events)),
		links:        controllers.NewRoundTripController(services.NewRoundTripService(db)),
		reservations: controllers.NewReservationController(services.NewReservationService(db, seats, events)),
		attendance:   controllers.NewAttendanceController(services.NewAttendanceService(db)),
		catalog:      controllers.NewCatalogController(services.NewCatalogService(db, seats)),
		templates:    controllers.NewTemplateController(services.NewTemplateService(db)),
		reports:      controllers.NewReportController(services.NewReportService(db)),
	}

	AuthRoutes(r)
	CatalogRoutes(r, h)
	AdminRoutes(r, h)
	StaffRoutes(r, h)
	DriverRoutes(r, h)

	return r
}
