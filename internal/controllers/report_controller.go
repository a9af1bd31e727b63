package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"staff_transit/internal/services"
)

// ReportController serves the aggregate read queries.
type ReportController struct {
	reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

// dateRange parses from/to query params, defaulting to the last 30 days.
func dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from, to := now.AddDate(0, 0, -30), now
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date, expected YYYY-MM-DD"})
			return from, to, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date, expected YYYY-MM-DD"})
			return from, to, false
		}
		to = parsed
	}
	return from, to, true
}

// Occupancy reports fill rates for trips in a date range.
func (rc *ReportController) Occupancy(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	rows, err := rc.reports.OccupancyByDateRange(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// Attendance aggregates reservation outcomes for a destination.
func (rc *ReportController) Attendance(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	from, to, ok := dateRange(c)
	if !ok {
		return
	}
	summary, err := rc.reports.AttendanceByDestination(c.Request.Context(), id, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// TripsByCompany counts trips per operating company.
func (rc *ReportController) TripsByCompany(c *gin.Context) {
	rows, err := rc.reports.TripsByCompany(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}
