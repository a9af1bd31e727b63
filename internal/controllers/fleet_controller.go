package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"staff_transit/internal/config"
	"staff_transit/internal/models"
)

// CreateVehicle registers a vehicle under a company.
func CreateVehicle(c *gin.Context) {
	var input struct {
		Plate      string `json:"plate" binding:"required"`
		Make       string `json:"make"`
		TotalSeats int    `json:"total_seats" binding:"required"`
		CompanyID  uint   `json:"company_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle input: " + err.Error()})
		return
	}

	vehicle := models.Vehicle{
		Plate:      input.Plate,
		Make:       input.Make,
		TotalSeats: input.TotalSeats,
		CompanyID:  input.CompanyID,
		InService:  true,
	}
	if err := config.DB.Create(&vehicle).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

// ListVehicles lists all vehicles.
func ListVehicles(c *gin.Context) {
	var vehicles []models.Vehicle
	if err := config.DB.Find(&vehicles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing vehicles: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

// UpdateVehicle modifies a vehicle's mutable fields.
func UpdateVehicle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}

	var input struct {
		Make       *string `json:"make"`
		TotalSeats *int    `json:"total_seats"`
		InService  *bool   `json:"in_service"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update"})
		return
	}
	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.TotalSeats != nil {
		vehicle.TotalSeats = *input.TotalSeats
	}
	if input.InService != nil {
		vehicle.InService = *input.InService
	}
	config.DB.Save(&vehicle)
	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// DeleteVehicle removes a vehicle.
func DeleteVehicle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var vehicle models.Vehicle
	if err := config.DB.First(&vehicle, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
		return
	}
	config.DB.Delete(&vehicle)
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}

// CreateCompany registers a transport contractor.
func CreateCompany(c *gin.Context) {
	var input models.Company
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := config.DB.Create(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create company: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"company": input})
}

// GetCompany retrieves a company with its fleet and drivers.
func GetCompany(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var company models.Company
	if err := config.DB.Preload("Vehicles").Preload("Drivers").First(&company, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Company not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": company})
}

// ListCompanies lists all companies.
func ListCompanies(c *gin.Context) {
	var companies []models.Company
	if err := config.DB.Find(&companies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch companies"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": companies})
}

// ListDrivers lists all drivers with their company.
func ListDrivers(c *gin.Context) {
	var drivers []models.Driver
	if err := config.DB.Preload("Company").Find(&drivers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch drivers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": drivers})
}

// RegisterVisitor records a visitor and hands back their booking
// reference.
func RegisterVisitor(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Document string `json:"document" binding:"required"`
		HostName string `json:"host_name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	visitor := models.Visitor{
		Name:       input.Name,
		Document:   input.Document,
		BookingRef: uuid.NewString(),
		HostName:   input.HostName,
	}
	if err := config.DB.Create(&visitor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not register visitor: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"visitor": visitor})
}

// CreatePosting opens a destination posting for an employee, closing
// any posting still open. An employee has one open posting at a time.
func CreatePosting(c *gin.Context) {
	var input struct {
		EmployeeID    uint `json:"employee_id" binding:"required"`
		DestinationID uint `json:"destination_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var posting models.DestinationPosting
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var employee models.Employee
		if err := tx.First(&employee, input.EmployeeID).Error; err != nil {
			return err
		}
		var destination models.Destination
		if err := tx.First(&destination, input.DestinationID).Error; err != nil {
			return err
		}
		now := time.Now()
		if err := tx.Model(&models.DestinationPosting{}).
			Where("employee_id = ? AND end_date IS NULL", input.EmployeeID).
			Update("end_date", now).Error; err != nil {
			return err
		}
		posting = models.DestinationPosting{
			EmployeeID:    input.EmployeeID,
			DestinationID: input.DestinationID,
			StartDate:     now,
		}
		return tx.Create(&posting).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee or destination not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create posting: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"posting": posting})
}

// ListPostings lists postings, optionally only the open ones.
func ListPostings(c *gin.Context) {
	query := config.DB.Preload("Employee").Preload("Destination")
	if c.Query("open") == "true" {
		query = query.Where("end_date IS NULL")
	}
	var postings []models.DestinationPosting
	if err := query.Find(&postings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch postings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": postings})
}
