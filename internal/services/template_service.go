package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"staff_transit/internal/models"
)

// TemplateService manages saved trip templates for recurring runs.
type TemplateService struct {
	db *gorm.DB
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{db: db}
}

// TemplateInput describes a template to save.
type TemplateInput struct {
	Name          string `json:"name" binding:"required"`
	DriverID      uint   `json:"driver_id" binding:"required"`
	VehicleID     uint   `json:"vehicle_id" binding:"required"`
	CompanyID     uint   `json:"company_id" binding:"required"`
	DestinationID uint   `json:"destination_id" binding:"required"`
	DefaultTime   string `json:"default_time"`
}

// CreateTemplate saves a template, validating its references.
func (s *TemplateService) CreateTemplate(ctx context.Context, in TemplateInput) (*models.TripTemplate, error) {
	db := s.db.WithContext(ctx)
	var vehicle models.Vehicle
	if err := db.First(&vehicle, in.VehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	var driver models.Driver
	if err := db.First(&driver, in.DriverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, err
	}
	tpl := models.TripTemplate{
		Code:          uuid.NewString(),
		Name:          in.Name,
		DriverID:      in.DriverID,
		VehicleID:     in.VehicleID,
		CompanyID:     in.CompanyID,
		DestinationID: in.DestinationID,
		DefaultTime:   in.DefaultTime,
	}
	if err := db.Create(&tpl).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

// ListTemplates returns all templates, most used first.
func (s *TemplateService) ListTemplates(ctx context.Context) ([]models.TripTemplate, error) {
	var templates []models.TripTemplate
	if err := s.db.WithContext(ctx).Order("use_count DESC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// DeleteTemplate removes a template.
func (s *TemplateService) DeleteTemplate(ctx context.Context, templateID uint) error {
	result := s.db.WithContext(ctx).Delete(&models.TripTemplate{}, templateID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// ApplyTemplate creates a trip from a template for the given dates and
// bumps the template's usage counter atomically.
func (s *TemplateService) ApplyTemplate(ctx context.Context, templateID uint, departureDate, arrivalDate time.Time) (*models.Trip, error) {
	var trip *models.Trip
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tpl models.TripTemplate
		if err := tx.First(&tpl, templateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTemplateNotFound
			}
			return err
		}
		var err error
		trip, err = createTrip(tx, TripInput{
			DriverID:           tpl.DriverID,
			VehicleID:          tpl.VehicleID,
			CompanyID:          tpl.CompanyID,
			DestinationID:      tpl.DestinationID,
			DepartureDate:      departureDate,
			ArrivalDate:        arrivalDate,
			ScheduledDeparture: tpl.DefaultTime,
		})
		if err != nil {
			return err
		}
		return tx.Model(&models.TripTemplate{}).Where("id = ?", tpl.ID).
			UpdateColumn("use_count", gorm.Expr("use_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return trip, nil
}
