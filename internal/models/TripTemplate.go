package models

import (
	"gorm.io/gorm"
)

// TripTemplate is a saved driver/vehicle/company/destination tuple for
// quickly re-creating recurring trips. UseCount tracks how many trips
// were created from it.
type TripTemplate struct {
	gorm.Model

	Code          string `json:"code" gorm:"uniqueIndex"` // UUID assigned on create
	Name          string `json:"name"`
	DriverID      uint   `json:"driver_id"`
	VehicleID     uint   `json:"vehicle_id"`
	CompanyID     uint   `json:"company_id"`
	DestinationID uint   `json:"destination_id"`
	DefaultTime   string `json:"default_time"` // "HH:MM"
	UseCount      int    `json:"use_count"`
}
