package models

import (
	"gorm.io/gorm"
)

// Assignment status values.
const (
	AssignmentAssigned  = "assigned"
	AssignmentEnRoute   = "en_route"
	AssignmentCompleted = "completed"
)

// Assignment is the driver-vehicle-company row a trip references for
// crew and capacity. AvailableSeats is a recomputed cache, not the
// source of truth: it must equal the vehicle capacity minus the
// reserved rows for the trip after every reservation mutation.
type Assignment struct {
	gorm.Model

	DriverID  uint `json:"driver_id"`
	VehicleID uint `json:"vehicle_id"`
	CompanyID uint `json:"company_id"`

	AvailableSeats int    `json:"available_seats"`
	Status         string `json:"status" gorm:"default:assigned"`

	Driver  Driver  `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	Vehicle Vehicle `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}
