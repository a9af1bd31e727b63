// internal/models/vehicle.go
package models

import (
	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	Plate      string `json:"plate" gorm:"uniqueIndex"`
	Make       string `json:"make"`
	TotalSeats int    `json:"total_seats"` // capacity used to seed assignment availability
	CompanyID  uint   `json:"company_id"`
	InService  bool   `json:"in_service" gorm:"default:true"`
}
