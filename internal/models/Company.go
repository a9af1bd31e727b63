// internal/models/company.go
package models

import (
	"gorm.io/gorm"
)

// Company represents a transport contractor that operates
// vehicles and employs the drivers assigned to trips.
type Company struct {
	gorm.Model

	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"`
	Email   string `gorm:"unique" json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`

	Vehicles []Vehicle `gorm:"foreignKey:CompanyID" json:"vehicles,omitempty"`
	Drivers  []Driver  `gorm:"foreignKey:CompanyID" json:"drivers,omitempty"`
}
