package models

import (
	"time"

	"gorm.io/gorm"
)

// DestinationPosting is an employee's open-ended posting to a
// destination. EndDate nil means the posting is current; an employee
// has at most one open posting at a time.
type DestinationPosting struct {
	gorm.Model

	EmployeeID    uint       `json:"employee_id" gorm:"index"`
	DestinationID uint       `json:"destination_id"`
	StartDate     time.Time  `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`

	Employee    Employee    `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Destination Destination `gorm:"foreignKey:DestinationID" json:"destination,omitempty"`
}
