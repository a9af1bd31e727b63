package models

import (
	"gorm.io/gorm"
)

// Employee is a personnel rider. Their reservations are scoped through
// the currently open destination posting, not the employee row itself.
type Employee struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"unique"`
	User        User   `gorm:"foreignKey:UserID"`
	Name        string `json:"name"`
	BadgeNumber string `json:"badge_number" gorm:"uniqueIndex"`
}
