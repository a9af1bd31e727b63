package models

import (
	"gorm.io/gorm"
)

// Visitor is an external rider without a destination posting.
// BookingRef is the opaque code handed to reception desks.
type Visitor struct {
	gorm.Model
	Name       string `json:"name"`
	Document   string `json:"document" gorm:"index"`
	BookingRef string `json:"booking_ref" gorm:"uniqueIndex"`
	HostName   string `json:"host_name"`
}
