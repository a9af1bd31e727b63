package models

import (
	"time"

	"gorm.io/gorm"
)

// Trip is one scheduled journey to a destination. Actual departure and
// arrival stay nil until the driver marks them; a nil arrival means the
// trip is still open.
type Trip struct {
	gorm.Model

	DepartureDate      time.Time  `json:"departure_date"`
	ArrivalDate        time.Time  `json:"arrival_date"`
	ScheduledDeparture string     `json:"scheduled_departure"` // "HH:MM", local time
	ActualDeparture    *time.Time `json:"actual_departure"`
	ActualArrival      *time.Time `json:"actual_arrival"`

	DestinationID uint `json:"destination_id"`
	AssignmentID  uint `json:"assignment_id"`

	Destination Destination `gorm:"foreignKey:DestinationID" json:"destination,omitempty"`
	Assignment  Assignment  `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
}
