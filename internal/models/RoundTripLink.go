package models

import (
	"gorm.io/gorm"
)

// Round-trip link status values.
const (
	LinkActive    = "active"
	LinkCancelled = "cancelled"
)

// RoundTripLink pairs an outbound trip with its return leg. At most one
// active link may exist per outbound trip; a partial unique index on
// (outbound_trip_id) WHERE status = 'active' backs the in-transaction
// check (see config.InitDB).
type RoundTripLink struct {
	gorm.Model

	OutboundTripID uint   `json:"outbound_trip_id" gorm:"index"`
	ReturnTripID   uint   `json:"return_trip_id" gorm:"index"`
	Status         string `json:"status" gorm:"default:active"`
	Notes          string `json:"notes"`

	OutboundTrip Trip `gorm:"foreignKey:OutboundTripID" json:"outbound_trip,omitempty"`
	ReturnTrip   Trip `gorm:"foreignKey:ReturnTripID" json:"return_trip,omitempty"`
}
