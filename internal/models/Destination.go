package models

import (
	"gorm.io/gorm"
)

// Destination is a site trips run to. Coordinates are accepted as a
// GeoJSON point on the API and stored as WKB.
type Destination struct {
	gorm.Model

	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Region      string `json:"region"`

	// Point geometry (SRID 4326), GeoJSON in, WKB at rest.
	Geometry []byte `gorm:"type:bytea" json:"-"`
}
