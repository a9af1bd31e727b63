package models

import (
	"gorm.io/gorm"
)

// Reservation status values, shared by personnel and visitor rows.
// Allowed transitions: reserved -> cancelled -> reserved (the cancelled
// row is reused, keeping its primary key), reserved -> attended and
// reserved -> no_show via driver attendance marking.
const (
	ReservationReserved  = "reserved"
	ReservationAttended  = "attended"
	ReservationNoShow    = "no_show"
	ReservationCancelled = "cancelled"
)

// PersonnelReservation is a seat held by an employee on a trip, keyed
// by their destination posting. The composite unique index makes the
// duplicate pre-check race-safe: a second concurrent insert for the
// same (posting, trip) fails at the database.
type PersonnelReservation struct {
	gorm.Model

	PostingID  uint   `json:"posting_id" gorm:"uniqueIndex:idx_posting_trip"`
	TripID     uint   `json:"trip_id" gorm:"uniqueIndex:idx_posting_trip"`
	SeatNumber int    `json:"seat_number"`
	Status     string `json:"status" gorm:"default:reserved"`

	Posting DestinationPosting `gorm:"foreignKey:PostingID" json:"posting,omitempty"`
	Trip    Trip               `gorm:"foreignKey:TripID" json:"trip,omitempty"`
}

// VisitorReservation is a seat held by a visitor on a trip. Visitors
// reserve each leg of a round trip independently.
type VisitorReservation struct {
	gorm.Model

	VisitorID  uint   `json:"visitor_id" gorm:"uniqueIndex:idx_visitor_trip"`
	TripID     uint   `json:"trip_id" gorm:"uniqueIndex:idx_visitor_trip"`
	SeatNumber int    `json:"seat_number"`
	Status     string `json:"status" gorm:"default:reserved"`

	Visitor Visitor `gorm:"foreignKey:VisitorID" json:"visitor,omitempty"`
	Trip    Trip    `gorm:"foreignKey:TripID" json:"trip,omitempty"`
}
