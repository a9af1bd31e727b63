// Package services holds the booking and trip lifecycle logic. Every
// multi-row sequence runs inside a single database transaction so a
// failing step never leaves orphaned rows behind.
package services

import "errors"

// Rider kinds accepted by reservation operations.
const (
	RiderPersonnel = "personnel"
	RiderVisitor   = "visitor"
)

// Sentinel errors. Controllers translate these into HTTP statuses;
// anything else is a storage failure and maps to 500.
var (
	ErrNotPosted            = errors.New("employee has no open destination posting")
	ErrDuplicateReservation = errors.New("rider already holds a reservation on this trip")
	ErrSeatTaken            = errors.New("seat is already taken on this trip")
	ErrTripFull             = errors.New("no seats left on this trip")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrNotReserved          = errors.New("reservation is not in reserved state")

	ErrTripNotFound        = errors.New("trip not found")
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrDriverNotFound      = errors.New("driver not found")
	ErrDestinationNotFound = errors.New("destination not found")
	ErrVisitorNotFound     = errors.New("visitor not found")
	ErrTemplateNotFound    = errors.New("trip template not found")
	ErrNoCapacity          = errors.New("no seat capacity recorded for this trip's vehicle")

	ErrLinkExists      = errors.New("outbound trip already has an active return link")
	ErrLinkNotFound    = errors.New("no active return link for this trip")
	ErrSelfLink        = errors.New("a trip cannot be its own return leg")
	ErrHasActiveReturn = errors.New("trip has an active return link; delete the pair instead")

	ErrAlreadyDeparted   = errors.New("trip departure already recorded")
	ErrNotDeparted       = errors.New("trip has not departed yet")
	ErrAttendancePending = errors.New("outbound riders still unmarked; return cannot depart")
)
