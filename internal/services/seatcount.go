package services

import (
	"errors"

	"gorm.io/gorm"

	"staff_transit/internal/models"
)

// reservedCount counts active (status reserved) rows for a trip across
// the personnel and visitor tables.
func reservedCount(tx *gorm.DB, tripID uint) (int64, error) {
	var personnel, visitors int64
	if err := tx.Model(&models.PersonnelReservation{}).
		Where("trip_id = ? AND status = ?", tripID, models.ReservationReserved).
		Count(&personnel).Error; err != nil {
		return 0, err
	}
	if err := tx.Model(&models.VisitorReservation{}).
		Where("trip_id = ? AND status = ?", tripID, models.ReservationReserved).
		Count(&visitors).Error; err != nil {
		return 0, err
	}
	return personnel + visitors, nil
}

// tripCapacity resolves the trip's assignment and the seat capacity of
// its vehicle.
func tripCapacity(tx *gorm.DB, tripID uint) (*models.Trip, *models.Assignment, int, error) {
	var trip models.Trip
	if err := tx.First(&trip, tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, 0, ErrTripNotFound
		}
		return nil, nil, 0, err
	}
	var assignment models.Assignment
	if err := tx.First(&assignment, trip.AssignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, 0, ErrNoCapacity
		}
		return nil, nil, 0, err
	}
	var vehicle models.Vehicle
	if err := tx.First(&vehicle, assignment.VehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, 0, ErrNoCapacity
		}
		return nil, nil, 0, err
	}
	if vehicle.TotalSeats <= 0 {
		return nil, nil, 0, ErrNoCapacity
	}
	return &trip, &assignment, vehicle.TotalSeats, nil
}

// recomputeAvailableSeats rewrites the assignment's available_seats as
// capacity minus active reservations. It must run inside the same
// transaction as the mutation it follows so the cached counter can
// never be overwritten with a stale value by a concurrent writer.
func recomputeAvailableSeats(tx *gorm.DB, tripID uint) (int, error) {
	_, assignment, total, err := tripCapacity(tx, tripID)
	if err != nil {
		return 0, err
	}
	active, err := reservedCount(tx, tripID)
	if err != nil {
		return 0, err
	}
	available := total - int(active)
	if err := tx.Model(&models.Assignment{}).Where("id = ?", assignment.ID).
		Update("available_seats", available).Error; err != nil {
		return 0, err
	}
	return available, nil
}

// seatHeld reports whether a seat number is actively reserved on a
// trip by any rider. Seat numbers are scoped per trip.
func seatHeld(tx *gorm.DB, tripID uint, seatNumber int) (bool, error) {
	var n int64
	if err := tx.Model(&models.PersonnelReservation{}).
		Where("trip_id = ? AND seat_number = ? AND status = ?", tripID, seatNumber, models.ReservationReserved).
		Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}
	if err := tx.Model(&models.VisitorReservation{}).
		Where("trip_id = ? AND seat_number = ? AND status = ?", tripID, seatNumber, models.ReservationReserved).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
