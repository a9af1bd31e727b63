package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"staff_transit/internal/models"
)

// AttendanceService covers the driver-facing flow: stamping actual
// departure and arrival times and marking rider attendance. A return
// leg may not depart while any outbound rider is still in reserved
// state.
type AttendanceService struct {
	db *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{db: db}
}

// MarkActualDeparture stamps the real departure time and flips the
// assignment to en_route. For a return leg it first verifies every
// outbound rider has an attendance status other than reserved.
func (s *AttendanceService) MarkActualDeparture(ctx context.Context, tripID uint) (*models.Trip, error) {
	var trip models.Trip
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&trip, tripID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTripNotFound
			}
			return err
		}
		if trip.ActualDeparture != nil {
			return ErrAlreadyDeparted
		}

		// A return leg only departs once the outbound manifest is fully
		// marked.
		var link models.RoundTripLink
		err := tx.Where("return_trip_id = ? AND status = ?", tripID, models.LinkActive).
			First(&link).Error
		if err == nil {
			pending, err := reservedCount(tx, link.OutboundTripID)
			if err != nil {
				return err
			}
			if pending > 0 {
				return ErrAttendancePending
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now()
		trip.ActualDeparture = &now
		if err := tx.Save(&trip).Error; err != nil {
			return err
		}
		return tx.Model(&models.Assignment{}).Where("id = ?", trip.AssignmentID).
			Update("status", models.AssignmentEnRoute).Error
	})
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// MarkActualArrival stamps the real arrival time and flips the
// assignment to completed.
func (s *AttendanceService) MarkActualArrival(ctx context.Context, tripID uint) (*models.Trip, error) {
	var trip models.Trip
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&trip, tripID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTripNotFound
			}
			return err
		}
		if trip.ActualDeparture == nil {
			return ErrNotDeparted
		}
		now := time.Now()
		trip.ActualArrival = &now
		if err := tx.Save(&trip).Error; err != nil {
			return err
		}
		return tx.Model(&models.Assignment{}).Where("id = ?", trip.AssignmentID).
			Update("status", models.AssignmentCompleted).Error
	})
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// MarkAttendance flips a reserved row to attended or no_show. riderID
// is an employee id for personnel and a visitor id for visitors.
func (s *AttendanceService) MarkAttendance(ctx context.Context, tripID, riderID uint, riderKind string, attended bool) error {
	target := models.ReservationNoShow
	if attended {
		target = models.ReservationAttended
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch riderKind {
		case RiderPersonnel:
			postings := tx.Model(&models.DestinationPosting{}).
				Select("id").Where("employee_id = ?", riderID)
			var r models.PersonnelReservation
			err := tx.Where("trip_id = ? AND posting_id IN (?)", tripID, postings).
				First(&r).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			if err != nil {
				return err
			}
			if r.Status != models.ReservationReserved {
				return ErrNotReserved
			}
			return tx.Model(&r).Update("status", target).Error
		case RiderVisitor:
			var r models.VisitorReservation
			err := tx.Where("trip_id = ? AND visitor_id = ?", tripID, riderID).
				First(&r).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			if err != nil {
				return err
			}
			if r.Status != models.ReservationReserved {
				return ErrNotReserved
			}
			return tx.Model(&r).Update("status", target).Error
		default:
			return ErrReservationNotFound
		}
	})
}

// CanStartReturn reports whether every rider of the outbound leg has
// been marked, i.e. no row is still reserved.
func (s *AttendanceService) CanStartReturn(ctx context.Context, outboundID uint) (bool, error) {
	pending, err := reservedCount(s.db.WithContext(ctx), outboundID)
	if err != nil {
		return false, err
	}
	return pending == 0, nil
}
