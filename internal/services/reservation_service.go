package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"staff_transit/internal/models"
	"staff_transit/internal/queue"
)

// ReservationService reserves, cancels and moves seats for personnel
// and visitor riders, keeping each assignment's available_seats counter
// consistent with the reservation rows. All mutations and their seat
// recomputation commit atomically.
type ReservationService struct {
	db     *gorm.DB
	cache  SeatCache
	events EventPublisher
}

func NewReservationService(db *gorm.DB, cache SeatCache, events EventPublisher) *ReservationService {
	return &ReservationService{db: db, cache: cache, events: events}
}

// seatUpdate carries a freshly recomputed availability out of the
// transaction for the post-commit cache push.
type seatUpdate struct {
	tripID    uint
	available int
}

// openPosting resolves the employee's current destination posting
// (end_date IS NULL).
func openPosting(tx *gorm.DB, employeeID uint) (*models.DestinationPosting, error) {
	var posting models.DestinationPosting
	err := tx.Where("employee_id = ? AND end_date IS NULL", employeeID).First(&posting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotPosted
	}
	if err != nil {
		return nil, err
	}
	return &posting, nil
}

// isUniqueViolation matches the unique-index errors backing the
// duplicate pre-checks: postgres code 23505 in production, the sqlite
// message in tests.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint")
}

// ReservePersonnelSeat reserves seatNumber on tripID for the employee's
// open posting. With alsoReserveReturn set and an active return link
// present, the same seat is reserved on the return leg in the same
// transaction; any failure rolls back both legs.
func (s *ReservationService) ReservePersonnelSeat(ctx context.Context, tripID uint, seatNumber int, employeeID uint, alsoReserveReturn bool) (*models.PersonnelReservation, error) {
	var res *models.PersonnelReservation
	var updates []seatUpdate

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posting, err := openPosting(tx, employeeID)
		if err != nil {
			return err
		}
		res, err = reservePersonnelLeg(tx, posting.ID, tripID, seatNumber)
		if err != nil {
			return err
		}
		available, err := recomputeAvailableSeats(tx, tripID)
		if err != nil {
			return err
		}
		updates = append(updates, seatUpdate{tripID, available})

		if !alsoReserveReturn {
			return nil
		}
		returnID, ok, err := activeReturnTripID(tx, tripID)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if _, err := reservePersonnelLeg(tx, posting.ID, returnID, seatNumber); err != nil {
			return err
		}
		available, err = recomputeAvailableSeats(tx, returnID)
		if err != nil {
			return err
		}
		updates = append(updates, seatUpdate{returnID, available})
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.pushSeatUpdates(ctx, updates)
	s.announce(ctx, queue.ReservationConfirmedEvent{
		ReservationID:  res.ID,
		TripID:         tripID,
		SeatNumber:     seatNumber,
		RiderKind:      RiderPersonnel,
		RiderID:        employeeID,
		AvailableSeats: updates[0].available,
		ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
	})
	return res, nil
}

// ReserveVisitorSeat reserves a seat for a visitor on a single leg.
// Visitors book each leg of a round trip independently.
func (s *ReservationService) ReserveVisitorSeat(ctx context.Context, tripID uint, seatNumber int, visitorID uint) (*models.VisitorReservation, error) {
	var res *models.VisitorReservation
	var available int

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var visitor models.Visitor
		if err := tx.First(&visitor, visitorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVisitorNotFound
			}
			return err
		}
		var err error
		res, err = reserveVisitorLeg(tx, visitorID, tripID, seatNumber)
		if err != nil {
			return err
		}
		available, err = recomputeAvailableSeats(tx, tripID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.pushSeatUpdates(ctx, []seatUpdate{{tripID, available}})
	s.announce(ctx, queue.ReservationConfirmedEvent{
		ReservationID:  res.ID,
		TripID:         tripID,
		SeatNumber:     seatNumber,
		RiderKind:      RiderVisitor,
		RiderID:        visitorID,
		AvailableSeats: available,
		ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
	})
	return res, nil
}

// CancelReservation cancels the active reservation holding seatNumber
// on tripID. Matching is by (trip, seat); seat numbers are scoped per
// trip. riderKind selects the personnel or visitor table.
func (s *ReservationService) CancelReservation(ctx context.Context, tripID uint, seatNumber int, riderKind string) error {
	var available int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch riderKind {
		case RiderPersonnel:
			var r models.PersonnelReservation
			err := tx.Where("trip_id = ? AND seat_number = ? AND status = ?",
				tripID, seatNumber, models.ReservationReserved).First(&r).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			if err != nil {
				return err
			}
			r.Status = models.ReservationCancelled
			if err := tx.Save(&r).Error; err != nil {
				return err
			}
		case RiderVisitor:
			var r models.VisitorReservation
			err := tx.Where("trip_id = ? AND seat_number = ? AND status = ?",
				tripID, seatNumber, models.ReservationReserved).First(&r).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			if err != nil {
				return err
			}
			r.Status = models.ReservationCancelled
			if err := tx.Save(&r).Error; err != nil {
				return err
			}
		default:
			return ErrReservationNotFound
		}
		var err error
		available, err = recomputeAvailableSeats(tx, tripID)
		return err
	})
	if err != nil {
		return err
	}
	s.pushSeatUpdates(ctx, []seatUpdate{{tripID, available}})
	return nil
}

// ChangeReservation moves an employee's seat. If they already hold a
// reserved row on newTripID only the seat number changes; otherwise
// their active reservation elsewhere (if any) is cancelled and a fresh
// one is created on the new trip, all in one transaction.
func (s *ReservationService) ChangeReservation(ctx context.Context, employeeID, newTripID uint, newSeatNumber int) (*models.PersonnelReservation, error) {
	var res *models.PersonnelReservation
	var updates []seatUpdate

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posting, err := openPosting(tx, employeeID)
		if err != nil {
			return err
		}

		var onTarget models.PersonnelReservation
		err = tx.Where("posting_id = ? AND trip_id = ? AND status = ?",
			posting.ID, newTripID, models.ReservationReserved).First(&onTarget).Error
		switch {
		case err == nil:
			if onTarget.SeatNumber != newSeatNumber {
				held, err := seatHeld(tx, newTripID, newSeatNumber)
				if err != nil {
					return err
				}
				if held {
					return ErrSeatTaken
				}
				onTarget.SeatNumber = newSeatNumber
				if err := tx.Save(&onTarget).Error; err != nil {
					return err
				}
			}
			res = &onTarget
		case errors.Is(err, gorm.ErrRecordNotFound):
			var current models.PersonnelReservation
			err = tx.Where("posting_id = ? AND status = ?",
				posting.ID, models.ReservationReserved).First(&current).Error
			if err == nil {
				current.Status = models.ReservationCancelled
				if err := tx.Save(&current).Error; err != nil {
					return err
				}
				available, err := recomputeAvailableSeats(tx, current.TripID)
				if err != nil {
					return err
				}
				updates = append(updates, seatUpdate{current.TripID, available})
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			res, err = reservePersonnelLeg(tx, posting.ID, newTripID, newSeatNumber)
			if err != nil {
				return err
			}
		default:
			return err
		}

		available, err := recomputeAvailableSeats(tx, newTripID)
		if err != nil {
			return err
		}
		updates = append(updates, seatUpdate{newTripID, available})
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.pushSeatUpdates(ctx, updates)
	return res, nil
}

// ListTripReservations returns all reservation rows for a trip, both
// rider kinds, for manifest views.
func (s *ReservationService) ListTripReservations(ctx context.Context, tripID uint) ([]models.PersonnelReservation, []models.VisitorReservation, error) {
	var personnel []models.PersonnelReservation
	if err := s.db.WithContext(ctx).
		Preload("Posting").Preload("Posting.Employee").
		Where("trip_id = ?", tripID).Find(&personnel).Error; err != nil {
		return nil, nil, err
	}
	var visitors []models.VisitorReservation
	if err := s.db.WithContext(ctx).
		Preload("Visitor").
		Where("trip_id = ?", tripID).Find(&visitors).Error; err != nil {
		return nil, nil, err
	}
	return personnel, visitors, nil
}

// reservePersonnelLeg performs the duplicate check, cancelled-row reuse
// and insert for one leg. The duplicate check runs before the capacity
// check so a rider who already holds a seat gets the duplicate error
// even on a full trip.
func reservePersonnelLeg(tx *gorm.DB, postingID, tripID uint, seatNumber int) (*models.PersonnelReservation, error) {
	var existing models.PersonnelReservation
	err := tx.Where("posting_id = ? AND trip_id = ?", postingID, tripID).First(&existing).Error
	switch {
	case err == nil:
		if existing.Status != models.ReservationCancelled {
			return nil, ErrDuplicateReservation
		}
		if err := checkLegOpen(tx, tripID, seatNumber); err != nil {
			return nil, err
		}
		// Reuse the cancelled row to preserve history; the primary key
		// stays stable across cancel/re-reserve cycles.
		existing.SeatNumber = seatNumber
		existing.Status = models.ReservationReserved
		if err := tx.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := checkLegOpen(tx, tripID, seatNumber); err != nil {
			return nil, err
		}
		res := models.PersonnelReservation{
			PostingID:  postingID,
			TripID:     tripID,
			SeatNumber: seatNumber,
			Status:     models.ReservationReserved,
		}
		if err := tx.Create(&res).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, ErrDuplicateReservation
			}
			return nil, err
		}
		return &res, nil
	default:
		return nil, err
	}
}

func reserveVisitorLeg(tx *gorm.DB, visitorID, tripID uint, seatNumber int) (*models.VisitorReservation, error) {
	var existing models.VisitorReservation
	err := tx.Where("visitor_id = ? AND trip_id = ?", visitorID, tripID).First(&existing).Error
	switch {
	case err == nil:
		if existing.Status != models.ReservationCancelled {
			return nil, ErrDuplicateReservation
		}
		if err := checkLegOpen(tx, tripID, seatNumber); err != nil {
			return nil, err
		}
		existing.SeatNumber = seatNumber
		existing.Status = models.ReservationReserved
		if err := tx.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := checkLegOpen(tx, tripID, seatNumber); err != nil {
			return nil, err
		}
		res := models.VisitorReservation{
			VisitorID:  visitorID,
			TripID:     tripID,
			SeatNumber: seatNumber,
			Status:     models.ReservationReserved,
		}
		if err := tx.Create(&res).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, ErrDuplicateReservation
			}
			return nil, err
		}
		return &res, nil
	default:
		return nil, err
	}
}

// checkLegOpen rejects full trips and occupied seats before anything
// is written.
func checkLegOpen(tx *gorm.DB, tripID uint, seatNumber int) error {
	_, _, total, err := tripCapacity(tx, tripID)
	if err != nil {
		return err
	}
	active, err := reservedCount(tx, tripID)
	if err != nil {
		return err
	}
	if int(active) >= total {
		return ErrTripFull
	}
	held, err := seatHeld(tx, tripID, seatNumber)
	if err != nil {
		return err
	}
	if held {
		return ErrSeatTaken
	}
	return nil
}

// activeReturnTripID resolves the return leg of tripID, if an active
// link exists.
func activeReturnTripID(tx *gorm.DB, outboundID uint) (uint, bool, error) {
	var link models.RoundTripLink
	err := tx.Where("outbound_trip_id = ? AND status = ?", outboundID, models.LinkActive).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return link.ReturnTripID, true, nil
}

func (s *ReservationService) pushSeatUpdates(ctx context.Context, updates []seatUpdate) {
	if s.cache == nil {
		return
	}
	for _, u := range updates {
		s.cache.SetAvailable(ctx, u.tripID, u.available)
	}
}

func (s *ReservationService) announce(ctx context.Context, ev queue.ReservationConfirmedEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.ReservationConfirmed(ctx, ev); err != nil {
		logrus.WithError(err).WithField("trip_id", ev.TripID).Warn("reservation event publish failed")
	}
}
