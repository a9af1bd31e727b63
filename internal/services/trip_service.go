package services

import (
	"context"
	"errors"
	"time"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"staff_transit/internal/models"
	"staff_transit/internal/queue"
)

// TripService owns the trip lifecycle: creating a trip together with
// its driver-vehicle-company assignment, editing, and the paired and
// unpaired delete paths.
type TripService struct {
	db     *gorm.DB
	cache  SeatCache
	events EventPublisher
}

func NewTripService(db *gorm.DB, cache SeatCache, events EventPublisher) *TripService {
	return &TripService{db: db, cache: cache, events: events}
}

// TripInput is everything needed to schedule one trip.
type TripInput struct {
	DriverID           uint      `json:"driver_id" binding:"required"`
	VehicleID          uint      `json:"vehicle_id" binding:"required"`
	CompanyID          uint      `json:"company_id" binding:"required"`
	DestinationID      uint      `json:"destination_id" binding:"required"`
	DepartureDate      time.Time `json:"departure_date" binding:"required"`
	ArrivalDate        time.Time `json:"arrival_date"`
	ScheduledDeparture string    `json:"scheduled_departure"`
}

// createTrip inserts the assignment row (seeding available_seats from
// the vehicle capacity) and the trip row referencing it. It runs in
// the caller's transaction; template application shares it.
func createTrip(tx *gorm.DB, in TripInput) (*models.Trip, error) {
	var vehicle models.Vehicle
	if err := tx.First(&vehicle, in.VehicleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if vehicle.TotalSeats <= 0 {
		return nil, ErrNoCapacity
	}
	var driver models.Driver
	if err := tx.First(&driver, in.DriverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, err
	}
	var destination models.Destination
	if err := tx.First(&destination, in.DestinationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}

	assignment := models.Assignment{
		DriverID:       in.DriverID,
		VehicleID:      in.VehicleID,
		CompanyID:      in.CompanyID,
		AvailableSeats: vehicle.TotalSeats,
		Status:         models.AssignmentAssigned,
	}
	if err := tx.Create(&assignment).Error; err != nil {
		return nil, err
	}

	trip := models.Trip{
		DepartureDate:      in.DepartureDate,
		ArrivalDate:        in.ArrivalDate,
		ScheduledDeparture: in.ScheduledDeparture,
		DestinationID:      in.DestinationID,
		AssignmentID:       assignment.ID,
	}
	if err := tx.Create(&trip).Error; err != nil {
		return nil, err
	}
	trip.Assignment = assignment
	return &trip, nil
}

// CreateTrip schedules a single trip. Assignment and trip rows commit
// together.
func (s *TripService) CreateTrip(ctx context.Context, in TripInput) (*models.Trip, error) {
	var trip *models.Trip
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		trip, err = createTrip(tx, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetAvailable(ctx, trip.ID, trip.Assignment.AvailableSeats)
	}
	s.announceCreated(ctx, trip, 0)
	return trip, nil
}

// RoundTripPair is the result of CreateRoundTrip.
type RoundTripPair struct {
	Outbound models.Trip          `json:"outbound"`
	Return   models.Trip          `json:"return"`
	Link     models.RoundTripLink `json:"link"`
}

// CreateRoundTrip schedules the outbound and return trips and links
// them, all in one transaction; a failure at any step leaves nothing
// behind.
func (s *TripService) CreateRoundTrip(ctx context.Context, outbound, ret TripInput, notes string) (*RoundTripPair, error) {
	var pair RoundTripPair
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		out, err := createTrip(tx, outbound)
		if err != nil {
			return err
		}
		back, err := createTrip(tx, ret)
		if err != nil {
			return err
		}
		link := models.RoundTripLink{
			OutboundTripID: out.ID,
			ReturnTripID:   back.ID,
			Status:         models.LinkActive,
			Notes:          notes,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
		pair = RoundTripPair{Outbound: *out, Return: *back, Link: link}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetAvailable(ctx, pair.Outbound.ID, pair.Outbound.Assignment.AvailableSeats)
		s.cache.SetAvailable(ctx, pair.Return.ID, pair.Return.Assignment.AvailableSeats)
	}
	s.announceCreated(ctx, &pair.Outbound, pair.Return.ID)
	return &pair, nil
}

// TripUpdate carries optional field updates for a trip.
type TripUpdate struct {
	DepartureDate      *time.Time `json:"departure_date"`
	ArrivalDate        *time.Time `json:"arrival_date"`
	ScheduledDeparture *string    `json:"scheduled_departure"`
	DestinationID      *uint      `json:"destination_id"`
}

// UpdateTrip applies the provided fields to a trip.
func (s *TripService) UpdateTrip(ctx context.Context, tripID uint, in TripUpdate) (*models.Trip, error) {
	var trip models.Trip
	db := s.db.WithContext(ctx)
	if err := db.First(&trip, tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	if in.DepartureDate != nil {
		trip.DepartureDate = *in.DepartureDate
	}
	if in.ArrivalDate != nil {
		trip.ArrivalDate = *in.ArrivalDate
	}
	if in.ScheduledDeparture != nil {
		trip.ScheduledDeparture = *in.ScheduledDeparture
	}
	if in.DestinationID != nil {
		var dest models.Destination
		if err := db.First(&dest, *in.DestinationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDestinationNotFound
			}
			return nil, err
		}
		trip.DestinationID = *in.DestinationID
	}
	if err := db.Save(&trip).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

// AssignmentUpdate carries optional field updates for an assignment.
type AssignmentUpdate struct {
	DriverID  *uint   `json:"driver_id"`
	VehicleID *uint   `json:"vehicle_id"`
	Status    *string `json:"status"`
}

// UpdateAssignment applies crew or status changes to an assignment.
func (s *TripService) UpdateAssignment(ctx context.Context, assignmentID uint, in AssignmentUpdate) (*models.Assignment, error) {
	var assignment models.Assignment
	db := s.db.WithContext(ctx)
	if err := db.First(&assignment, assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	if in.DriverID != nil {
		assignment.DriverID = *in.DriverID
	}
	if in.VehicleID != nil {
		assignment.VehicleID = *in.VehicleID
	}
	if in.Status != nil {
		assignment.Status = *in.Status
	}
	if err := db.Save(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

// DeleteTrip removes a trip and its assignment. It refuses when an
// active round-trip link references the trip on either side; callers
// must use DeleteTripWithReturn for paired trips.
func (s *TripService) DeleteTrip(ctx context.Context, tripID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var trip models.Trip
		if err := tx.First(&trip, tripID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTripNotFound
			}
			return err
		}
		var links int64
		if err := tx.Model(&models.RoundTripLink{}).
			Where("(outbound_trip_id = ? OR return_trip_id = ?) AND status = ?",
				tripID, tripID, models.LinkActive).
			Count(&links).Error; err != nil {
			return err
		}
		if links > 0 {
			return ErrHasActiveReturn
		}
		if err := tx.Delete(&models.Trip{}, tripID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Assignment{}, trip.AssignmentID).Error
	})
	if err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, tripID)
	}
	return nil
}

// DeleteTripWithReturn removes the link, both trips and both
// assignments of a round-trip pair in one transaction.
func (s *TripService) DeleteTripWithReturn(ctx context.Context, outboundID uint) error {
	var returnID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var link models.RoundTripLink
		err := tx.Where("outbound_trip_id = ? AND status = ?", outboundID, models.LinkActive).
			First(&link).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLinkNotFound
		}
		if err != nil {
			return err
		}
		returnID = link.ReturnTripID

		var outbound, ret models.Trip
		if err := tx.First(&outbound, link.OutboundTripID).Error; err != nil {
			return err
		}
		if err := tx.First(&ret, link.ReturnTripID).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Delete(&models.RoundTripLink{}, link.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Trip{}, outbound.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Trip{}, ret.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Assignment{}, outbound.AssignmentID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Assignment{}, ret.AssignmentID).Error
	})
	if err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, outboundID)
		s.cache.Invalidate(ctx, returnID)
	}
	return nil
}

// GetTrip loads one trip with its nested projection.
func (s *TripService) GetTrip(ctx context.Context, tripID uint) (*models.Trip, error) {
	var trip models.Trip
	if err := tripPreloads(s.db.WithContext(ctx)).First(&trip, tripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (s *TripService) announceCreated(ctx context.Context, trip *models.Trip, returnID uint) {
	if s.events == nil {
		return
	}
	ev := queue.TripCreatedEvent{
		TripID:        trip.ID,
		DestinationID: trip.DestinationID,
		DepartureDate: trip.DepartureDate.UTC().Format(time.RFC3339),
		Capacity:      trip.Assignment.AvailableSeats,
		ReturnTripID:  returnID,
	}
	if err := s.events.TripCreated(ctx, ev); err != nil {
		logrus.WithError(err).WithField("trip_id", trip.ID).Warn("trip event publish failed")
	}
}
