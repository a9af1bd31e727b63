package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"staff_transit/internal/models"
)

// RoundTripService manages the 1:1 association between an outbound
// trip and its return leg.
type RoundTripService struct {
	db *gorm.DB
}

func NewRoundTripService(db *gorm.DB) *RoundTripService {
	return &RoundTripService{db: db}
}

// tripPreloads loads the nested destination/assignment/seat-count
// projection callers expect on a resolved leg.
func tripPreloads(db *gorm.DB) *gorm.DB {
	return db.Preload("Destination").
		Preload("Assignment").
		Preload("Assignment.Driver").
		Preload("Assignment.Vehicle").
		Preload("Assignment.Company")
}

// CreateLink inserts an active link pairing outboundID with returnID.
// Both trips must exist and the outbound trip must not already have an
// active link.
func (s *RoundTripService) CreateLink(ctx context.Context, outboundID, returnID uint, notes string) (*models.RoundTripLink, error) {
	if outboundID == returnID {
		return nil, ErrSelfLink
	}
	var link models.RoundTripLink
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, id := range []uint{outboundID, returnID} {
			var trip models.Trip
			if err := tx.First(&trip, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTripNotFound
				}
				return err
			}
		}
		if _, exists, err := activeReturnTripID(tx, outboundID); err != nil {
			return err
		} else if exists {
			return ErrLinkExists
		}
		link = models.RoundTripLink{
			OutboundTripID: outboundID,
			ReturnTripID:   returnID,
			Status:         models.LinkActive,
			Notes:          notes,
		}
		if err := tx.Create(&link).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrLinkExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// HasReturn reports whether outboundID has an active return leg and
// which trip it is. Absence is a normal result, not an error.
func (s *RoundTripService) HasReturn(ctx context.Context, outboundID uint) (bool, uint, error) {
	returnID, ok, err := activeReturnTripID(s.db.WithContext(ctx), outboundID)
	if err != nil {
		return false, 0, err
	}
	return ok, returnID, nil
}

// GetReturnTrip resolves the return leg of outboundID with its nested
// destination and assignment projection.
func (s *RoundTripService) GetReturnTrip(ctx context.Context, outboundID uint) (*models.Trip, error) {
	returnID, ok, err := activeReturnTripID(s.db.WithContext(ctx), outboundID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLinkNotFound
	}
	var trip models.Trip
	if err := tripPreloads(s.db.WithContext(ctx)).First(&trip, returnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

// GetOutboundTrip resolves the outbound leg a return trip belongs to.
func (s *RoundTripService) GetOutboundTrip(ctx context.Context, returnID uint) (*models.Trip, error) {
	var link models.RoundTripLink
	err := s.db.WithContext(ctx).
		Where("return_trip_id = ? AND status = ?", returnID, models.LinkActive).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	var trip models.Trip
	if err := tripPreloads(s.db.WithContext(ctx)).First(&trip, link.OutboundTripID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

// CancelLink soft-cancels the active link for outboundID, keeping the
// row for history.
func (s *RoundTripService) CancelLink(ctx context.Context, outboundID uint) error {
	result := s.db.WithContext(ctx).Model(&models.RoundTripLink{}).
		Where("outbound_trip_id = ? AND status = ?", outboundID, models.LinkActive).
		Update("status", models.LinkCancelled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// DeleteLink hard-deletes every link row for outboundID.
func (s *RoundTripService) DeleteLink(ctx context.Context, outboundID uint) error {
	result := s.db.WithContext(ctx).Unscoped().
		Where("outbound_trip_id = ?", outboundID).
		Delete(&models.RoundTripLink{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// TripWithReturn pairs an open trip with its return leg, when linked.
type TripWithReturn struct {
	Trip       models.Trip  `json:"trip"`
	HasReturn  bool         `json:"has_return"`
	ReturnTrip *models.Trip `json:"return_trip,omitempty"`
}

// ListTripsWithReturnInfo returns all trips that have not arrived yet
// together with their return leg, if any. Trips that are themselves an
// active return leg are excluded to avoid double listing.
func (s *RoundTripService) ListTripsWithReturnInfo(ctx context.Context) ([]TripWithReturn, error) {
	db := s.db.WithContext(ctx)
	returnLegIDs := db.Model(&models.RoundTripLink{}).
		Select("return_trip_id").
		Where("status = ?", models.LinkActive)

	var trips []models.Trip
	if err := tripPreloads(db).
		Where("actual_arrival IS NULL").
		Where("trips.id NOT IN (?)", returnLegIDs).
		Order("departure_date, scheduled_departure").
		Find(&trips).Error; err != nil {
		return nil, err
	}

	out := make([]TripWithReturn, 0, len(trips))
	for _, trip := range trips {
		entry := TripWithReturn{Trip: trip}
		returnID, ok, err := activeReturnTripID(db, trip.ID)
		if err != nil {
			return nil, err
		}
		if ok {
			var ret models.Trip
			if err := tripPreloads(db).First(&ret, returnID).Error; err == nil {
				entry.HasReturn = true
				entry.ReturnTrip = &ret
			}
		}
		out = append(out, entry)
	}
	return out, nil
}
