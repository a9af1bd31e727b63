package services

import (
	"context"
	"encoding/binary"
	"errors"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
	"gorm.io/gorm"

	"staff_transit/internal/models"
)

// CatalogService serves the destination and trip catalog: plain
// read-throughs plus the availability numbers riders browse before
// reserving.
type CatalogService struct {
	db    *gorm.DB
	cache SeatCache
}

func NewCatalogService(db *gorm.DB, cache SeatCache) *CatalogService {
	return &CatalogService{db: db, cache: cache}
}

// DestinationView mirrors models.Destination with the point rendered
// as a GeoJSON string for API output.
type DestinationView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Region      string `json:"region"`
	Geometry    string `json:"geometry,omitempty"`
}

// parseGeometry parses a GeoJSON string into WKB bytes for storage.
func parseGeometry(raw string) ([]byte, error) {
	if raw == "" {
		return nil, nil
	}
	var g geom.T
	if err := gjson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, err
	}
	return wkb.Marshal(g, binary.LittleEndian)
}

// renderGeometry converts stored WKB bytes back into a GeoJSON string.
func renderGeometry(wkbBytes []byte) (string, error) {
	if len(wkbBytes) == 0 {
		return "", nil
	}
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", err
	}
	b, err := gjson.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func toDestinationView(d models.Destination) DestinationView {
	geometry, _ := renderGeometry(d.Geometry)
	return DestinationView{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Region:      d.Region,
		Geometry:    geometry,
	}
}

// CreateDestination stores a destination, converting the optional
// GeoJSON point to WKB.
func (s *CatalogService) CreateDestination(ctx context.Context, name, description, region, geometry string) (*DestinationView, error) {
	wkbBytes, err := parseGeometry(geometry)
	if err != nil {
		return nil, err
	}
	dest := models.Destination{
		Name:        name,
		Description: description,
		Region:      region,
		Geometry:    wkbBytes,
	}
	if err := s.db.WithContext(ctx).Create(&dest).Error; err != nil {
		return nil, err
	}
	view := toDestinationView(dest)
	return &view, nil
}

// ListDestinations returns every destination.
func (s *CatalogService) ListDestinations(ctx context.Context) ([]DestinationView, error) {
	var destinations []models.Destination
	if err := s.db.WithContext(ctx).Order("name").Find(&destinations).Error; err != nil {
		return nil, err
	}
	views := make([]DestinationView, 0, len(destinations))
	for _, d := range destinations {
		views = append(views, toDestinationView(d))
	}
	return views, nil
}

// GetDestination returns one destination.
func (s *CatalogService) GetDestination(ctx context.Context, id uint) (*DestinationView, error) {
	var dest models.Destination
	if err := s.db.WithContext(ctx).First(&dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	view := toDestinationView(dest)
	return &view, nil
}

// TripAvailability is a catalog row: an open trip plus its current
// seat availability.
type TripAvailability struct {
	Trip           models.Trip `json:"trip"`
	AvailableSeats int         `json:"available_seats"`
}

// ListOpenTrips returns trips that have not arrived yet with their
// availability, reading through the seat cache when it is warm.
func (s *CatalogService) ListOpenTrips(ctx context.Context) ([]TripAvailability, error) {
	var trips []models.Trip
	if err := tripPreloads(s.db.WithContext(ctx)).
		Where("actual_arrival IS NULL").
		Order("departure_date, scheduled_departure").
		Find(&trips).Error; err != nil {
		return nil, err
	}
	out := make([]TripAvailability, 0, len(trips))
	for _, trip := range trips {
		available := trip.Assignment.AvailableSeats
		if s.cache != nil {
			if cached, ok := s.cache.GetAvailable(ctx, trip.ID); ok {
				available = cached
			} else {
				s.cache.SetAvailable(ctx, trip.ID, available)
			}
		}
		out = append(out, TripAvailability{Trip: trip, AvailableSeats: available})
	}
	return out, nil
}
