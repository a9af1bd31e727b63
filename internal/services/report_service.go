package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"staff_transit/internal/models"
)

// ReportService serves aggregate read queries over the same tables the
// booking logic writes. It owns no state of its own.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// TripOccupancy summarizes one trip's fill rate.
type TripOccupancy struct {
	TripID         uint      `json:"trip_id"`
	DepartureDate  time.Time `json:"departure_date"`
	Destination    string    `json:"destination"`
	Capacity       int       `json:"capacity"`
	Reserved       int       `json:"reserved"`
	AvailableSeats int       `json:"available_seats"`
}

// OccupancyByDateRange reports capacity and active reservations for
// every trip departing within [from, to].
func (s *ReportService) OccupancyByDateRange(ctx context.Context, from, to time.Time) ([]TripOccupancy, error) {
	db := s.db.WithContext(ctx)
	var trips []models.Trip
	if err := db.Preload("Destination").Preload("Assignment").Preload("Assignment.Vehicle").
		Where("departure_date >= ? AND departure_date <= ?", from, to).
		Order("departure_date").
		Find(&trips).Error; err != nil {
		return nil, err
	}
	out := make([]TripOccupancy, 0, len(trips))
	for _, trip := range trips {
		reserved, err := reservedCount(db, trip.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, TripOccupancy{
			TripID:         trip.ID,
			DepartureDate:  trip.DepartureDate,
			Destination:    trip.Destination.Name,
			Capacity:       trip.Assignment.Vehicle.TotalSeats,
			Reserved:       int(reserved),
			AvailableSeats: trip.Assignment.AvailableSeats,
		})
	}
	return out, nil
}

// AttendanceSummary aggregates reservation outcomes.
type AttendanceSummary struct {
	Reserved  int64 `json:"reserved"`
	Attended  int64 `json:"attended"`
	NoShow    int64 `json:"no_show"`
	Cancelled int64 `json:"cancelled"`
}

type statusCount struct {
	Status string
	N      int64
}

// AttendanceByDestination aggregates reservation statuses for every
// trip to a destination departing within [from, to], both rider kinds
// combined.
func (s *ReportService) AttendanceByDestination(ctx context.Context, destinationID uint, from, to time.Time) (*AttendanceSummary, error) {
	db := s.db.WithContext(ctx)
	summary := &AttendanceSummary{}

	for _, table := range []string{"personnel_reservations", "visitor_reservations"} {
		var counts []statusCount
		if err := db.Table(table).
			Select(table+".status AS status, COUNT(*) AS n").
			Joins("JOIN trips ON trips.id = "+table+".trip_id").
			Where("trips.deleted_at IS NULL").
			Where("trips.destination_id = ?", destinationID).
			Where("trips.departure_date >= ? AND trips.departure_date <= ?", from, to).
			Group(table + ".status").
			Scan(&counts).Error; err != nil {
			return nil, err
		}
		for _, c := range counts {
			switch c.Status {
			case models.ReservationReserved:
				summary.Reserved += c.N
			case models.ReservationAttended:
				summary.Attended += c.N
			case models.ReservationNoShow:
				summary.NoShow += c.N
			case models.ReservationCancelled:
				summary.Cancelled += c.N
			}
		}
	}
	return summary, nil
}

// CompanyTrips counts trips operated per company.
type CompanyTrips struct {
	CompanyID uint   `json:"company_id"`
	Company   string `json:"company"`
	Trips     int64  `json:"trips"`
}

// TripsByCompany groups all trips by the operating company.
func (s *ReportService) TripsByCompany(ctx context.Context) ([]CompanyTrips, error) {
	var out []CompanyTrips
	err := s.db.WithContext(ctx).Model(&models.Trip{}).
		Select("companies.id AS company_id, companies.name AS company, COUNT(trips.id) AS trips").
		Joins("JOIN assignments ON assignments.id = trips.assignment_id").
		Joins("JOIN companies ON companies.id = assignments.company_id").
		Group("companies.id, companies.name").
		Order("trips DESC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
