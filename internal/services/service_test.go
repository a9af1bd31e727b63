package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"staff_transit/internal/models"
	"staff_transit/internal/queue"
)

// testDB opens a fresh in-memory database per test, named after the
// test so parallel tests never share state.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Driver{},
		&models.Vehicle{},
		&models.Destination{},
		&models.Employee{},
		&models.DestinationPosting{},
		&models.Visitor{},
		&models.Assignment{},
		&models.Trip{},
		&models.RoundTripLink{},
		&models.PersonnelReservation{},
		&models.VisitorReservation{},
		&models.TripTemplate{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// fixture is the minimal fleet a trip needs.
type fixture struct {
	company models.Company
	vehicle models.Vehicle
	driver  models.Driver
	dest    models.Destination
}

func seedFleet(t *testing.T, db *gorm.DB, seats int) fixture {
	t.Helper()
	var f fixture
	f.company = models.Company{Name: "Northern Transit", Email: "ops@northern.test"}
	if err := db.Create(&f.company).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	f.vehicle = models.Vehicle{
		Plate:      "KDA 001A",
		Make:       "Scania",
		TotalSeats: seats,
		CompanyID:  f.company.ID,
		InService:  true,
	}
	if err := db.Create(&f.vehicle).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	user := models.User{Name: "Ben", Email: "ben@northern.test", Role: "driver"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed driver user: %v", err)
	}
	f.driver = models.Driver{
		UserID:        user.ID,
		Name:          "Ben",
		LicenseNumber: "DL-100",
		CompanyID:     f.company.ID,
	}
	if err := db.Create(&f.driver).Error; err != nil {
		t.Fatalf("seed driver: %v", err)
	}
	f.dest = models.Destination{Name: "Plant A", Region: "North"}
	if err := db.Create(&f.dest).Error; err != nil {
		t.Fatalf("seed destination: %v", err)
	}
	return f
}

func (f fixture) tripInput(departure time.Time) TripInput {
	return TripInput{
		DriverID:           f.driver.ID,
		VehicleID:          f.vehicle.ID,
		CompanyID:          f.company.ID,
		DestinationID:      f.dest.ID,
		DepartureDate:      departure,
		ScheduledDeparture: "08:00",
	}
}

func mustCreateTrip(t *testing.T, db *gorm.DB, f fixture) *models.Trip {
	t.Helper()
	trip, err := NewTripService(db, nil, nil).
		CreateTrip(context.Background(), f.tripInput(time.Now().Add(24*time.Hour)))
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	return trip
}

// seedEmployee creates an employee with an open posting to destID.
func seedEmployee(t *testing.T, db *gorm.DB, destID uint, badge string) (models.Employee, models.DestinationPosting) {
	t.Helper()
	user := models.User{Name: badge, Email: badge + "@corp.test", Role: "staff"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed staff user: %v", err)
	}
	emp := models.Employee{UserID: user.ID, Name: badge, BadgeNumber: badge}
	if err := db.Create(&emp).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	posting := models.DestinationPosting{
		EmployeeID:    emp.ID,
		DestinationID: destID,
		StartDate:     time.Now().AddDate(0, -1, 0),
	}
	if err := db.Create(&posting).Error; err != nil {
		t.Fatalf("seed posting: %v", err)
	}
	return emp, posting
}

func seedVisitor(t *testing.T, db *gorm.DB, name string) models.Visitor {
	t.Helper()
	v := models.Visitor{Name: name, BookingRef: name + "-ref", HostName: "reception"}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("seed visitor: %v", err)
	}
	return v
}

func availableSeats(t *testing.T, db *gorm.DB, trip *models.Trip) int {
	t.Helper()
	var a models.Assignment
	if err := db.First(&a, trip.AssignmentID).Error; err != nil {
		t.Fatalf("load assignment: %v", err)
	}
	return a.AvailableSeats
}

// fakeCache records seat availability pushes in memory.
type fakeCache struct {
	values      map[uint]int
	invalidated []uint
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[uint]int{}}
}

func (f *fakeCache) GetAvailable(_ context.Context, tripID uint) (int, bool) {
	v, ok := f.values[tripID]
	return v, ok
}

func (f *fakeCache) SetAvailable(_ context.Context, tripID uint, available int) {
	f.values[tripID] = available
}

func (f *fakeCache) Invalidate(_ context.Context, tripID uint) {
	delete(f.values, tripID)
	f.invalidated = append(f.invalidated, tripID)
}

// fakePublisher records published events in memory.
type fakePublisher struct {
	reservations []queue.ReservationConfirmedEvent
	trips        []queue.TripCreatedEvent
}

func (f *fakePublisher) ReservationConfirmed(_ context.Context, ev queue.ReservationConfirmedEvent) error {
	f.reservations = append(f.reservations, ev)
	return nil
}

func (f *fakePublisher) TripCreated(_ context.Context, ev queue.TripCreatedEvent) error {
	f.trips = append(f.trips, ev)
	return nil
}
