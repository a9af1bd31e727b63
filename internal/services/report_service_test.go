package services

import (
	"context"
	"testing"
	"time"

	"staff_transit/internal/models"
)

func TestOccupancyByDateRange(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)

	trips := NewTripService(db, nil, nil)
	ctx := context.Background()
	inRange, err := trips.CreateTrip(ctx, f.tripInput(time.Now().Add(24*time.Hour)))
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	if _, err := trips.CreateTrip(ctx, f.tripInput(time.Now().AddDate(0, 2, 0))); err != nil {
		t.Fatalf("create out-of-range trip: %v", err)
	}

	emp, _ := seedEmployee(t, db, f.dest.ID, "E-130")
	reservations := NewReservationService(db, nil, nil)
	if _, err := reservations.ReservePersonnelSeat(ctx, inRange.ID, 1, emp.ID, false); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	svc := NewReportService(db)
	rows, err := svc.OccupancyByDateRange(ctx, time.Now(), time.Now().AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("occupancy: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.TripID != inRange.ID || row.Capacity != 40 || row.Reserved != 1 || row.AvailableSeats != 39 {
		t.Fatalf("unexpected occupancy row: %+v", row)
	}
	if row.Destination != f.dest.Name {
		t.Fatalf("destination = %q, want %q", row.Destination, f.dest.Name)
	}
}

func TestAttendanceByDestination(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)
	trip := mustCreateTrip(t, db, f)
	empA, _ := seedEmployee(t, db, f.dest.ID, "E-140")
	empB, _ := seedEmployee(t, db, f.dest.ID, "E-141")
	visitor := seedVisitor(t, db, "guest-6")

	reservations := NewReservationService(db, nil, nil)
	attendance := NewAttendanceService(db)
	ctx := context.Background()

	if _, err := reservations.ReservePersonnelSeat(ctx, trip.ID, 1, empA.ID, false); err != nil {
		t.Fatalf("reserve A: %v", err)
	}
	if _, err := reservations.ReservePersonnelSeat(ctx, trip.ID, 2, empB.ID, false); err != nil {
		t.Fatalf("reserve B: %v", err)
	}
	if _, err := reservations.ReserveVisitorSeat(ctx, trip.ID, 3, visitor.ID); err != nil {
		t.Fatalf("reserve visitor: %v", err)
	}
	if err := attendance.MarkAttendance(ctx, trip.ID, empA.ID, RiderPersonnel, true); err != nil {
		t.Fatalf("mark attended: %v", err)
	}
	if err := attendance.MarkAttendance(ctx, trip.ID, visitor.ID, RiderVisitor, false); err != nil {
		t.Fatalf("mark no-show: %v", err)
	}

	svc := NewReportService(db)
	summary, err := svc.AttendanceByDestination(ctx, f.dest.ID,
		time.Now(), time.Now().AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("attendance summary: %v", err)
	}
	if summary.Attended != 1 || summary.NoShow != 1 || summary.Reserved != 1 || summary.Cancelled != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestTripsByCompany(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)
	mustCreateTrip(t, db, f)
	mustCreateTrip(t, db, f)

	other := models.Company{Name: "Southern Transit", Email: "ops@southern.test"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	in := f.tripInput(time.Now().Add(24 * time.Hour))
	in.CompanyID = other.ID
	if _, err := NewTripService(db, nil, nil).CreateTrip(context.Background(), in); err != nil {
		t.Fatalf("create trip: %v", err)
	}

	svc := NewReportService(db)
	rows, err := svc.TripsByCompany(context.Background())
	if err != nil {
		t.Fatalf("trips by company: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].CompanyID != f.company.ID || rows[0].Trips != 2 {
		t.Fatalf("top row = %+v, want company %d with 2 trips", rows[0], f.company.ID)
	}
	if rows[1].CompanyID != other.ID || rows[1].Trips != 1 {
		t.Fatalf("second row = %+v, want company %d with 1 trip", rows[1], other.ID)
	}
}
