package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"staff_transit/internal/models"
)

func TestCreateTripSeedsAvailability(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 33)

	cache := newFakeCache()
	events := &fakePublisher{}
	svc := NewTripService(db, cache, events)

	trip, err := svc.CreateTrip(context.Background(), f.tripInput(time.Now().Add(24*time.Hour)))
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	if trip.Assignment.AvailableSeats != 33 {
		t.Fatalf("seeded availability = %d, want 33", trip.Assignment.AvailableSeats)
	}
	if trip.Assignment.Status != models.AssignmentAssigned {
		t.Fatalf("assignment status = %q, want assigned", trip.Assignment.Status)
	}
	if got, ok := cache.GetAvailable(context.Background(), trip.ID); !ok || got != 33 {
		t.Fatalf("cached availability = %d (%v), want 33", got, ok)
	}
	if len(events.trips) != 1 {
		t.Fatalf("published %d trip events, want 1", len(events.trips))
	}
	if ev := events.trips[0]; ev.TripID != trip.ID || ev.Capacity != 33 || ev.ReturnTripID != 0 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestCreateTripValidatesReferences(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)
	ctx := context.Background()
	svc := NewTripService(db, nil, nil)

	in := f.tripInput(time.Now().Add(24 * time.Hour))
	in.VehicleID += 99
	if _, err := svc.CreateTrip(ctx, in); !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("err = %v, want ErrVehicleNotFound", err)
	}

	in = f.tripInput(time.Now().Add(24 * time.Hour))
	in.DriverID += 99
	if _, err := svc.CreateTrip(ctx, in); !errors.Is(err, ErrDriverNotFound) {
		t.Fatalf("err = %v, want ErrDriverNotFound", err)
	}

	in = f.tripInput(time.Now().Add(24 * time.Hour))
	in.DestinationID += 99
	if _, err := svc.CreateTrip(ctx, in); !errors.Is(err, ErrDestinationNotFound) {
		t.Fatalf("err = %v, want ErrDestinationNotFound", err)
	}
}

func TestCreateTripRejectsZeroCapacity(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 0)

	svc := NewTripService(db, nil, nil)
	_, err := svc.CreateTrip(context.Background(), f.tripInput(time.Now().Add(24*time.Hour)))
	if !errors.Is(err, ErrNoCapacity) {
		t.Fatalf("err = %v, want ErrNoCapacity", err)
	}
}

func TestCreateRoundTrip(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)

	events := &fakePublisher{}
	svc := NewTripService(db, nil, events)
	pair, err := svc.CreateRoundTrip(context.Background(),
		f.tripInput(time.Now().Add(24*time.Hour)),
		f.tripInput(time.Now().Add(30*time.Hour)), "weekly rotation")
	if err != nil {
		t.Fatalf("create round trip: %v", err)
	}
	if pair.Link.OutboundTripID != pair.Outbound.ID || pair.Link.ReturnTripID != pair.Return.ID {
		t.Fatalf("link does not pair the created trips: %+v", pair.Link)
	}
	if pair.Link.Status != models.LinkActive {
		t.Fatalf("link status = %q, want active", pair.Link.Status)
	}
	if len(events.trips) != 1 {
		t.Fatalf("published %d trip events, want 1", len(events.trips))
	}
	if ev := events.trips[0]; ev.ReturnTripID != pair.Return.ID {
		t.Fatalf("event return trip = %d, want %d", ev.ReturnTripID, pair.Return.ID)
	}
}

func TestCreateRoundTripIsAtomic(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)

	svc := NewTripService(db, nil, nil)
	ret := f.tripInput(time.Now().Add(30 * time.Hour))
	ret.DestinationID += 99

	_, err := svc.CreateRoundTrip(context.Background(),
		f.tripInput(time.Now().Add(24*time.Hour)), ret, "")
	if !errors.Is(err, ErrDestinationNotFound) {
		t.Fatalf("err = %v, want ErrDestinationNotFound", err)
	}

	// The failed return leg must leave no outbound rows behind.
	var trips, assignments, links int64
	if err := db.Model(&models.Trip{}).Count(&trips).Error; err != nil {
		t.Fatalf("count trips: %v", err)
	}
	if err := db.Model(&models.Assignment{}).Count(&assignments).Error; err != nil {
		t.Fatalf("count assignments: %v", err)
	}
	if err := db.Model(&models.RoundTripLink{}).Count(&links).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if trips != 0 || assignments != 0 || links != 0 {
		t.Fatalf("rows after rollback = %d/%d/%d, want 0/0/0", trips, assignments, links)
	}
}

func TestUpdateTrip(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)
	trip := mustCreateTrip(t, db, f)

	other := models.Destination{Name: "Plant B", Region: "South"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed destination: %v", err)
	}

	svc := NewTripService(db, nil, nil)
	newTime := "14:30"
	updated, err := svc.UpdateTrip(context.Background(), trip.ID, TripUpdate{
		ScheduledDeparture: &newTime,
		DestinationID:      &other.ID,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ScheduledDeparture != "14:30" || updated.DestinationID != other.ID {
		t.Fatalf("unexpected trip after update: %+v", updated)
	}

	bad := other.ID + 99
	if _, err := svc.UpdateTrip(context.Background(), trip.ID, TripUpdate{DestinationID: &bad}); !errors.Is(err, ErrDestinationNotFound) {
		t.Fatalf("err = %v, want ErrDestinationNotFound", err)
	}
}

func TestDeleteTripBlockedByActiveLink(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)

	svc := NewTripService(db, nil, nil)
	ctx := context.Background()
	pair, err := svc.CreateRoundTrip(ctx,
		f.tripInput(time.Now().Add(24*time.Hour)),
		f.tripInput(time.Now().Add(30*time.Hour)), "")
	if err != nil {
		t.Fatalf("create round trip: %v", err)
	}

	for _, id := range []uint{pair.Outbound.ID, pair.Return.ID} {
		if err := svc.DeleteTrip(ctx, id); !errors.Is(err, ErrHasActiveReturn) {
			t.Fatalf("delete trip %d err = %v, want ErrHasActiveReturn", id, err)
		}
	}

	var trips int64
	if err := db.Model(&models.Trip{}).Count(&trips).Error; err != nil {
		t.Fatalf("count trips: %v", err)
	}
	if trips != 2 {
		t.Fatalf("trips = %d after refused deletes, want 2", trips)
	}
}

func TestDeleteTripRemovesAssignment(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)
	trip := mustCreateTrip(t, db, f)

	cache := newFakeCache()
	cache.SetAvailable(context.Background(), trip.ID, 40)
	svc := NewTripService(db, cache, nil)
	if err := svc.DeleteTrip(context.Background(), trip.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var trips, assignments int64
	if err := db.Model(&models.Trip{}).Count(&trips).Error; err != nil {
		t.Fatalf("count trips: %v", err)
	}
	if err := db.Model(&models.Assignment{}).Count(&assignments).Error; err != nil {
		t.Fatalf("count assignments: %v", err)
	}
	if trips != 0 || assignments != 0 {
		t.Fatalf("rows after delete = %d/%d, want 0/0", trips, assignments)
	}
	if _, ok := cache.GetAvailable(context.Background(), trip.ID); ok {
		t.Fatal("cache entry survived delete")
	}
}

func TestDeleteTripWithReturn(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)

	cache := newFakeCache()
	svc := NewTripService(db, cache, nil)
	ctx := context.Background()
	pair, err := svc.CreateRoundTrip(ctx,
		f.tripInput(time.Now().Add(24*time.Hour)),
		f.tripInput(time.Now().Add(30*time.Hour)), "")
	if err != nil {
		t.Fatalf("create round trip: %v", err)
	}

	if err := svc.DeleteTripWithReturn(ctx, pair.Outbound.ID); err != nil {
		t.Fatalf("delete pair: %v", err)
	}

	var trips, assignments, links int64
	if err := db.Model(&models.Trip{}).Count(&trips).Error; err != nil {
		t.Fatalf("count trips: %v", err)
	}
	if err := db.Model(&models.Assignment{}).Count(&assignments).Error; err != nil {
		t.Fatalf("count assignments: %v", err)
	}
	if err := db.Unscoped().Model(&models.RoundTripLink{}).Count(&links).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if trips != 0 || assignments != 0 || links != 0 {
		t.Fatalf("rows after delete = %d/%d/%d, want 0/0/0", trips, assignments, links)
	}
	if len(cache.invalidated) != 2 {
		t.Fatalf("invalidated %d cache entries, want 2", len(cache.invalidated))
	}

	if err := svc.DeleteTripWithReturn(ctx, pair.Outbound.ID); !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("second delete err = %v, want ErrLinkNotFound", err)
	}
}

func TestGetTripLoadsProjection(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)
	trip := mustCreateTrip(t, db, f)

	svc := NewTripService(db, nil, nil)
	got, err := svc.GetTrip(context.Background(), trip.ID)
	if err != nil {
		t.Fatalf("get trip: %v", err)
	}
	if got.Destination.Name != f.dest.Name {
		t.Fatalf("destination not preloaded: %+v", got.Destination)
	}
	if got.Assignment.Vehicle.Plate != f.vehicle.Plate || got.Assignment.Driver.Name != f.driver.Name {
		t.Fatalf("assignment projection not preloaded: %+v", got.Assignment)
	}

	if _, err := svc.GetTrip(context.Background(), trip.ID+99); !errors.Is(err, ErrTripNotFound) {
		t.Fatalf("err = %v, want ErrTripNotFound", err)
	}
}
