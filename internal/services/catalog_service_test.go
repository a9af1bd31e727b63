package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"staff_transit/internal/models"
)

func TestDestinationGeometryRoundTrip(t *testing.T) {
	db := testDB(t)

	svc := NewCatalogService(db, nil)
	ctx := context.Background()

	point := `{"type":"Point","coordinates":[36.8219,-1.2921]}`
	created, err := svc.CreateDestination(ctx, "Plant C", "assembly site", "East", point)
	if err != nil {
		t.Fatalf("create destination: %v", err)
	}
	if created.Geometry == "" {
		t.Fatal("geometry not rendered back")
	}

	got, err := svc.GetDestination(ctx, created.ID)
	if err != nil {
		t.Fatalf("get destination: %v", err)
	}
	if !strings.Contains(got.Geometry, "36.8219") {
		t.Fatalf("stored geometry lost coordinates: %s", got.Geometry)
	}

	if _, err := svc.CreateDestination(ctx, "bad", "", "", "{not geojson"); err == nil {
		t.Fatal("invalid geometry accepted")
	}
}

func TestCreateDestinationWithoutGeometry(t *testing.T) {
	db := testDB(t)

	svc := NewCatalogService(db, nil)
	created, err := svc.CreateDestination(context.Background(), "Plant D", "", "West", "")
	if err != nil {
		t.Fatalf("create destination: %v", err)
	}
	if created.Geometry != "" {
		t.Fatalf("geometry = %q for point-free destination, want empty", created.Geometry)
	}
}

func TestListDestinationsSorted(t *testing.T) {
	db := testDB(t)

	svc := NewCatalogService(db, nil)
	ctx := context.Background()
	for _, name := range []string{"Zeta Yard", "Alpha Works"} {
		if _, err := svc.CreateDestination(ctx, name, "", "", ""); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	listed, err := svc.ListDestinations(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 || listed[0].Name != "Alpha Works" {
		t.Fatalf("unexpected order: %+v", listed)
	}
}

func TestListOpenTripsReadsThroughCache(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)
	trip := mustCreateTrip(t, db, f)

	arrived := mustCreateTrip(t, db, f)
	now := time.Now()
	if err := db.Model(&models.Trip{}).Where("id = ?", arrived.ID).
		Update("actual_arrival", &now).Error; err != nil {
		t.Fatalf("mark arrived: %v", err)
	}

	cache := newFakeCache()
	svc := NewCatalogService(db, cache)
	ctx := context.Background()

	listed, err := svc.ListOpenTrips(ctx)
	if err != nil {
		t.Fatalf("list open trips: %v", err)
	}
	if len(listed) != 1 || listed[0].Trip.ID != trip.ID {
		t.Fatalf("open trips = %+v, want only trip %d", listed, trip.ID)
	}
	if listed[0].AvailableSeats != 40 {
		t.Fatalf("availability = %d, want 40", listed[0].AvailableSeats)
	}
	// A cold cache is warmed from the assignment counter.
	if got, ok := cache.GetAvailable(ctx, trip.ID); !ok || got != 40 {
		t.Fatalf("cache after list = %d (%v), want 40", got, ok)
	}

	// A warm cache wins over the stored counter.
	cache.SetAvailable(ctx, trip.ID, 17)
	listed, err = svc.ListOpenTrips(ctx)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if listed[0].AvailableSeats != 17 {
		t.Fatalf("availability = %d with warm cache, want 17", listed[0].AvailableSeats)
	}
}
