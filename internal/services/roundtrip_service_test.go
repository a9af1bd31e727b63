package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"staff_transit/internal/models"
)

func TestCreateLinkAndHasReturn(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)
	outbound := mustCreateTrip(t, db, f)
	ret := mustCreateTrip(t, db, f)

	svc := NewRoundTripService(db)
	ctx := context.Background()

	link, err := svc.CreateLink(ctx, outbound.ID, ret.ID, "evening return")
	if err != nil {
		t.Fatalf("create link: %v", err)
	}
	if link.Status != models.LinkActive || link.Notes != "evening return" {
		t.Fatalf("unexpected link: %+v", link)
	}

	has, returnID, err := svc.HasReturn(ctx, outbound.ID)
	if err != nil {
		t.Fatalf("has return: %v", err)
	}
	if !has || returnID != ret.ID {
		t.Fatalf("HasReturn = (%v, %d), want (true, %d)", has, returnID, ret.ID)
	}

	has, _, err = svc.HasReturn(ctx, ret.ID)
	if err != nil {
		t.Fatalf("has return on return leg: %v", err)
	}
	if has {
		t.Fatal("return leg reported as having its own return")
	}
}

func TestCreateLinkRejectsSelf(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)
	trip := mustCreateTrip(t, db, f)

	svc := NewRoundTripService(db)
	_, err := svc.CreateLink(context.Background(), trip.ID, trip.ID, "")
	if !errors.Is(err, ErrSelfLink) {
		t.Fatalf("err = %v, want ErrSelfLink", err)
	}
}

func TestCreateLinkRejectsMissingTrip(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)
	trip := mustCreateTrip(t, db, f)

	svc := NewRoundTripService(db)
	_, err := svc.CreateLink(context.Background(), trip.ID, trip.ID+99, "")
	if !errors.Is(err, ErrTripNotFound) {
		t.Fatalf("err = %v, want ErrTripNotFound", err)
	}
}

func TestCreateLinkRejectsSecondActiveLink(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)
	outbound := mustCreateTrip(t, db, f)
	retA := mustCreateTrip(t, db, f)
	retB := mustCreateTrip(t, db, f)

	svc := NewRoundTripService(db)
	ctx := context.Background()
	if _, err := svc.CreateLink(ctx, outbound.ID, retA.ID, ""); err != nil {
		t.Fatalf("first link: %v", err)
	}
	_, err := svc.CreateLink(ctx, outbound.ID, retB.ID, "")
	if !errors.Is(err, ErrLinkExists) {
		t.Fatalf("err = %v, want ErrLinkExists", err)
	}
}

func TestCancelLinkAllowsRelinking(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)
	outbound := mustCreateTrip(t, db, f)
	retA := mustCreateTrip(t, db, f)
	retB := mustCreateTrip(t, db, f)

	svc := NewRoundTripService(db)
	ctx := context.Background()
	if _, err := svc.CreateLink(ctx, outbound.ID, retA.ID, ""); err != nil {
		t.Fatalf("create link: %v", err)
	}
	if err := svc.CancelLink(ctx, outbound.ID); err != nil {
		t.Fatalf("cancel link: %v", err)
	}

	has, _, err := svc.HasReturn(ctx, outbound.ID)
	if err != nil {
		t.Fatalf("has return: %v", err)
	}
	if has {
		t.Fatal("cancelled link still reported active")
	}
	if err := svc.CancelLink(ctx, outbound.ID); !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("second cancel err = %v, want ErrLinkNotFound", err)
	}

	// The cancelled row stays for history; a fresh link is allowed.
	if _, err := svc.CreateLink(ctx, outbound.ID, retB.ID, ""); err != nil {
		t.Fatalf("relink after cancel: %v", err)
	}
}

func TestGetReturnAndOutboundTrips(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)
	outbound := mustCreateTrip(t, db, f)
	ret := mustCreateTrip(t, db, f)

	svc := NewRoundTripService(db)
	ctx := context.Background()
	if _, err := svc.CreateLink(ctx, outbound.ID, ret.ID, ""); err != nil {
		t.Fatalf("create link: %v", err)
	}

	got, err := svc.GetReturnTrip(ctx, outbound.ID)
	if err != nil {
		t.Fatalf("get return trip: %v", err)
	}
	if got.ID != ret.ID {
		t.Fatalf("return trip = %d, want %d", got.ID, ret.ID)
	}
	if got.Destination.Name != f.dest.Name || got.Assignment.Vehicle.Plate != f.vehicle.Plate {
		t.Fatalf("return trip preloads missing: %+v", got)
	}

	back, err := svc.GetOutboundTrip(ctx, ret.ID)
	if err != nil {
		t.Fatalf("get outbound trip: %v", err)
	}
	if back.ID != outbound.ID {
		t.Fatalf("outbound trip = %d, want %d", back.ID, outbound.ID)
	}

	if _, err := svc.GetReturnTrip(ctx, ret.ID); !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("err = %v, want ErrLinkNotFound", err)
	}
}

func TestDeleteLinkRemovesRows(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)
	outbound := mustCreateTrip(t, db, f)
	ret := mustCreateTrip(t, db, f)

	svc := NewRoundTripService(db)
	ctx := context.Background()
	if _, err := svc.CreateLink(ctx, outbound.ID, ret.ID, ""); err != nil {
		t.Fatalf("create link: %v", err)
	}
	if err := svc.DeleteLink(ctx, outbound.ID); err != nil {
		t.Fatalf("delete link: %v", err)
	}

	var n int64
	if err := db.Unscoped().Model(&models.RoundTripLink{}).
		Where("outbound_trip_id = ?", outbound.ID).Count(&n).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if n != 0 {
		t.Fatalf("link rows = %d after hard delete, want 0", n)
	}
	if err := svc.DeleteLink(ctx, outbound.ID); !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("second delete err = %v, want ErrLinkNotFound", err)
	}
}

func TestListTripsWithReturnInfo(t *testing.T) {
	db := testDB(t)
	f := seedFleet(t, db, 40)

	trips := NewTripService(db, nil, nil)
	ctx := context.Background()
	pair, err := trips.CreateRoundTrip(ctx,
		f.tripInput(time.Now().Add(24*time.Hour)),
		f.tripInput(time.Now().Add(26*time.Hour)), "")
	if err != nil {
		t.Fatalf("create round trip: %v", err)
	}
	solo := mustCreateTrip(t, db, f)

	// An arrived trip must not be listed.
	arrived := mustCreateTrip(t, db, f)
	now := time.Now()
	if err := db.Model(&models.Trip{}).Where("id = ?", arrived.ID).
		Update("actual_arrival", &now).Error; err != nil {
		t.Fatalf("mark arrived: %v", err)
	}

	svc := NewRoundTripService(db)
	listed, err := svc.ListTripsWithReturnInfo(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed %d trips, want 2 (outbound and solo)", len(listed))
	}
	byID := map[uint]TripWithReturn{}
	for _, entry := range listed {
		byID[entry.Trip.ID] = entry
	}
	out, ok := byID[pair.Outbound.ID]
	if !ok || !out.HasReturn || out.ReturnTrip == nil || out.ReturnTrip.ID != pair.Return.ID {
		t.Fatalf("outbound entry wrong: %+v", out)
	}
	if entry, ok := byID[solo.ID]; !ok || entry.HasReturn {
		t.Fatalf("solo entry wrong: %+v", entry)
	}
	if _, ok := byID[pair.Return.ID]; ok {
		t.Fatal("return leg listed as its own entry")
	}
}
