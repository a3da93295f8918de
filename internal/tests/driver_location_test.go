package tests

import (
	"context"
	"errors"
	"testing"

	"rideshare/internal/domain"
	"rideshare/internal/service"
)

func TestUpdateLocation_LastWriterWins(t *testing.T) {
	ctx := context.Background()
	driverRepo := NewMockDriverRepository()
	locationStore := NewMockLocationStore()
	svc := service.NewDriverService(driverRepo, locationStore)

	driverRepo.AddDriver(&domain.Driver{ID: "driver-1"})

	if err := svc.UpdateLocation(ctx, service.UpdateLocationRequest{DriverID: "driver-1", Lat: 23.78, Lng: 90.41}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.UpdateLocation(ctx, service.UpdateLocationRequest{DriverID: "driver-1", Lat: 23.80, Lng: 90.42}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	driver := driverRepo.GetDriver("driver-1")
	if driver.CurrentLat != 23.80 || driver.CurrentLng != 90.42 {
		t.Errorf("expected last write to win, got %v/%v", driver.CurrentLat, driver.CurrentLng)
	}
	if !locationStore.HasLocation("driver-1") {
		t.Error("expected location mirrored into the geo index")
	}
}

func TestUpdateLocation_GeoMirrorFailureIgnored(t *testing.T) {
	ctx := context.Background()
	driverRepo := NewMockDriverRepository()
	locationStore := NewMockLocationStore()
	locationStore.UpdateError = ErrMockUnavailable
	svc := service.NewDriverService(driverRepo, locationStore)

	driverRepo.AddDriver(&domain.Driver{ID: "driver-1"})

	// The driver row is authoritative; the mirror is best effort.
	if err := svc.UpdateLocation(ctx, service.UpdateLocationRequest{DriverID: "driver-1", Lat: 23.78, Lng: 90.41}); err != nil {
		t.Fatalf("expected mirror failure to be swallowed, got %v", err)
	}

	driver := driverRepo.GetDriver("driver-1")
	if !driver.LocationSet {
		t.Error("expected driver row updated despite mirror failure")
	}
}

func TestUpdateLocation_InvalidCoordinatesRejected(t *testing.T) {
	ctx := context.Background()
	svc := service.NewDriverService(NewMockDriverRepository(), NewMockLocationStore())

	err := svc.UpdateLocation(ctx, service.UpdateLocationRequest{DriverID: "driver-1", Lat: 120, Lng: 90.41})
	if !errors.Is(err, service.ErrInvalidLocation) {
		t.Errorf("expected ErrInvalidLocation, got %v", err)
	}
}

func TestGetLocation_NilBeforeFirstReport(t *testing.T) {
	ctx := context.Background()
	driverRepo := NewMockDriverRepository()
	svc := service.NewDriverService(driverRepo, NewMockLocationStore())

	driverRepo.AddDriver(&domain.Driver{ID: "driver-1"})

	location, err := svc.GetLocation(ctx, "driver-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if location != nil {
		t.Errorf("expected nil location before first report, got %+v", location)
	}
}

func TestNearby_DefaultRadius(t *testing.T) {
	ctx := context.Background()
	driverRepo := NewMockDriverRepository()
	locationStore := NewMockLocationStore()
	svc := service.NewDriverService(driverRepo, locationStore)

	_ = locationStore.Update(ctx, "driver-1", 23.78, 90.41)

	drivers, err := svc.Nearby(ctx, 23.78, 90.41, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drivers) != 1 || drivers[0].DriverID != "driver-1" {
		t.Errorf("expected driver-1 in nearby result, got %v", drivers)
	}
}
