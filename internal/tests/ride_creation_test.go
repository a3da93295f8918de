package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"rideshare/internal/domain"
	"rideshare/internal/service"
)

func validCreateRequest() service.CreateRideRequest {
	return service.CreateRideRequest{
		RiderID:       "rider-1",
		StartLat:      23.780636,
		StartLng:      90.419325,
		EndLat:        23.746466,
		EndLng:        90.376015,
		StartLocation: "Gulshan",
		EndLocation:   "Dhanmondi",
	}
}

func TestCreateRide_FareFromRoutedDistance(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	router := NewMockRouter(5.0) // base 50 + 5km * 30 = 200
	svc := service.NewRideService(rideRepo, NewMockVehicleRepository(), router, nil, nil, nil)

	ride, err := svc.CreateRide(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ride.Fare != 200 {
		t.Errorf("expected fare 200, got %v", ride.Fare)
	}
	if ride.Status != domain.RideStatusPending {
		t.Errorf("expected pending status, got %s", ride.Status)
	}
	if ride.VehicleID != "" {
		t.Errorf("expected no vehicle on a pending ride, got %q", ride.VehicleID)
	}
}

func TestCreateRide_MinimumFareApplies(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	router := NewMockRouter(0.5) // base 50 + 15 = 65, floored at 80
	svc := service.NewRideService(rideRepo, NewMockVehicleRepository(), router, nil, nil, nil)

	ride, err := svc.CreateRide(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ride.Fare != 80 {
		t.Errorf("expected minimum fare 80, got %v", ride.Fare)
	}
}

func TestCreateRide_RoutingFailureFallsBackToEstimate(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	router := NewMockRouter(0)
	router.RouteError = ErrMockUnavailable
	svc := service.NewRideService(rideRepo, NewMockVehicleRepository(), router, nil, nil, nil)

	ride, err := svc.CreateRide(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}

	// The straight-line Gulshan→Dhanmondi distance is several kilometers, so
	// the estimated fare must clear the minimum.
	if ride.Fare < 80 {
		t.Errorf("expected a priced ride, got fare %v", ride.Fare)
	}
}

func TestCreateRide_Validation(t *testing.T) {
	ctx := context.Background()
	svc := service.NewRideService(NewMockRideRepository(), NewMockVehicleRepository(), nil, nil, nil, nil)

	testCases := []struct {
		name    string
		mutate  func(*service.CreateRideRequest)
		wantErr error
	}{
		{
			name:    "missing rider",
			mutate:  func(r *service.CreateRideRequest) { r.RiderID = "" },
			wantErr: service.ErrInvalidRiderID,
		},
		{
			name:    "latitude out of range",
			mutate:  func(r *service.CreateRideRequest) { r.StartLat = 91 },
			wantErr: service.ErrInvalidStartLocation,
		},
		{
			name:    "longitude out of range",
			mutate:  func(r *service.CreateRideRequest) { r.EndLng = -181 },
			wantErr: service.ErrInvalidEndLocation,
		},
		{
			name:    "missing label",
			mutate:  func(r *service.CreateRideRequest) { r.EndLocation = "" },
			wantErr: service.ErrMissingLocationLabel,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)
			_, err := svc.CreateRide(ctx, req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestAvailableRides_FIFOAndPendingOnly(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	svc := service.NewRideService(rideRepo, NewMockVehicleRepository(), nil, nil, nil, nil)

	now := time.Now()

	second := newPendingRide("ride-second")
	second.StartTime = now.Add(1 * time.Minute)
	first := newPendingRide("ride-first")
	first.StartTime = now

	accepted := newPendingRide("ride-accepted")
	accepted.StartTime = now.Add(-1 * time.Minute)
	accepted.Status = domain.RideStatusAccepted
	accepted.VehicleID = "vehicle-9"

	rideRepo.AddRide(second)
	rideRepo.AddRide(first)
	rideRepo.AddRide(accepted)

	available, err := svc.AvailableRides(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(available) != 2 {
		t.Fatalf("expected 2 available rides, got %d", len(available))
	}
	if available[0].RideID != "ride-first" || available[1].RideID != "ride-second" {
		t.Errorf("expected FIFO order [ride-first, ride-second], got [%s, %s]",
			available[0].RideID, available[1].RideID)
	}
	for _, r := range available {
		if r.RideID == "ride-accepted" {
			t.Error("accepted ride must not appear in the available list")
		}
	}
}

func TestCreateRide_VisibleToDriversImmediately(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	svc := service.NewRideService(rideRepo, NewMockVehicleRepository(), nil, nil, nil, nil)

	ride, err := svc.CreateRide(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	available, err := svc.AvailableRides(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(available) != 1 || available[0].RideID != ride.ID {
		t.Errorf("expected the new ride in the available list, got %v", available)
	}
}

func TestFare_UnsetFareRejected(t *testing.T) {
	ctx := context.Background()
	rideRepo := NewMockRideRepository()
	svc := service.NewRideService(rideRepo, NewMockVehicleRepository(), nil, nil, nil, nil)

	unpriced := newPendingRide("ride-unpriced")
	unpriced.Fare = 0
	rideRepo.AddRide(unpriced)

	_, err := svc.Fare(ctx, "ride-unpriced")
	if !errors.Is(err, service.ErrFareNotSet) {
		t.Errorf("expected ErrFareNotSet, got %v", err)
	}
}
