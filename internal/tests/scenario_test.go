package tests

import (
	"context"
	"testing"

	"rideshare/internal/domain"
	"rideshare/internal/service"
)

// Full lifecycle: request → dispatch → pickup → payment → two ratings.
func TestRideLifecycle_EndToEnd(t *testing.T) {
	ctx := context.Background()

	rideRepo := NewMockRideRepository()
	vehicleRepo := NewMockVehicleRepository()
	driverRepo := NewMockDriverRepository()
	paymentRepo := NewMockPaymentRepository(rideRepo)
	ratingRepo := NewMockRatingRepository(driverRepo)
	lockStore := NewMockLockStore()
	statusCache := NewMockStatusCache()
	router := NewMockRouter(5.0) // base 50 + 5km * 30 = 200

	rideService := service.NewRideService(rideRepo, vehicleRepo, router, lockStore, statusCache, nil)
	paymentService := service.NewPaymentService(paymentRepo, rideRepo, vehicleRepo, statusCache, nil)
	ratingService := service.NewRatingService(ratingRepo)

	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Rating: domain.DefaultDriverRating})
	registerDriver(rideRepo, vehicleRepo, "driver-1", "vehicle-1")

	// Rider requests a ride; the fare is priced server-side.
	ride, err := rideService.CreateRide(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ride.Fare != 200 {
		t.Fatalf("expected fare 200, got %v", ride.Fare)
	}

	// Driver accepts.
	ride, err = rideService.AcceptRide(ctx, service.AcceptRideRequest{DriverID: "driver-1", RideID: ride.ID})
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if ride.Status != domain.RideStatusAccepted {
		t.Fatalf("expected accepted, got %s", ride.Status)
	}

	// Driver picks the rider up.
	ride, err = rideService.ProgressRide(ctx, ride.ID, domain.RideStatusPickedUp)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if ride.Status != domain.RideStatusPickedUp {
		t.Fatalf("expected picked_up, got %s", ride.Status)
	}

	// Rider pays cash; amount is the stored fare, ride completes.
	payment, err := paymentService.PayRide(ctx, service.PayRideRequest{RideID: ride.ID, Method: domain.PaymentMethodCash})
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	if payment.Amount != 200 {
		t.Errorf("expected payment of 200, got %v", payment.Amount)
	}
	if got := rideRepo.GetRide(ride.ID).Status; got != domain.RideStatusCompleted {
		t.Fatalf("expected completed, got %s", got)
	}

	// Two ratings: 5 then 3 → mean 4.0, count 2.
	ratingRepo.SetRideDriver(ride.ID, "driver-1")
	ratingRepo.SetRideDriver("ride-earlier", "driver-1")

	if _, err := ratingService.RateRide(ctx, service.RateRideRequest{RideID: ride.ID, Value: 5}); err != nil {
		t.Fatalf("first rating: %v", err)
	}
	summary, err := ratingService.RateRide(ctx, service.RateRideRequest{RideID: "ride-earlier", Value: 3})
	if err != nil {
		t.Fatalf("second rating: %v", err)
	}
	if summary.Rating != 4.0 || summary.RatingCount != 2 {
		t.Errorf("expected 4.0/2, got %v/%d", summary.Rating, summary.RatingCount)
	}

	// The completed status is what polling clients see.
	view, err := rideService.RideStatus(ctx, ride.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if view.Status != domain.RideStatusCompleted {
		t.Errorf("expected completed view, got %s", view.Status)
	}
}
