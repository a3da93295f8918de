package tests

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
	"rideshare/internal/service"
)

func TestRateRide_AggregatesMeanAndCount(t *testing.T) {
	ctx := context.Background()
	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Rating: domain.DefaultDriverRating})
	ratingRepo := NewMockRatingRepository(driverRepo)
	ratingRepo.SetRideDriver("ride-1", "driver-1")
	ratingRepo.SetRideDriver("ride-2", "driver-1")
	svc := service.NewRatingService(ratingRepo)

	summary, err := svc.RateRide(ctx, service.RateRideRequest{RideID: "ride-1", Value: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Rating != 5 || summary.RatingCount != 1 {
		t.Errorf("expected 5.0/1, got %v/%d", summary.Rating, summary.RatingCount)
	}

	summary, err = svc.RateRide(ctx, service.RateRideRequest{RideID: "ride-2", Value: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Rating != 4 || summary.RatingCount != 2 {
		t.Errorf("expected 4.0/2, got %v/%d", summary.Rating, summary.RatingCount)
	}

	driver := driverRepo.GetDriver("driver-1")
	if driver.Rating != 4 || driver.RatingCount != 2 {
		t.Errorf("expected driver aggregate 4.0/2, got %v/%d", driver.Rating, driver.RatingCount)
	}
}

func TestRateRide_ValueBounds(t *testing.T) {
	ctx := context.Background()
	svc := service.NewRatingService(NewMockRatingRepository(nil))

	for _, value := range []float64{0, 0.99, 5.01, -1, 6} {
		_, err := svc.RateRide(ctx, service.RateRideRequest{RideID: "ride-1", Value: value})
		if !errors.Is(err, service.ErrInvalidRatingValue) {
			t.Errorf("value %v: expected ErrInvalidRatingValue, got %v", value, err)
		}
	}

	// Bounds are inclusive.
	ratingRepo := NewMockRatingRepository(nil)
	ratingRepo.SetRideDriver("ride-1", "driver-1")
	ratingRepo.SetRideDriver("ride-2", "driver-1")
	svc = service.NewRatingService(ratingRepo)
	if _, err := svc.RateRide(ctx, service.RateRideRequest{RideID: "ride-1", Value: 1}); err != nil {
		t.Errorf("value 1 should be accepted, got %v", err)
	}
	if _, err := svc.RateRide(ctx, service.RateRideRequest{RideID: "ride-2", Value: 5}); err != nil {
		t.Errorf("value 5 should be accepted, got %v", err)
	}
}

func TestRateRide_UnresolvedDriverNotFound(t *testing.T) {
	ctx := context.Background()
	svc := service.NewRatingService(NewMockRatingRepository(nil))

	_, err := svc.RateRide(ctx, service.RateRideRequest{RideID: "ride-unknown", Value: 4})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRateRide_ConcurrentRatingsConsistent(t *testing.T) {
	ctx := context.Background()
	driverRepo := NewMockDriverRepository()
	driverRepo.AddDriver(&domain.Driver{ID: "driver-1", Rating: domain.DefaultDriverRating})
	ratingRepo := NewMockRatingRepository(driverRepo)
	svc := service.NewRatingService(ratingRepo)

	const numRatings = 50
	var sum float64
	for i := 0; i < numRatings; i++ {
		rideID := fmt.Sprintf("ride-%d", i)
		ratingRepo.SetRideDriver(rideID, "driver-1")
		sum += float64(1 + i%5)
	}

	var wg sync.WaitGroup
	wg.Add(numRatings)
	for i := 0; i < numRatings; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := svc.RateRide(ctx, service.RateRideRequest{
				RideID: fmt.Sprintf("ride-%d", i),
				Value:  float64(1 + i%5),
			})
			if err != nil {
				t.Errorf("rating %d failed: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	driver := driverRepo.GetDriver("driver-1")
	if driver.RatingCount != numRatings {
		t.Errorf("expected count %d, got %d", numRatings, driver.RatingCount)
	}
	wantMean := sum / numRatings
	if math.Abs(driver.Rating-wantMean) > 1e-9 {
		t.Errorf("expected mean %v, got %v", wantMean, driver.Rating)
	}
}
