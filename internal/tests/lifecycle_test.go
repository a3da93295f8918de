package tests

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
	"rideshare/internal/service"
)

func newLifecycleFixture() (*MockRideRepository, *MockStatusCache, *service.RideService) {
	rideRepo := NewMockRideRepository()
	statusCache := NewMockStatusCache()
	svc := service.NewRideService(rideRepo, NewMockVehicleRepository(), nil, nil, statusCache, nil)
	return rideRepo, statusCache, svc
}

func addDispatchedRide(rideRepo *MockRideRepository, id string, status domain.RideStatus) {
	ride := newPendingRide(id)
	ride.VehicleID = "vehicle-1"
	ride.Status = status
	rideRepo.AddRide(ride)
}

func TestProgressRide_ForwardTransitions(t *testing.T) {
	ctx := context.Background()
	rideRepo, _, svc := newLifecycleFixture()

	addDispatchedRide(rideRepo, "ride-1", domain.RideStatusAccepted)

	ride, err := svc.ProgressRide(ctx, "ride-1", domain.RideStatusPickedUp)
	if err != nil {
		t.Fatalf("accepted→picked_up failed: %v", err)
	}
	if ride.Status != domain.RideStatusPickedUp {
		t.Errorf("expected picked_up, got %s", ride.Status)
	}

	ride, err = svc.ProgressRide(ctx, "ride-1", domain.RideStatusOnTheWay)
	if err != nil {
		t.Fatalf("picked_up→on_the_way failed: %v", err)
	}
	if ride.Status != domain.RideStatusOnTheWay {
		t.Errorf("expected on_the_way, got %s", ride.Status)
	}
}

func TestProgressRide_BackwardTransitionRejected(t *testing.T) {
	ctx := context.Background()
	rideRepo, _, svc := newLifecycleFixture()

	addDispatchedRide(rideRepo, "ride-1", domain.RideStatusOnTheWay)

	_, err := svc.ProgressRide(ctx, "ride-1", domain.RideStatusPickedUp)
	if !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestProgressRide_SkipFromAcceptedAllowed(t *testing.T) {
	ctx := context.Background()
	rideRepo, _, svc := newLifecycleFixture()

	addDispatchedRide(rideRepo, "ride-1", domain.RideStatusAccepted)

	// Forward by more than one step is still forward.
	if _, err := svc.ProgressRide(ctx, "ride-1", domain.RideStatusOnTheWay); err != nil {
		t.Errorf("accepted→on_the_way should be allowed, got %v", err)
	}
}

func TestProgressRide_ReservedTargetsRejected(t *testing.T) {
	ctx := context.Background()
	rideRepo, _, svc := newLifecycleFixture()

	addDispatchedRide(rideRepo, "ride-1", domain.RideStatusAccepted)

	// accepted is set only by dispatch, completed only by payment.
	for _, target := range []domain.RideStatus{
		domain.RideStatusPending,
		domain.RideStatusAccepted,
		domain.RideStatusCompleted,
		"teleported",
	} {
		if _, err := svc.ProgressRide(ctx, "ride-1", target); !errors.Is(err, service.ErrInvalidTransition) {
			t.Errorf("target %q: expected ErrInvalidTransition, got %v", target, err)
		}
	}
}

func TestProgressRide_StaleWriteCannotRegressStatus(t *testing.T) {
	ctx := context.Background()
	rideRepo, _, svc := newLifecycleFixture()

	addDispatchedRide(rideRepo, "ride-1", domain.RideStatusAccepted)

	// Simulate two progression calls interleaving: both observed accepted,
	// the on_the_way writer landed first. The stale picked_up write must
	// lose at the store instead of rewinding the ride.
	if err := rideRepo.UpdateStatus(ctx, "ride-1", domain.RideStatusAccepted, domain.RideStatusOnTheWay); err != nil {
		t.Fatalf("first writer failed: %v", err)
	}
	if err := rideRepo.UpdateStatus(ctx, "ride-1", domain.RideStatusAccepted, domain.RideStatusPickedUp); !errors.Is(err, repository.ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict for stale writer, got %v", err)
	}
	if got := rideRepo.GetRide("ride-1").Status; got != domain.RideStatusOnTheWay {
		t.Errorf("expected on_the_way to survive, got %s", got)
	}

	_, err := svc.ProgressRide(ctx, "ride-1", domain.RideStatusPickedUp)
	if !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestProgressRide_ConcurrentCallsSingleWinner(t *testing.T) {
	ctx := context.Background()
	rideRepo, _, svc := newLifecycleFixture()

	addDispatchedRide(rideRepo, "ride-1", domain.RideStatusAccepted)

	const attempts = 10
	var wg sync.WaitGroup
	var successes int32

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ProgressRide(ctx, "ride-1", domain.RideStatusPickedUp); err == nil {
				atomic.AddInt32(&successes, 1)
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("expected exactly 1 successful progression, got %d", successes)
	}
	if got := rideRepo.GetRide("ride-1").Status; got != domain.RideStatusPickedUp {
		t.Errorf("expected picked_up, got %s", got)
	}
}

func TestProgressRide_UndispatchedRideRejected(t *testing.T) {
	ctx := context.Background()
	rideRepo, _, svc := newLifecycleFixture()

	rideRepo.AddRide(newPendingRide("ride-1"))

	_, err := svc.ProgressRide(ctx, "ride-1", domain.RideStatusPickedUp)
	if !errors.Is(err, service.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition for undispatched ride, got %v", err)
	}
}

func TestRideStatus_ServedFromCacheThenInvalidated(t *testing.T) {
	ctx := context.Background()
	rideRepo, statusCache, svc := newLifecycleFixture()

	addDispatchedRide(rideRepo, "ride-1", domain.RideStatusAccepted)

	// First read misses and populates the cache.
	view, err := svc.RideStatus(ctx, "ride-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Status != domain.RideStatusAccepted {
		t.Errorf("expected accepted, got %s", view.Status)
	}
	if !statusCache.Cached("ride-1") {
		t.Fatal("expected view to be cached after first read")
	}

	// Second read is served from the cache.
	if _, err := svc.RideStatus(ctx, "ride-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if statusCache.SetCallCount != 1 {
		t.Errorf("expected one cache fill, got %d", statusCache.SetCallCount)
	}

	// Progression invalidates so the next poll sees the new status.
	if _, err := svc.ProgressRide(ctx, "ride-1", domain.RideStatusPickedUp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if statusCache.Cached("ride-1") {
		t.Error("expected cache invalidation on progression")
	}

	view, err = svc.RideStatus(ctx, "ride-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Status != domain.RideStatusPickedUp {
		t.Errorf("expected picked_up after invalidation, got %s", view.Status)
	}
}

func TestRideStatus_IncludesDriverLiveLocation(t *testing.T) {
	ctx := context.Background()
	rideRepo, _, svc := newLifecycleFixture()

	addDispatchedRide(rideRepo, "ride-1", domain.RideStatusPickedUp)
	rideRepo.SetVehicleDriver("vehicle-1", "driver-1")
	rideRepo.SetDriverLocation("driver-1", domain.LatLng{Lat: 23.79, Lng: 90.40})

	view, err := svc.RideStatus(ctx, "ride-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Driver == nil {
		t.Fatal("expected driver location in status view")
	}
	if view.Driver.Lat != 23.79 || view.Driver.Lng != 90.40 {
		t.Errorf("unexpected driver location: %+v", view.Driver)
	}
}

func TestRideStatus_NoDriverBeforeDispatch(t *testing.T) {
	ctx := context.Background()
	rideRepo, _, svc := newLifecycleFixture()

	rideRepo.AddRide(newPendingRide("ride-1"))

	view, err := svc.RideStatus(ctx, "ride-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Driver != nil {
		t.Errorf("expected no driver location on a pending ride, got %+v", view.Driver)
	}
}
