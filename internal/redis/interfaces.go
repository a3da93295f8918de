package redis

import (
	"context"
	"time"

	"rideshare/internal/domain"
)

// LocationStoreInterface defines the interface for the driver geo index.
type LocationStoreInterface interface {
	Update(ctx context.Context, driverID string, lat, lng float64) error
	Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]NearbyDriver, error)
	Remove(ctx context.Context, driverID string) error
}

// LockStoreInterface defines the interface for driver dispatch locks.
type LockStoreInterface interface {
	AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error)
	ReleaseDriverLock(ctx context.Context, driverID string) error
}

// StatusCacheInterface defines the interface for the ride-status cache.
type StatusCacheInterface interface {
	Get(ctx context.Context, rideID string) (*domain.RideStatusView, error)
	Set(ctx context.Context, view *domain.RideStatusView) error
	Invalidate(ctx context.Context, rideID string) error
}

// Ensure concrete types implement interfaces.
var (
	_ LocationStoreInterface = (*LocationStore)(nil)
	_ LockStoreInterface     = (*LockStore)(nil)
	_ StatusCacheInterface   = (*StatusCache)(nil)
)
