package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"rideshare/internal/domain"
)

// StatusCacheTTL bounds how stale a polled ride status may be.
const StatusCacheTTL = 3 * time.Second

const statusCachePrefix = "cache:ride:status:"

// StatusCache absorbs ride-status polling with a short-TTL cache. Writers to
// the ride lifecycle invalidate on transition; the TTL covers driver
// location drift.
type StatusCache struct {
	client *redis.Client
}

// NewStatusCache creates a new StatusCache.
func NewStatusCache(client *redis.Client) *StatusCache {
	return &StatusCache{client: client}
}

// cachedStatusView is the wire form of the cached read model.
type cachedStatusView struct {
	RideID    string  `json:"ride_id"`
	Status    string  `json:"status"`
	StartLat  float64 `json:"start_lat"`
	StartLng  float64 `json:"start_lng"`
	EndLat    float64 `json:"end_lat"`
	EndLng    float64 `json:"end_lng"`
	DriverLat float64 `json:"driver_lat"`
	DriverLng float64 `json:"driver_lng"`
	HasDriver bool    `json:"has_driver"`
}

// Get retrieves a cached status view, or nil on a miss.
func (s *StatusCache) Get(ctx context.Context, rideID string) (*domain.RideStatusView, error) {
	data, err := s.client.Get(ctx, statusCachePrefix+rideID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var cached cachedStatusView
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	view := &domain.RideStatusView{
		RideID: cached.RideID,
		Status: domain.RideStatus(cached.Status),
		Start:  domain.LatLng{Lat: cached.StartLat, Lng: cached.StartLng},
		End:    domain.LatLng{Lat: cached.EndLat, Lng: cached.EndLng},
	}
	if cached.HasDriver {
		view.Driver = &domain.LatLng{Lat: cached.DriverLat, Lng: cached.DriverLng}
	}
	return view, nil
}

// Set stores a status view with the polling TTL.
func (s *StatusCache) Set(ctx context.Context, view *domain.RideStatusView) error {
	cached := cachedStatusView{
		RideID:   view.RideID,
		Status:   string(view.Status),
		StartLat: view.Start.Lat,
		StartLng: view.Start.Lng,
		EndLat:   view.End.Lat,
		EndLng:   view.End.Lng,
	}
	if view.Driver != nil {
		cached.DriverLat = view.Driver.Lat
		cached.DriverLng = view.Driver.Lng
		cached.HasDriver = true
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, statusCachePrefix+view.RideID, data, StatusCacheTTL).Err()
}

// Invalidate drops the cached view after a lifecycle transition.
func (s *StatusCache) Invalidate(ctx context.Context, rideID string) error {
	return s.client.Del(ctx, statusCachePrefix+rideID).Err()
}
