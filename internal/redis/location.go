package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const driverGeoKey = "drivers:geo"

// NearbyDriver is a driver position returned from the geo index.
type NearbyDriver struct {
	DriverID   string  `json:"driver_id"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	DistanceKm float64 `json:"distance_km"`
}

// LocationStore mirrors driver locations into a Redis geo index so that
// proximity queries do not hit the relational store. The driver row remains
// the authoritative copy.
type LocationStore struct {
	client *redis.Client
}

// NewLocationStore creates a new LocationStore.
func NewLocationStore(client *redis.Client) *LocationStore {
	return &LocationStore{client: client}
}

// Update stores a driver's position using GEOADD. Last writer wins.
func (s *LocationStore) Update(ctx context.Context, driverID string, lat, lng float64) error {
	return s.client.GeoAdd(ctx, driverGeoKey, &redis.GeoLocation{
		Name:      driverID,
		Longitude: lng,
		Latitude:  lat,
	}).Err()
}

// Nearby returns drivers within radiusKm of the given point, nearest first.
func (s *LocationStore) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]NearbyDriver, error) {
	results, err := s.client.GeoRadius(ctx, driverGeoKey, lng, lat, &redis.GeoRadiusQuery{
		Radius:    radiusKm,
		Unit:      "km",
		WithCoord: true,
		WithDist:  true,
		Sort:      "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}

	drivers := make([]NearbyDriver, 0, len(results))
	for _, r := range results {
		drivers = append(drivers, NearbyDriver{
			DriverID:   r.Name,
			Lat:        r.Latitude,
			Lng:        r.Longitude,
			DistanceKm: r.Dist,
		})
	}

	return drivers, nil
}

// Remove drops a driver from the geo index.
func (s *LocationStore) Remove(ctx context.Context, driverID string) error {
	return s.client.ZRem(ctx, driverGeoKey, driverID).Err()
}
