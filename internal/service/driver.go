package service

import (
	"context"

	"rideshare/internal/domain"
	"rideshare/internal/redis"
	"rideshare/internal/repository"
)

const defaultNearbyRadiusKm = 5.0

// DriverService handles driver location reporting and lookup. The driver row
// is the authoritative copy; the geo index is a best-effort mirror for
// proximity queries.
type DriverService struct {
	driverRepo    repository.DriverRepository
	locationStore redis.LocationStoreInterface // optional
}

// NewDriverService creates a new DriverService.
func NewDriverService(driverRepo repository.DriverRepository, locationStore redis.LocationStoreInterface) *DriverService {
	return &DriverService{
		driverRepo:    driverRepo,
		locationStore: locationStore,
	}
}

// UpdateLocationRequest contains the parameters for a location report.
type UpdateLocationRequest struct {
	DriverID string
	Lat      float64
	Lng      float64
}

// UpdateLocation overwrites the driver's current location. Last writer wins.
func (s *DriverService) UpdateLocation(ctx context.Context, req UpdateLocationRequest) error {
	if req.DriverID == "" {
		return ErrInvalidDriverID
	}
	if !isValidLatitude(req.Lat) || !isValidLongitude(req.Lng) {
		return ErrInvalidLocation
	}

	if err := s.driverRepo.UpdateLocation(ctx, req.DriverID, req.Lat, req.Lng); err != nil {
		return err
	}

	if s.locationStore != nil {
		_ = s.locationStore.Update(ctx, req.DriverID, req.Lat, req.Lng)
	}

	return nil
}

// GetLocation returns the driver's last reported location, or nil if the
// driver has never reported one.
func (s *DriverService) GetLocation(ctx context.Context, driverID string) (*domain.LatLng, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	return driver.Location(), nil
}

// Nearby returns drivers within radiusKm of the given point from the geo
// index, nearest first.
func (s *DriverService) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]redis.NearbyDriver, error) {
	if !isValidLatitude(lat) || !isValidLongitude(lng) {
		return nil, ErrInvalidLocation
	}
	if radiusKm <= 0 {
		radiusKm = defaultNearbyRadiusKm
	}

	if s.locationStore == nil {
		return nil, nil
	}

	return s.locationStore.Nearby(ctx, lat, lng, radiusKm)
}
