package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"googlemaps.github.io/maps"

	"rideshare/internal/domain"
)

// Route is an ordered path between two points plus trip distance and
// duration, as produced by the external routing collaborator.
type Route struct {
	Path       []domain.LatLng
	DistanceKm float64
	Duration   time.Duration
}

// RoutingService is the external directions collaborator. Implementations
// must respect a bounded deadline; failure means "no route", never a hang.
type RoutingService interface {
	Route(ctx context.Context, start, end domain.LatLng) (*Route, error)
}

// MapsRouter resolves routes through the Google Directions API.
type MapsRouter struct {
	client  *maps.Client
	timeout time.Duration
}

// NewMapsRouter creates a directions-backed router.
func NewMapsRouter(apiKey string, timeout time.Duration) (*MapsRouter, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &MapsRouter{client: client, timeout: timeout}, nil
}

// Ensure MapsRouter implements RoutingService.
var _ RoutingService = (*MapsRouter)(nil)

// Route requests driving directions between start and end.
func (r *MapsRouter) Route(ctx context.Context, start, end domain.LatLng) (*Route, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	routes, _, err := r.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      fmt.Sprintf("%f,%f", start.Lat, start.Lng),
		Destination: fmt.Sprintf("%f,%f", end.Lat, end.Lng),
		Mode:        maps.TravelModeDriving,
	})
	if err != nil || len(routes) == 0 || len(routes[0].Legs) == 0 {
		return nil, ErrNoRoute
	}

	leg := routes[0].Legs[0]

	path := make([]domain.LatLng, 0, len(leg.Steps)+1)
	for _, step := range leg.Steps {
		path = append(path, domain.LatLng{Lat: step.StartLocation.Lat, Lng: step.StartLocation.Lng})
	}
	path = append(path, domain.LatLng{Lat: leg.EndLocation.Lat, Lng: leg.EndLocation.Lng})

	return &Route{
		Path:       path,
		DistanceKm: float64(leg.Distance.Meters) / 1000.0,
		Duration:   leg.Duration,
	}, nil
}

const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance between two points. Used as
// the fare-estimation fallback when the routing collaborator fails.
func haversineKm(a, b domain.LatLng) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
