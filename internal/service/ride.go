package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"rideshare/internal/domain"
	"rideshare/internal/redis"
	"rideshare/internal/repository"
)

const dispatchLockTTL = 10 * time.Second

// Fare schedule. The fare is always computed server-side from the routed
// distance; client-submitted figures are ignored.
const (
	baseFare    = 50.0
	perKmRate   = 30.0
	minimumFare = 80.0
)

// RideService coordinates the ride lifecycle: creation, dispatch, status
// progression, and the availability/status read paths.
type RideService struct {
	rideRepo            repository.RideRepository
	vehicleRepo         repository.VehicleRepository
	routing             RoutingService
	lockStore           redis.LockStoreInterface  // optional
	statusCache         redis.StatusCacheInterface // optional
	notificationService *NotificationService
}

// NewRideService creates a new RideService.
func NewRideService(
	rideRepo repository.RideRepository,
	vehicleRepo repository.VehicleRepository,
	routing RoutingService,
	lockStore redis.LockStoreInterface,
	statusCache redis.StatusCacheInterface,
	notificationService *NotificationService,
) *RideService {
	return &RideService{
		rideRepo:            rideRepo,
		vehicleRepo:         vehicleRepo,
		routing:             routing,
		lockStore:           lockStore,
		statusCache:         statusCache,
		notificationService: notificationService,
	}
}

// CreateRideRequest contains the parameters for requesting a ride.
type CreateRideRequest struct {
	RiderID       string
	StartLat      float64
	StartLng      float64
	EndLat        float64
	EndLng        float64
	StartLocation string
	EndLocation   string
	Shared        bool
}

// CreateRide creates a pending ride with a server-computed fare. The ride is
// immediately visible on the availability read path.
func (s *RideService) CreateRide(ctx context.Context, req CreateRideRequest) (*domain.Ride, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	start := domain.LatLng{Lat: req.StartLat, Lng: req.StartLng}
	end := domain.LatLng{Lat: req.EndLat, Lng: req.EndLng}

	// Routing failure degrades to a straight-line estimate, never a hang and
	// never an unpriced ride.
	distanceKm := haversineKm(start, end)
	if s.routing != nil {
		if route, err := s.routing.Route(ctx, start, end); err == nil {
			distanceKm = route.DistanceKm
		}
	}

	ride := &domain.Ride{
		ID:            uuid.New().String(),
		RiderID:       req.RiderID,
		Shared:        req.Shared,
		StartTime:     time.Now(),
		Fare:          calculateFare(distanceKm),
		StartLat:      req.StartLat,
		StartLng:      req.StartLng,
		EndLat:        req.EndLat,
		EndLng:        req.EndLng,
		StartLocation: req.StartLocation,
		EndLocation:   req.EndLocation,
		Status:        domain.RideStatusPending,
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyRideRequested(ctx, ride)
	}

	return ride, nil
}

// AcceptRideRequest contains the parameters for accepting a ride.
type AcceptRideRequest struct {
	DriverID string
	RideID   string
}

// AcceptRide binds a pending ride to the driver's vehicle. The
// pending→accepted transition is a conditional update in the store, so
// concurrent accepts on one ride yield exactly one winner; losers get
// ErrRideNotAvailable.
func (s *RideService) AcceptRide(ctx context.Context, req AcceptRideRequest) (*domain.Ride, error) {
	if req.DriverID == "" {
		return nil, ErrInvalidDriverID
	}
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}

	vehicle, err := s.vehicleRepo.GetByDriverID(ctx, req.DriverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDriverHasNoVehicle
		}
		return nil, err
	}

	// Serialize this driver's own accept attempts so the active-ride check
	// and the conditional update cannot interleave for one driver.
	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireDriverLock(ctx, req.DriverID, dispatchLockTTL)
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, ErrDispatchInProgress
		}
		defer func() { _ = s.lockStore.ReleaseDriverLock(ctx, req.DriverID) }()
	}

	active, err := s.rideRepo.HasActiveRideForDriver(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, ErrDriverHasActiveRide
	}

	if err := s.rideRepo.Accept(ctx, req.RideID, vehicle.ID); err != nil {
		if errors.Is(err, repository.ErrRideNotPending) {
			return nil, ErrRideNotAvailable
		}
		return nil, err
	}

	s.invalidateStatus(ctx, req.RideID)

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyRideAccepted(ctx, ride)
	}

	return ride, nil
}

// ProgressRide moves a dispatched ride forward along the lifecycle. Only the
// in-trip statuses may be set here: accepted is reserved for dispatch and
// completed for payment.
func (s *RideService) ProgressRide(ctx context.Context, rideID string, target domain.RideStatus) (*domain.Ride, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	if target != domain.RideStatusPickedUp && target != domain.RideStatusOnTheWay {
		return nil, ErrInvalidTransition
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}

	// A ride without a vehicle has not been dispatched yet.
	if ride.VehicleID == "" {
		return nil, ErrInvalidTransition
	}

	if !domain.ValidTransition(ride.Status, target) {
		return nil, ErrInvalidTransition
	}

	// The store re-checks the prior status, so a concurrent progression that
	// landed first turns this write into a rejected stale transition.
	if err := s.rideRepo.UpdateStatus(ctx, rideID, ride.Status, target); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrInvalidTransition
		}
		return nil, err
	}

	s.invalidateStatus(ctx, rideID)

	ride.Status = target
	return ride, nil
}

// AvailableRides returns pending rides in FIFO order, earliest request first.
func (s *RideService) AvailableRides(ctx context.Context) ([]*domain.AvailableRide, error) {
	return s.rideRepo.ListAvailable(ctx)
}

// RideStatus returns the polling read model for a ride, served from the
// short-TTL cache when possible.
func (s *RideService) RideStatus(ctx context.Context, rideID string) (*domain.RideStatusView, error) {
	if rideID == "" {
		return nil, ErrInvalidRideID
	}

	if s.statusCache != nil {
		if view, err := s.statusCache.Get(ctx, rideID); err == nil && view != nil {
			return view, nil
		}
	}

	view, err := s.rideRepo.GetStatusView(ctx, rideID)
	if err != nil {
		return nil, err
	}

	if s.statusCache != nil {
		_ = s.statusCache.Set(ctx, view)
	}

	return view, nil
}

// Fare returns the server-computed fare for a ride.
func (s *RideService) Fare(ctx context.Context, rideID string) (float64, error) {
	if rideID == "" {
		return 0, ErrInvalidRideID
	}

	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return 0, err
	}

	if ride.Fare <= 0 {
		return 0, ErrFareNotSet
	}

	return ride.Fare, nil
}

func (s *RideService) invalidateStatus(ctx context.Context, rideID string) {
	if s.statusCache == nil {
		return
	}
	_ = s.statusCache.Invalidate(ctx, rideID)
}

func (s *RideService) validateCreateRequest(req CreateRideRequest) error {
	if req.RiderID == "" {
		return ErrInvalidRiderID
	}
	if !isValidLatitude(req.StartLat) || !isValidLongitude(req.StartLng) {
		return ErrInvalidStartLocation
	}
	if !isValidLatitude(req.EndLat) || !isValidLongitude(req.EndLng) {
		return ErrInvalidEndLocation
	}
	if req.StartLocation == "" || req.EndLocation == "" {
		return ErrMissingLocationLabel
	}
	return nil
}

// calculateFare prices a ride from routed distance: base plus per-kilometer,
// floored at the minimum fare.
func calculateFare(distanceKm float64) float64 {
	fare := baseFare + distanceKm*perKmRate
	if fare < minimumFare {
		return minimumFare
	}
	return fare
}

func isValidLatitude(lat float64) bool {
	return lat >= -90 && lat <= 90
}

func isValidLongitude(lng float64) bool {
	return lng >= -180 && lng <= 180
}
