package tests

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"rideshare/internal/domain"
	"rideshare/internal/redis"
	"rideshare/internal/repository"
	"rideshare/internal/service"
)

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is a mock implementation of RideRepository. The accept
// path mirrors the store's conditional update: the status check and the
// write happen under one lock, so concurrent accepts race exactly as they
// would against the database.
type MockRideRepository struct {
	mu            sync.RWMutex
	rides         map[string]*domain.Ride
	requests      map[string]time.Time // queue markers, keyed by ride id
	vehicleDriver map[string]string    // vehicle id → driver id
	driverLoc     map[string]domain.LatLng

	// Counters for verification
	CreateCallCount int32
	AcceptCallCount int32

	// Error injection
	CreateError error
	AcceptError error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{
		rides:         make(map[string]*domain.Ride),
		requests:      make(map[string]time.Time),
		vehicleDriver: make(map[string]string),
		driverLoc:     make(map[string]domain.LatLng),
	}
}

// AddRide adds a ride (and a queue marker if pending) to the mock repository.
func (m *MockRideRepository) AddRide(ride *domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = ride
	if ride.Status == domain.RideStatusPending {
		m.requests[ride.ID] = ride.StartTime
	}
}

// SetVehicleDriver registers which driver owns a vehicle, for active-ride
// checks and status views.
func (m *MockRideRepository) SetVehicleDriver(vehicleID, driverID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicleDriver[vehicleID] = driverID
}

// SetDriverLocation sets the live location joined into status views.
func (m *MockRideRepository) SetDriverLocation(driverID string, loc domain.LatLng) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.driverLoc[driverID] = loc
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *ride
	m.rides[ride.ID] = &stored
	m.requests[ride.ID] = ride.StartTime
	return nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *ride
	return &copy, nil
}

func (m *MockRideRepository) Accept(ctx context.Context, rideID, vehicleID string) error {
	atomic.AddInt32(&m.AcceptCallCount, 1)
	if m.AcceptError != nil {
		return m.AcceptError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[rideID]
	if !ok {
		return repository.ErrNotFound
	}
	if ride.Status != domain.RideStatusPending {
		return repository.ErrRideNotPending
	}
	ride.VehicleID = vehicleID
	ride.Status = domain.RideStatusAccepted
	delete(m.requests, rideID)
	return nil
}

func (m *MockRideRepository) UpdateStatus(ctx context.Context, rideID string, from, to domain.RideStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[rideID]
	if !ok {
		return repository.ErrNotFound
	}
	if ride.Status != from {
		return repository.ErrStatusConflict
	}
	ride.Status = to
	return nil
}

func (m *MockRideRepository) ListAvailable(ctx context.Context) ([]*domain.AvailableRide, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var available []*domain.AvailableRide
	for id, requestedAt := range m.requests {
		ride, ok := m.rides[id]
		if !ok || ride.Status != domain.RideStatusPending {
			continue
		}
		available = append(available, &domain.AvailableRide{
			RideID:        ride.ID,
			StartLocation: ride.StartLocation,
			EndLocation:   ride.EndLocation,
			Start:         domain.LatLng{Lat: ride.StartLat, Lng: ride.StartLng},
			End:           domain.LatLng{Lat: ride.EndLat, Lng: ride.EndLng},
			RequestedAt:   requestedAt,
		})
	}
	sort.Slice(available, func(i, j int) bool {
		return available[i].RequestedAt.Before(available[j].RequestedAt)
	})
	return available, nil
}

func (m *MockRideRepository) GetStatusView(ctx context.Context, rideID string) (*domain.RideStatusView, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[rideID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	view := &domain.RideStatusView{
		RideID: ride.ID,
		Status: ride.Status,
		Start:  domain.LatLng{Lat: ride.StartLat, Lng: ride.StartLng},
		End:    domain.LatLng{Lat: ride.EndLat, Lng: ride.EndLng},
	}
	if ride.VehicleID != "" {
		if driverID, ok := m.vehicleDriver[ride.VehicleID]; ok {
			if loc, ok := m.driverLoc[driverID]; ok {
				view.Driver = &domain.LatLng{Lat: loc.Lat, Lng: loc.Lng}
			}
		}
	}
	return view, nil
}

func (m *MockRideRepository) HasActiveRideForDriver(ctx context.Context, driverID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ride := range m.rides {
		if ride.VehicleID == "" {
			continue
		}
		if m.vehicleDriver[ride.VehicleID] != driverID {
			continue
		}
		if ride.Status != domain.RideStatusPending && ride.Status != domain.RideStatusCompleted {
			return true, nil
		}
	}
	return false, nil
}

// GetRide returns the stored ride for assertions.
func (m *MockRideRepository) GetRide(id string) *domain.Ride {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rides[id]
}

// HasRequest reports whether the queue marker is still live.
func (m *MockRideRepository) HasRequest(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.requests[id]
	return ok
}

// completeRide marks the ride completed under the repository lock. Called by
// the payment mock so both writes appear as one atomic unit. Mirrors the
// store's guard: pending and already-completed rides cannot be finalized.
func (m *MockRideRepository) completeRide(rideID string, endTime time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ride, ok := m.rides[rideID]
	if !ok {
		return repository.ErrNotFound
	}
	if ride.Status == domain.RideStatusPending || ride.Status == domain.RideStatusCompleted {
		return repository.ErrStatusConflict
	}
	ride.Status = domain.RideStatusCompleted
	ride.EndTime = endTime
	return nil
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver

	// Counters for verification
	UpdateLocationCallCount int32

	// Error injection
	UpdateLocationError error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{
		drivers: make(map[string]*domain.Driver),
	}
}

// AddDriver adds a driver to the mock repository.
func (m *MockDriverRepository) AddDriver(driver *domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = driver
}

func (m *MockDriverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *driver
	m.drivers[driver.ID] = &stored
	return nil
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	driver, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *driver
	return &copy, nil
}

func (m *MockDriverRepository) GetByPersonID(ctx context.Context, personID string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.drivers {
		if d.PersonID == personID {
			copy := *d
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockDriverRepository) UpdateLocation(ctx context.Context, id string, lat, lng float64) error {
	atomic.AddInt32(&m.UpdateLocationCallCount, 1)
	if m.UpdateLocationError != nil {
		return m.UpdateLocationError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.CurrentLat = lat
	driver.CurrentLng = lng
	driver.LocationSet = true
	return nil
}

func (m *MockDriverRepository) UpdateRatingAggregate(ctx context.Context, id string, rating float64, count int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	driver, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	driver.Rating = rating
	driver.RatingCount = count
	return nil
}

// GetDriver returns the stored driver for assertions.
func (m *MockDriverRepository) GetDriver(id string) *domain.Driver {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.drivers[id]
}

// ──────────────────────────────────────────────
// MOCK VEHICLE REPOSITORY
// ──────────────────────────────────────────────

// MockVehicleRepository is a mock implementation of VehicleRepository.
type MockVehicleRepository struct {
	mu       sync.RWMutex
	vehicles map[string]*domain.Vehicle
}

// NewMockVehicleRepository creates a new mock vehicle repository.
func NewMockVehicleRepository() *MockVehicleRepository {
	return &MockVehicleRepository{
		vehicles: make(map[string]*domain.Vehicle),
	}
}

// AddVehicle adds a vehicle to the mock repository.
func (m *MockVehicleRepository) AddVehicle(vehicle *domain.Vehicle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vehicles[vehicle.ID] = vehicle
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *vehicle
	m.vehicles[vehicle.ID] = &stored
	return nil
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	vehicle, ok := m.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *vehicle
	return &copy, nil
}

func (m *MockVehicleRepository) GetByDriverID(ctx context.Context, driverID string) (*domain.Vehicle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, v := range m.vehicles {
		if v.DriverID == driverID {
			copy := *v
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ──────────────────────────────────────────────
// MOCK PERSON / RIDER REPOSITORIES
// ──────────────────────────────────────────────

// MockPersonRepository is a mock implementation of PersonRepository.
type MockPersonRepository struct {
	mu      sync.RWMutex
	persons map[string]*domain.Person
}

// NewMockPersonRepository creates a new mock person repository.
func NewMockPersonRepository() *MockPersonRepository {
	return &MockPersonRepository{persons: make(map[string]*domain.Person)}
}

func (m *MockPersonRepository) Create(ctx context.Context, person *domain.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.persons {
		if p.Email == person.Email {
			return repository.ErrDuplicate
		}
	}
	stored := *person
	m.persons[person.ID] = &stored
	return nil
}

func (m *MockPersonRepository) GetByID(ctx context.Context, id string) (*domain.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	person, ok := m.persons[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *person
	return &copy, nil
}

func (m *MockPersonRepository) GetByEmail(ctx context.Context, email string) (*domain.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.persons {
		if p.Email == email {
			copy := *p
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// MockRiderRepository is a mock implementation of RiderRepository.
type MockRiderRepository struct {
	mu     sync.RWMutex
	riders map[string]*domain.Rider
}

// NewMockRiderRepository creates a new mock rider repository.
func NewMockRiderRepository() *MockRiderRepository {
	return &MockRiderRepository{riders: make(map[string]*domain.Rider)}
}

// AddRider adds a rider to the mock repository.
func (m *MockRiderRepository) AddRider(rider *domain.Rider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.riders[rider.ID] = rider
}

func (m *MockRiderRepository) Create(ctx context.Context, rider *domain.Rider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *rider
	m.riders[rider.ID] = &stored
	return nil
}

func (m *MockRiderRepository) GetByID(ctx context.Context, id string) (*domain.Rider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rider, ok := m.riders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *rider
	return &copy, nil
}

// ──────────────────────────────────────────────
// MOCK RATING REPOSITORY
// ──────────────────────────────────────────────

// MockRatingRepository is a mock implementation of RatingRepository. Insert
// and aggregate recomputation happen under one lock, matching the row-locked
// transaction of the real store.
type MockRatingRepository struct {
	mu         sync.Mutex
	rideDriver map[string]string    // ride id → driver id
	values     map[string][]float64 // driver id → rating values

	driverRepo *MockDriverRepository // optional, aggregate mirror
}

// NewMockRatingRepository creates a new mock rating repository. driverRepo
// may be nil if no aggregate mirroring is needed.
func NewMockRatingRepository(driverRepo *MockDriverRepository) *MockRatingRepository {
	return &MockRatingRepository{
		rideDriver: make(map[string]string),
		values:     make(map[string][]float64),
		driverRepo: driverRepo,
	}
}

// SetRideDriver registers which driver served a ride.
func (m *MockRatingRepository) SetRideDriver(rideID, driverID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rideDriver[rideID] = driverID
}

func (m *MockRatingRepository) Rate(ctx context.Context, rating *domain.Rating) (*domain.DriverRatingSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	driverID, ok := m.rideDriver[rating.RideID]
	if !ok {
		return nil, repository.ErrNotFound
	}

	m.values[driverID] = append(m.values[driverID], rating.Value)

	var sum float64
	for _, v := range m.values[driverID] {
		sum += v
	}
	count := int64(len(m.values[driverID]))
	mean := sum / float64(count)

	if m.driverRepo != nil {
		if err := m.driverRepo.UpdateRatingAggregate(ctx, driverID, mean, count); err != nil {
			return nil, err
		}
	}

	return &domain.DriverRatingSummary{
		DriverID:    driverID,
		Rating:      mean,
		RatingCount: count,
	}, nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository. Record
// completes the referenced ride through the ride mock so both writes land or
// neither does.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment
	rides    *MockRideRepository

	// Counters for verification
	RecordCallCount int32

	// Error injection
	RecordError error
}

// NewMockPaymentRepository creates a new mock payment repository bound to the
// ride mock.
func NewMockPaymentRepository(rides *MockRideRepository) *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]*domain.Payment),
		rides:    rides,
	}
}

func (m *MockPaymentRepository) Record(ctx context.Context, payment *domain.Payment) error {
	atomic.AddInt32(&m.RecordCallCount, 1)
	if m.RecordError != nil {
		return m.RecordError
	}

	if err := m.rides.completeRide(payment.RideID, payment.PaidAt); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *payment
	m.payments[payment.ID] = &stored
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payment, ok := m.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *payment
	return &copy, nil
}

// CountPayments returns the number of recorded payments.
func (m *MockPaymentRepository) CountPayments() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.payments)
}

// ──────────────────────────────────────────────
// MOCK LOCATION STORE
// ──────────────────────────────────────────────

// MockLocationStore is a mock implementation of the geo index.
type MockLocationStore struct {
	mu        sync.RWMutex
	locations map[string]redis.NearbyDriver

	// Counters for verification
	UpdateCallCount int32

	// Error injection
	UpdateError error
}

// NewMockLocationStore creates a new mock location store.
func NewMockLocationStore() *MockLocationStore {
	return &MockLocationStore{locations: make(map[string]redis.NearbyDriver)}
}

func (m *MockLocationStore) Update(ctx context.Context, driverID string, lat, lng float64) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[driverID] = redis.NearbyDriver{DriverID: driverID, Lat: lat, Lng: lng}
	return nil
}

func (m *MockLocationStore) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]redis.NearbyDriver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	// No real geo filtering; returns everything.
	result := make([]redis.NearbyDriver, 0, len(m.locations))
	for _, loc := range m.locations {
		result = append(result, loc)
	}
	return result, nil
}

func (m *MockLocationStore) Remove(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locations, driverID)
	return nil
}

// HasLocation reports whether the driver is present in the index.
func (m *MockLocationStore) HasLocation(driverID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.locations[driverID]
	return ok
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of the dispatch lock store.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]time.Time

	// Counters for verification
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]time.Time)}
}

func (m *MockLockStore) AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if expiry, held := m.locks[driverID]; held && time.Now().Before(expiry) {
		return false, nil
	}
	m.locks[driverID] = time.Now().Add(ttl)
	return true, nil
}

func (m *MockLockStore) ReleaseDriverLock(ctx context.Context, driverID string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, driverID)
	return nil
}

// ──────────────────────────────────────────────
// MOCK STATUS CACHE
// ──────────────────────────────────────────────

// MockStatusCache is a mock implementation of the ride-status cache.
type MockStatusCache struct {
	mu    sync.RWMutex
	views map[string]*domain.RideStatusView

	// Counters for verification
	GetCallCount        int32
	SetCallCount        int32
	InvalidateCallCount int32
}

// NewMockStatusCache creates a new mock status cache.
func NewMockStatusCache() *MockStatusCache {
	return &MockStatusCache{views: make(map[string]*domain.RideStatusView)}
}

func (m *MockStatusCache) Get(ctx context.Context, rideID string) (*domain.RideStatusView, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	m.mu.RLock()
	defer m.mu.RUnlock()
	view, ok := m.views[rideID]
	if !ok {
		return nil, nil // cache miss
	}
	copy := *view
	return &copy, nil
}

func (m *MockStatusCache) Set(ctx context.Context, view *domain.RideStatusView) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *view
	m.views[view.RideID] = &stored
	return nil
}

func (m *MockStatusCache) Invalidate(ctx context.Context, rideID string) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.views, rideID)
	return nil
}

// Cached reports whether a view is currently cached.
func (m *MockStatusCache) Cached(rideID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.views[rideID]
	return ok
}

// ──────────────────────────────────────────────
// MOCK ROUTER
// ──────────────────────────────────────────────

// MockRouter is a mock implementation of the routing collaborator.
type MockRouter struct {
	mu sync.Mutex

	// Route returned on success.
	DistanceKm float64
	Duration   time.Duration

	// Error injection
	RouteError error

	// Counters for verification
	RouteCallCount int32
}

// NewMockRouter creates a mock router returning the given distance.
func NewMockRouter(distanceKm float64) *MockRouter {
	return &MockRouter{DistanceKm: distanceKm}
}

func (m *MockRouter) Route(ctx context.Context, start, end domain.LatLng) (*service.Route, error) {
	atomic.AddInt32(&m.RouteCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RouteError != nil {
		return nil, m.RouteError
	}
	return &service.Route{
		Path:       []domain.LatLng{start, end},
		DistanceKm: m.DistanceKm,
		Duration:   m.Duration,
	}, nil
}

// ──────────────────────────────────────────────
// HELPER ERRORS
// ──────────────────────────────────────────────

var ErrMockUnavailable = errors.New("mock: collaborator unavailable")
