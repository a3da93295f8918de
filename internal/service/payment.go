package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rideshare/internal/domain"
	"rideshare/internal/redis"
	"rideshare/internal/repository"
)

// PaymentService finalizes rides: recording a payment and completing the
// ride are one atomic unit in the store.
type PaymentService struct {
	paymentRepo         repository.PaymentRepository
	rideRepo            repository.RideRepository
	vehicleRepo         repository.VehicleRepository
	statusCache         redis.StatusCacheInterface // optional
	notificationService *NotificationService
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	rideRepo repository.RideRepository,
	vehicleRepo repository.VehicleRepository,
	statusCache redis.StatusCacheInterface,
	notificationService *NotificationService,
) *PaymentService {
	return &PaymentService{
		paymentRepo:         paymentRepo,
		rideRepo:            rideRepo,
		vehicleRepo:         vehicleRepo,
		statusCache:         statusCache,
		notificationService: notificationService,
	}
}

// PayRideRequest contains the parameters for paying a ride.
type PayRideRequest struct {
	RideID string
	Method domain.PaymentMethod
}

// PayRide records a payment with the amount copied from the ride's fare and
// marks the ride completed, atomically.
func (s *PaymentService) PayRide(ctx context.Context, req PayRideRequest) (*domain.Payment, error) {
	if req.RideID == "" {
		return nil, ErrInvalidRideID
	}
	if !domain.ValidPaymentMethod(req.Method) {
		return nil, ErrInvalidPaymentMethod
	}

	ride, err := s.rideRepo.GetByID(ctx, req.RideID)
	if err != nil {
		return nil, err
	}

	// A pending ride has no driver to pay; completion before dispatch would
	// leave it finished with no vehicle and a live queue marker.
	if ride.Status == domain.RideStatusPending {
		return nil, ErrRideNotDispatched
	}

	if ride.Status == domain.RideStatusCompleted {
		return nil, ErrRideCompleted
	}

	if ride.Fare <= 0 {
		return nil, ErrFareNotSet
	}

	payment := &domain.Payment{
		ID:     uuid.New().String(),
		RideID: req.RideID,
		Amount: ride.Fare,
		Method: req.Method,
		Status: domain.PaymentStatusCompleted,
		PaidAt: time.Now(),
	}

	if err := s.paymentRepo.Record(ctx, payment); err != nil {
		return nil, err
	}

	if s.statusCache != nil {
		_ = s.statusCache.Invalidate(ctx, req.RideID)
	}

	s.notifyDriver(ctx, ride, payment)

	return payment, nil
}

// GetPayment retrieves a payment by ID.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}

	return s.paymentRepo.GetByID(ctx, paymentID)
}

// notifyDriver resolves the driver through the ride's vehicle and announces
// the payment. Best effort.
func (s *PaymentService) notifyDriver(ctx context.Context, ride *domain.Ride, payment *domain.Payment) {
	if s.notificationService == nil || ride.VehicleID == "" {
		return
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, ride.VehicleID)
	if err != nil {
		return
	}

	_ = s.notificationService.NotifyPaymentRecorded(ctx, payment, vehicle.DriverID)
}
