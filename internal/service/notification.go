package service

import (
	"context"
	"log"

	"rideshare/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationRideRequested   NotificationType = "RIDE_REQUESTED"
	NotificationRideAccepted    NotificationType = "RIDE_ACCEPTED"
	NotificationPaymentRecorded NotificationType = "PAYMENT_RECORDED"
)

// NotificationService delivers lifecycle notifications. The current
// implementation logs; delivery channels can be added behind the same
// methods.
type NotificationService struct{}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyRideRequested announces a new pending ride to the driver pool.
func (s *NotificationService) NotifyRideRequested(ctx context.Context, ride *domain.Ride) error {
	log.Printf("[%s] ride=%s from=%q to=%q fare=%.2f",
		NotificationRideRequested, ride.ID, ride.StartLocation, ride.EndLocation, ride.Fare)
	return nil
}

// NotifyRideAccepted tells the rider their ride has been dispatched.
func (s *NotificationService) NotifyRideAccepted(ctx context.Context, ride *domain.Ride) error {
	log.Printf("[%s] ride=%s rider=%s vehicle=%s",
		NotificationRideAccepted, ride.ID, ride.RiderID, ride.VehicleID)
	return nil
}

// NotifyPaymentRecorded tells the driver a payment was received for their ride.
func (s *NotificationService) NotifyPaymentRecorded(ctx context.Context, payment *domain.Payment, driverID string) error {
	log.Printf("[%s] payment=%s ride=%s driver=%s amount=%.2f method=%s",
		NotificationPaymentRecorded, payment.ID, payment.RideID, driverID, payment.Amount, payment.Method)
	return nil
}
