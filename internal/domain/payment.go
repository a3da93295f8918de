package domain

import "time"

// PaymentMethod represents the payment method for a ride.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodWallet PaymentMethod = "mobile_wallet"
	PaymentMethodBank   PaymentMethod = "bank"
)

// ValidPaymentMethod reports whether m is a supported payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodWallet, PaymentMethodBank:
		return true
	}
	return false
}

// PaymentStatus represents the status of a payment record.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
)

// Payment is an append-only record referencing a ride. The amount is copied
// from the ride's fare at the time of payment.
type Payment struct {
	ID     string
	RideID string
	Amount float64
	Method PaymentMethod
	Status PaymentStatus
	PaidAt time.Time
}
