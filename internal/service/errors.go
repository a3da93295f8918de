package service

import "errors"

var (
	// ErrInvalidRiderID is returned when the rider ID is empty.
	ErrInvalidRiderID = errors.New("invalid rider id")

	// ErrInvalidDriverID is returned when the driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidRideID is returned when the ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidStartLocation is returned when pickup coordinates are invalid.
	ErrInvalidStartLocation = errors.New("invalid start location")

	// ErrInvalidEndLocation is returned when destination coordinates are invalid.
	ErrInvalidEndLocation = errors.New("invalid end location")

	// ErrMissingLocationLabel is returned when a location label is empty.
	ErrMissingLocationLabel = errors.New("start and end location labels are required")

	// ErrInvalidLocation is returned when location coordinates are invalid.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrRideNotAvailable is returned when a ride has already left the
	// pending state and can no longer be accepted.
	ErrRideNotAvailable = errors.New("ride no longer available")

	// ErrDriverHasActiveRide is returned when a driver tries to accept a
	// second ride while one is in progress.
	ErrDriverHasActiveRide = errors.New("driver already has an active ride")

	// ErrDriverHasNoVehicle is returned when a driver without a registered
	// vehicle tries to accept a ride.
	ErrDriverHasNoVehicle = errors.New("driver has no vehicle")

	// ErrDispatchInProgress is returned when a driver's previous accept
	// attempt is still being processed.
	ErrDispatchInProgress = errors.New("dispatch already in progress for driver")

	// ErrInvalidTransition is returned for backward or out-of-order status
	// transitions.
	ErrInvalidTransition = errors.New("invalid ride status transition")

	// ErrRideNotDispatched is returned when a payment is attempted on a ride
	// that no driver has accepted yet.
	ErrRideNotDispatched = errors.New("ride has not been dispatched")

	// ErrRideCompleted is returned when an operation targets a ride that has
	// already reached its terminal state.
	ErrRideCompleted = errors.New("ride already completed")

	// ErrFareNotSet is returned when a payment is attempted on a ride whose
	// fare has not been computed.
	ErrFareNotSet = errors.New("ride fare is not set")

	// ErrInvalidPaymentMethod is returned when the payment method is unknown.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrInvalidPaymentID is returned when the payment ID is empty.
	ErrInvalidPaymentID = errors.New("invalid payment id")

	// ErrInvalidRatingValue is returned when a rating is outside [1, 5].
	ErrInvalidRatingValue = errors.New("rating must be between 1 and 5")

	// ErrInvalidCredentials is returned when login fails. The cause is not
	// distinguished to avoid account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidSignup is returned when signup input is malformed.
	ErrInvalidSignup = errors.New("name, email and password are required")

	// ErrMissingVehicle is returned when a driver signup omits the vehicle.
	ErrMissingVehicle = errors.New("driver signup requires license and vehicle")

	// ErrNoRoute is returned when the routing collaborator cannot produce a
	// route within its deadline.
	ErrNoRoute = errors.New("no route available")
)
