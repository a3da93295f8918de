package domain

import "time"

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusPending   RideStatus = "pending"
	RideStatusAccepted  RideStatus = "accepted"
	RideStatusPickedUp  RideStatus = "picked_up"
	RideStatusOnTheWay  RideStatus = "on_the_way"
	RideStatusCompleted RideStatus = "completed"
)

// statusRank defines the ordering of the ride lifecycle.
var statusRank = map[RideStatus]int{
	RideStatusPending:   0,
	RideStatusAccepted:  1,
	RideStatusPickedUp:  2,
	RideStatusOnTheWay:  3,
	RideStatusCompleted: 4,
}

// Valid reports whether s is a known ride status.
func (s RideStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Terminal reports whether s ends the ride lifecycle.
func (s RideStatus) Terminal() bool {
	return s == RideStatusCompleted
}

// ValidTransition reports whether a ride may move from one status to another.
// Transitions are forward-only along the lifecycle; backward or repeated
// transitions are rejected.
func ValidTransition(from, to RideStatus) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// Ride represents one requested trip, tracked from request through completion.
// VehicleID is empty exactly while the ride is pending.
type Ride struct {
	ID            string
	RiderID       string
	VehicleID     string
	Shared        bool
	StartTime     time.Time
	EndTime       time.Time
	Fare          float64 // 0 means not yet computed
	StartLat      float64
	StartLng      float64
	EndLat        float64
	EndLng        float64
	StartLocation string
	EndLocation   string
	Status        RideStatus
}

// LatLng is a coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RideStatusView is the read model served to polling clients. Driver is nil
// until a vehicle is assigned and the driver has reported a location.
type RideStatusView struct {
	RideID string
	Status RideStatus
	Start  LatLng
	End    LatLng
	Driver *LatLng
}

// AvailableRide is a pending ride as seen by drivers browsing the queue.
type AvailableRide struct {
	RideID        string
	StartLocation string
	EndLocation   string
	Start         LatLng
	End           LatLng
	RequestedAt   time.Time
}
