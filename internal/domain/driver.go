package domain

// DefaultDriverRating is the rating assigned to a driver before any ratings
// have been submitted.
const DefaultDriverRating = 5.0

// Driver represents a person acting as a ride provider.
type Driver struct {
	ID          string
	PersonID    string
	License     string
	Rating      float64
	RatingCount int64
	Active      bool
	CurrentLat  float64
	CurrentLng  float64
	LocationSet bool // false until the first location report
}

// Location returns the driver's current location, or nil if none has been
// reported yet.
func (d *Driver) Location() *LatLng {
	if !d.LocationSet {
		return nil
	}
	return &LatLng{Lat: d.CurrentLat, Lng: d.CurrentLng}
}

// Vehicle is owned by exactly one driver.
type Vehicle struct {
	ID           string
	DriverID     string
	Plate        string
	Manufacturer string
	Model        string
	Year         int
	Color        string
	Seats        int
}
