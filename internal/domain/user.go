package domain

import "time"

// Role identifies the capacity in which a subject authenticates.
type Role string

const (
	RoleRider  Role = "Rider"
	RoleDriver Role = "Driver"
)

// Person is the identity anchor shared by riders and drivers.
type Person struct {
	ID    string
	Email string
	Name  string
	Phone string
}

// Rider represents a person acting as a ride consumer.
type Rider struct {
	ID           string
	PersonID     string
	PasswordHash string
	CreatedAt    time.Time
}
