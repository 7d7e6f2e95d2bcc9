package models

import "time"

// TripStatus is the closed set of states for a trip.
type TripStatus string

const (
	TripDraft      TripStatus = "Draft"
	TripDispatched TripStatus = "Dispatched"
	TripCompleted  TripStatus = "Completed"
	TripCancelled  TripStatus = "Cancelled"
)

// IsValid checks if a trip status is known.
func (s TripStatus) IsValid() bool {
	switch s {
	case TripDraft, TripDispatched, TripCompleted, TripCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further status transition is permitted.
func (s TripStatus) Terminal() bool {
	return s == TripCompleted || s == TripCancelled
}

// Trip represents a cargo delivery from origin to destination. While
// Dispatched it holds an exclusive claim on its vehicle.
type Trip struct {
	ID          string     `bson:"_id" json:"id"`
	VehicleID   string     `bson:"vehicle_id" json:"vehicle_id"`
	DriverID    string     `bson:"driver_id" json:"driver_id"`
	Origin      string     `bson:"origin" json:"origin"`
	Destination string     `bson:"destination" json:"destination"`
	Cargo       string     `bson:"cargo" json:"cargo"`
	CargoWeight float64    `bson:"cargo_weight" json:"cargo_weight"` // in kg
	Date        time.Time  `bson:"date" json:"date"`
	Status      TripStatus `bson:"status" json:"status"`
	Revenue     float64    `bson:"revenue" json:"revenue"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
}
