package models

import "time"

// FuelLog represents a single refuelling expense. Purely additive; the
// trip link is optional and may outlive the trip it points at.
type FuelLog struct {
	ID        string    `bson:"_id" json:"id"`
	VehicleID string    `bson:"vehicle_id" json:"vehicle_id"`
	TripID    string    `bson:"trip_id,omitempty" json:"trip_id,omitempty"`
	Liters    float64   `bson:"liters" json:"liters"`
	Cost      float64   `bson:"cost" json:"cost"`
	KmDriven  float64   `bson:"km_driven" json:"km_driven"`
	Date      time.Time `bson:"date" json:"date"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
