package models

import "time"

// VehicleStatus is the closed set of states a fleet vehicle can be in.
type VehicleStatus string

const (
	VehicleAvailable    VehicleStatus = "Available"
	VehicleOnTrip       VehicleStatus = "On Trip"
	VehicleInShop       VehicleStatus = "In Shop"
	VehicleOutOfService VehicleStatus = "Out of Service"
)

// IsValid checks if a vehicle status is one of the four known states.
func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleAvailable, VehicleOnTrip, VehicleInShop, VehicleOutOfService:
		return true
	default:
		return false
	}
}

// VehicleType is the kind of asset.
type VehicleType string

const (
	VehicleTypeVan   VehicleType = "Van"
	VehicleTypeTruck VehicleType = "Truck"
	VehicleTypeBike  VehicleType = "Bike"
	VehicleTypeCar   VehicleType = "Car"
)

// IsValid checks if a vehicle type is known.
func (t VehicleType) IsValid() bool {
	switch t {
	case VehicleTypeVan, VehicleTypeTruck, VehicleTypeBike, VehicleTypeCar:
		return true
	default:
		return false
	}
}

// Vehicle represents a fleet asset.
type Vehicle struct {
	ID              string        `bson:"_id" json:"id"`
	Name            string        `bson:"name" json:"name"`
	Model           string        `bson:"model" json:"model"`
	Plate           string        `bson:"plate" json:"plate"`
	Type            VehicleType   `bson:"type" json:"type"`
	Capacity        float64       `bson:"capacity" json:"capacity"` // max cargo in kg
	Odometer        float64       `bson:"odometer" json:"odometer"` // in kilometers
	AcquisitionCost float64       `bson:"acquisition_cost" json:"acquisition_cost"`
	Status          VehicleStatus `bson:"status" json:"status"`
	CreatedAt       time.Time     `bson:"created_at" json:"created_at"`
}
