package models

import "time"

// DriverStatus is the closed set of duty states for a driver.
type DriverStatus string

const (
	DriverOnDuty    DriverStatus = "On Duty"
	DriverOffDuty   DriverStatus = "Off Duty"
	DriverSuspended DriverStatus = "Suspended"
)

// IsValid checks if a driver status is known.
func (s DriverStatus) IsValid() bool {
	switch s {
	case DriverOnDuty, DriverOffDuty, DriverSuspended:
		return true
	default:
		return false
	}
}

// Next advances along the fixed operator cycle
// On Duty -> Off Duty -> Suspended -> On Duty.
func (s DriverStatus) Next() DriverStatus {
	switch s {
	case DriverOnDuty:
		return DriverOffDuty
	case DriverOffDuty:
		return DriverSuspended
	default:
		return DriverOnDuty
	}
}

// DriverCategory is the license class a driver holds. Cars need no
// separate class, so the set is a subset of the vehicle types.
type DriverCategory string

const (
	CategoryVan   DriverCategory = "Van"
	CategoryTruck DriverCategory = "Truck"
	CategoryBike  DriverCategory = "Bike"
)

// IsValid checks if a license category is known.
func (c DriverCategory) IsValid() bool {
	switch c {
	case CategoryVan, CategoryTruck, CategoryBike:
		return true
	default:
		return false
	}
}

// Driver represents a fleet driver with compliance and performance counters.
type Driver struct {
	ID            string         `bson:"_id" json:"id"`
	Name          string         `bson:"name" json:"name"`
	License       string         `bson:"license" json:"license"`
	LicenseExpiry time.Time      `bson:"license_expiry" json:"license_expiry"`
	Category      DriverCategory `bson:"category" json:"category"`
	Phone         string         `bson:"phone" json:"phone"`
	Status        DriverStatus   `bson:"status" json:"status"`
	Trips         int            `bson:"trips" json:"trips"`         // terminated trips, completed or cancelled
	Completed     int            `bson:"completed" json:"completed"` // always <= Trips
	SafetyScore   int            `bson:"safety_score" json:"safety_score"` // 0-100
	CreatedAt     time.Time      `bson:"created_at" json:"created_at"`
}
