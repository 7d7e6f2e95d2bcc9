package models

import "time"

// MaintenanceStatus is the closed set of states for a service record.
type MaintenanceStatus string

const (
	MaintenanceInProgress MaintenanceStatus = "In Progress"
	MaintenanceCompleted  MaintenanceStatus = "Completed"
)

// IsValid checks if a maintenance status is known.
func (s MaintenanceStatus) IsValid() bool {
	return s == MaintenanceInProgress || s == MaintenanceCompleted
}

// MaintenanceRecord represents a vehicle service log entry. While In
// Progress the referenced vehicle is held In Shop.
type MaintenanceRecord struct {
	ID        string            `bson:"_id" json:"id"`
	VehicleID string            `bson:"vehicle_id" json:"vehicle_id"`
	Type      string            `bson:"type" json:"type"` // "Oil Change", "Tyre Rotation", "Brake Service", ...
	Date      time.Time         `bson:"date" json:"date"`
	Cost      float64           `bson:"cost" json:"cost"`
	Notes     string            `bson:"notes" json:"notes"`
	Status    MaintenanceStatus `bson:"status" json:"status"`
	CreatedAt time.Time         `bson:"created_at" json:"created_at"`
}
