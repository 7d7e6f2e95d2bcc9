package fleet

import (
	"math"
	"time"

	"github.com/fleetops/fleet-command/internal/models"
)

// Derived views: pure read-only projections recomputed per call. None of
// them stores state, so they are always consistent with the collections
// at the moment of the call.

// UtilizationRate is the share of the fleet currently On Trip, as a
// percentage. An empty fleet is 0, not NaN.
func (c *Coordinator) UtilizationRate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := len(c.store.vehicleOrder)
	if total == 0 {
		return 0
	}
	onTrip := 0
	for _, v := range c.store.vehicles {
		if v.Status == models.VehicleOnTrip {
			onTrip++
		}
	}
	return float64(onTrip) / float64(total) * 100
}

// FuelEfficiency is total km driven per liter across a vehicle's fuel
// logs. ok is false when no liters are recorded; there is no meaningful
// number to show then.
func (c *Coordinator) FuelEfficiency(vehicleID string) (kmPerLiter float64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var liters, km float64
	for _, f := range c.store.fuelLogs {
		if f.VehicleID == vehicleID {
			liters += f.Liters
			km += f.KmDriven
		}
	}
	if liters == 0 {
		return 0, false
	}
	return km / liters, true
}

// TripCompletionRate is completed/trips for a driver, 0 when the driver
// has no terminated trips yet.
func (c *Coordinator) TripCompletionRate(driverID string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.store.drivers[driverID]
	if !ok || d.Trips == 0 {
		return 0
	}
	return float64(d.Completed) / float64(d.Trips)
}

// LicenseStatus is the compliance verdict for a driver license at a
// given instant.
type LicenseStatus struct {
	Expired       bool `json:"expired"`
	DaysRemaining int  `json:"days_remaining"`
}

// CheckLicense evaluates a driver's license against asOf. DaysRemaining
// rounds up, so a license expiring later today still shows one day.
func CheckLicense(d models.Driver, asOf time.Time) LicenseStatus {
	if d.LicenseExpiry.Before(asOf) {
		return LicenseStatus{Expired: true}
	}
	days := int(math.Ceil(d.LicenseExpiry.Sub(asOf).Hours() / 24))
	return LicenseStatus{DaysRemaining: days}
}

// LicenseStatus evaluates a stored driver's license against the
// coordinator clock.
func (c *Coordinator) LicenseStatus(driverID string) (LicenseStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.store.drivers[driverID]
	if !ok {
		return LicenseStatus{}, &NotFoundError{Kind: "driver", ID: driverID}
	}
	return CheckLicense(d, c.now()), nil
}

// DashboardStats is the command-center overview block.
type DashboardStats struct {
	ActiveFleet       int     `json:"active_fleet"`       // vehicles On Trip
	MaintenanceAlerts int     `json:"maintenance_alerts"` // vehicles In Shop
	UtilizationPct    float64 `json:"utilization_pct"`
	PendingCargo      int     `json:"pending_cargo"` // Draft trips
}

// Dashboard computes the overview counters in one pass.
func (c *Coordinator) Dashboard() DashboardStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var stats DashboardStats
	for _, v := range c.store.vehicles {
		switch v.Status {
		case models.VehicleOnTrip:
			stats.ActiveFleet++
		case models.VehicleInShop:
			stats.MaintenanceAlerts++
		}
	}
	if total := len(c.store.vehicleOrder); total > 0 {
		stats.UtilizationPct = float64(stats.ActiveFleet) / float64(total) * 100
	}
	for _, t := range c.store.trips {
		if t.Status == models.TripDraft {
			stats.PendingCargo++
		}
	}
	return stats
}

// VehicleFuelSummary aggregates fuel spend and efficiency per vehicle.
type VehicleFuelSummary struct {
	VehicleID     string  `json:"vehicle_id"`
	VehicleName   string  `json:"vehicle_name"`
	TotalCost     float64 `json:"total_cost"`
	TotalLiters   float64 `json:"total_liters"`
	TotalKm       float64 `json:"total_km"`
	KmPerLiter    float64 `json:"km_per_liter"`
	HasEfficiency bool    `json:"has_efficiency"` // false when no liters logged
}

// FuelSummaries returns one summary per vehicle, in vehicle insertion
// order. Fuel logs pointing at deleted vehicles are left out; the log
// table still shows them with an unresolved vehicle.
func (c *Coordinator) FuelSummaries() []VehicleFuelSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	byVehicle := make(map[string]*VehicleFuelSummary)
	out := make([]VehicleFuelSummary, 0, len(c.store.vehicleOrder))
	for _, id := range c.store.vehicleOrder {
		v := c.store.vehicles[id]
		out = append(out, VehicleFuelSummary{VehicleID: v.ID, VehicleName: v.Name})
		byVehicle[v.ID] = &out[len(out)-1]
	}
	for _, f := range c.store.fuelLogs {
		sum, ok := byVehicle[f.VehicleID]
		if !ok {
			continue
		}
		sum.TotalCost += f.Cost
		sum.TotalLiters += f.Liters
		sum.TotalKm += f.KmDriven
	}
	for i := range out {
		if out[i].TotalLiters > 0 {
			out[i].KmPerLiter = out[i].TotalKm / out[i].TotalLiters
			out[i].HasEfficiency = true
		}
	}
	return out
}
