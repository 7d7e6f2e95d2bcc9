package fleet

import (
	"time"

	"github.com/fleetops/fleet-command/internal/models"
)

// Seed loads a small demo fleet into an empty store. It writes through
// the store directly, which is the only path producing Draft trips:
// live dispatch always creates trips already Dispatched.
func Seed(s *Store, now time.Time) {
	year := func(years int) time.Time { return now.AddDate(years, 0, 0) }

	s.putVehicle(models.Vehicle{
		ID: "V1", Name: "Van-01", Model: "Toyota HiAce", Plate: "TN01AB1234",
		Type: models.VehicleTypeVan, Capacity: 1000, Odometer: 45200,
		AcquisitionCost: 1800000, Status: models.VehicleOnTrip, CreatedAt: now,
	})
	s.putVehicle(models.Vehicle{
		ID: "V2", Name: "Truck-01", Model: "Tata 407", Plate: "TN02CD5678",
		Type: models.VehicleTypeTruck, Capacity: 4000, Odometer: 112000,
		AcquisitionCost: 3200000, Status: models.VehicleAvailable, CreatedAt: now,
	})
	s.putVehicle(models.Vehicle{
		ID: "V3", Name: "Bike-01", Model: "Hero Splendor", Plate: "TN03EF9012",
		Type: models.VehicleTypeBike, Capacity: 20, Odometer: 8300,
		AcquisitionCost: 85000, Status: models.VehicleInShop, CreatedAt: now,
	})

	s.putDriver(models.Driver{
		ID: "D1", Name: "Arun Kumar", License: "TN1234567", LicenseExpiry: year(2),
		Category: models.CategoryVan, Phone: "9876543210",
		Status: models.DriverOnDuty, Trips: 14, Completed: 13, SafetyScore: 96, CreatedAt: now,
	})
	s.putDriver(models.Driver{
		ID: "D2", Name: "Suresh Babu", License: "TN7654321", LicenseExpiry: year(1),
		Category: models.CategoryTruck, Phone: "9876501234",
		Status: models.DriverOffDuty, Trips: 8, Completed: 7, SafetyScore: 88, CreatedAt: now,
	})

	s.putTrip(models.Trip{
		ID: "T1", VehicleID: "V1", DriverID: "D1",
		Origin: "Chennai", Destination: "Bangalore",
		Cargo: "Electronics", CargoWeight: 800, Date: now,
		Status: models.TripDispatched, Revenue: 12000, CreatedAt: now,
	})
	s.putTrip(models.Trip{
		ID: "T2", VehicleID: "V2", DriverID: "D2",
		Origin: "Coimbatore", Destination: "Madurai",
		Cargo: "Textiles", CargoWeight: 2500, Date: now.AddDate(0, 0, 2),
		Status: models.TripDraft, Revenue: 0, CreatedAt: now,
	})

	s.putMaintenance(models.MaintenanceRecord{
		ID: "M1", VehicleID: "V3", Type: "Brake Service", Date: now,
		Cost: 1500, Notes: "Front pads worn", Status: models.MaintenanceInProgress,
		CreatedAt: now,
	})

	s.putFuelLog(models.FuelLog{
		ID: "F1", VehicleID: "V1", TripID: "T1",
		Liters: 40, Cost: 4100, KmDriven: 350, Date: now, CreatedAt: now,
	})
	s.putFuelLog(models.FuelLog{
		ID: "F2", VehicleID: "V2",
		Liters: 60, Cost: 6200, KmDriven: 420, Date: now, CreatedAt: now,
	})
}
