package fleet

import "github.com/fleetops/fleet-command/internal/models"

// Store holds the five entity collections. Pure data: all mutation goes
// through the Coordinator, which owns the store exclusively. Records are
// kept by value, so nothing handed out can alias store state.
type Store struct {
	vehicles    map[string]models.Vehicle
	drivers     map[string]models.Driver
	trips       map[string]models.Trip
	maintenance map[string]models.MaintenanceRecord
	fuelLogs    map[string]models.FuelLog

	// insertion order per collection; iteration promises nothing more
	vehicleOrder     []string
	driverOrder      []string
	tripOrder        []string
	maintenanceOrder []string
	fuelLogOrder     []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		vehicles:    make(map[string]models.Vehicle),
		drivers:     make(map[string]models.Driver),
		trips:       make(map[string]models.Trip),
		maintenance: make(map[string]models.MaintenanceRecord),
		fuelLogs:    make(map[string]models.FuelLog),
	}
}

func (s *Store) putVehicle(v models.Vehicle) {
	if _, ok := s.vehicles[v.ID]; !ok {
		s.vehicleOrder = append(s.vehicleOrder, v.ID)
	}
	s.vehicles[v.ID] = v
}

func (s *Store) putDriver(d models.Driver) {
	if _, ok := s.drivers[d.ID]; !ok {
		s.driverOrder = append(s.driverOrder, d.ID)
	}
	s.drivers[d.ID] = d
}

func (s *Store) putTrip(t models.Trip) {
	if _, ok := s.trips[t.ID]; !ok {
		s.tripOrder = append(s.tripOrder, t.ID)
	}
	s.trips[t.ID] = t
}

func (s *Store) putMaintenance(m models.MaintenanceRecord) {
	if _, ok := s.maintenance[m.ID]; !ok {
		s.maintenanceOrder = append(s.maintenanceOrder, m.ID)
	}
	s.maintenance[m.ID] = m
}

func (s *Store) putFuelLog(f models.FuelLog) {
	if _, ok := s.fuelLogs[f.ID]; !ok {
		s.fuelLogOrder = append(s.fuelLogOrder, f.ID)
	}
	s.fuelLogs[f.ID] = f
}

// The delete primitives report whether a record was removed. Deleting an
// absent id is a no-op, not an error: concurrent UI actions on stale
// views can ask twice.

func (s *Store) deleteVehicle(id string) bool {
	if _, ok := s.vehicles[id]; !ok {
		return false
	}
	delete(s.vehicles, id)
	s.vehicleOrder = removeID(s.vehicleOrder, id)
	return true
}

func (s *Store) deleteDriver(id string) bool {
	if _, ok := s.drivers[id]; !ok {
		return false
	}
	delete(s.drivers, id)
	s.driverOrder = removeID(s.driverOrder, id)
	return true
}

func (s *Store) deleteTrip(id string) bool {
	if _, ok := s.trips[id]; !ok {
		return false
	}
	delete(s.trips, id)
	s.tripOrder = removeID(s.tripOrder, id)
	return true
}

func (s *Store) deleteMaintenance(id string) bool {
	if _, ok := s.maintenance[id]; !ok {
		return false
	}
	delete(s.maintenance, id)
	s.maintenanceOrder = removeID(s.maintenanceOrder, id)
	return true
}

func (s *Store) deleteFuelLog(id string) bool {
	if _, ok := s.fuelLogs[id]; !ok {
		return false
	}
	delete(s.fuelLogs, id)
	s.fuelLogOrder = removeID(s.fuelLogOrder, id)
	return true
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

func (s *Store) vehicleList() []models.Vehicle {
	out := make([]models.Vehicle, 0, len(s.vehicleOrder))
	for _, id := range s.vehicleOrder {
		out = append(out, s.vehicles[id])
	}
	return out
}

func (s *Store) driverList() []models.Driver {
	out := make([]models.Driver, 0, len(s.driverOrder))
	for _, id := range s.driverOrder {
		out = append(out, s.drivers[id])
	}
	return out
}

func (s *Store) tripList() []models.Trip {
	out := make([]models.Trip, 0, len(s.tripOrder))
	for _, id := range s.tripOrder {
		out = append(out, s.trips[id])
	}
	return out
}

func (s *Store) maintenanceList() []models.MaintenanceRecord {
	out := make([]models.MaintenanceRecord, 0, len(s.maintenanceOrder))
	for _, id := range s.maintenanceOrder {
		out = append(out, s.maintenance[id])
	}
	return out
}

func (s *Store) fuelLogList() []models.FuelLog {
	out := make([]models.FuelLog, 0, len(s.fuelLogOrder))
	for _, id := range s.fuelLogOrder {
		out = append(out, s.fuelLogs[id])
	}
	return out
}

// Snapshot is a point-in-time copy of all five collections, in insertion
// order. Used by the archive layer and by callers re-rendering the UI.
type Snapshot struct {
	Vehicles    []models.Vehicle
	Drivers     []models.Driver
	Trips       []models.Trip
	Maintenance []models.MaintenanceRecord
	FuelLogs    []models.FuelLog
}

func (s *Store) snapshot() Snapshot {
	return Snapshot{
		Vehicles:    s.vehicleList(),
		Drivers:     s.driverList(),
		Trips:       s.tripList(),
		Maintenance: s.maintenanceList(),
		FuelLogs:    s.fuelLogList(),
	}
}

// NewStoreFromSnapshot rebuilds a store from an archived snapshot,
// preserving the recorded order.
func NewStoreFromSnapshot(snap Snapshot) *Store {
	s := NewStore()
	for _, v := range snap.Vehicles {
		s.putVehicle(v)
	}
	for _, d := range snap.Drivers {
		s.putDriver(d)
	}
	for _, t := range snap.Trips {
		s.putTrip(t)
	}
	for _, m := range snap.Maintenance {
		s.putMaintenance(m)
	}
	for _, f := range snap.FuelLogs {
		s.putFuelLog(f)
	}
	return s
}
