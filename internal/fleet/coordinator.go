package fleet

import (
	"fmt"
	"sync"
	"time"

	"github.com/fleetops/fleet-command/internal/models"
)

// Coordinator applies fleet operations to the store while keeping
// vehicle, driver, trip and maintenance state mutually consistent. It
// owns the store exclusively: callers never touch collections directly,
// they invoke an operation and then re-read the affected collections.
//
// Every operation validates completely against current state before its
// first write, so a failed precondition leaves all collections
// unchanged. A mutex serializes operations, which preserves the
// one-mutation-in-flight model when the HTTP surface calls in from
// multiple goroutines.
type Coordinator struct {
	mu    sync.Mutex
	store *Store
	now   func() time.Time
	seq   int64
}

// NewCoordinator wraps a store. The clock is injectable so eligibility
// and expiry checks are reproducible in tests; nil means time.Now.
func NewCoordinator(store *Store, now func() time.Time) *Coordinator {
	if now == nil {
		now = time.Now
	}
	c := &Coordinator{store: store, now: now}
	c.seq = now().UnixMilli()
	return c
}

// newID returns a fresh collection-unique id: a kind prefix plus a
// monotonic counter seeded from the clock. Ids are never reused.
func (c *Coordinator) newID(prefix string) string {
	c.seq++
	return fmt.Sprintf("%s%d", prefix, c.seq)
}

// ---- vehicles ----

// VehicleInput carries the registration/edit form fields for a vehicle.
type VehicleInput struct {
	Name            string             `json:"name"`
	Model           string             `json:"model"`
	Plate           string             `json:"plate"`
	Type            models.VehicleType `json:"type"`
	Capacity        float64            `json:"capacity"`
	Odometer        float64            `json:"odometer"`
	AcquisitionCost float64            `json:"acquisition_cost"`
}

func (in *VehicleInput) validate() error {
	if in.Name == "" {
		return &ValidationError{Field: "name", Reason: "vehicle name is required"}
	}
	if in.Plate == "" {
		return &ValidationError{Field: "plate", Reason: "license plate is required"}
	}
	if in.Capacity <= 0 {
		return &ValidationError{Field: "capacity", Reason: "capacity must be positive"}
	}
	if in.Odometer < 0 {
		return &ValidationError{Field: "odometer", Reason: "odometer cannot be negative"}
	}
	if in.Type == "" {
		in.Type = models.VehicleTypeVan
	}
	if !in.Type.IsValid() {
		return &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown vehicle type %q", in.Type)}
	}
	return nil
}

// RegisterVehicle creates a new vehicle in status Available.
func (c *Coordinator) RegisterVehicle(in VehicleInput) (models.Vehicle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := in.validate(); err != nil {
		return models.Vehicle{}, err
	}
	v := models.Vehicle{
		ID:              c.newID("V"),
		Name:            in.Name,
		Model:           in.Model,
		Plate:           in.Plate,
		Type:            in.Type,
		Capacity:        in.Capacity,
		Odometer:        in.Odometer,
		AcquisitionCost: in.AcquisitionCost,
		Status:          models.VehicleAvailable,
		CreatedAt:       c.now(),
	}
	c.store.putVehicle(v)
	return v, nil
}

// UpdateVehicle replaces the editable fields of an existing vehicle.
// Status and id are preserved.
func (c *Coordinator) UpdateVehicle(id string, in VehicleInput) (models.Vehicle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.store.vehicles[id]
	if !ok {
		return models.Vehicle{}, &NotFoundError{Kind: "vehicle", ID: id}
	}
	if err := in.validate(); err != nil {
		return models.Vehicle{}, err
	}
	v.Name = in.Name
	v.Model = in.Model
	v.Plate = in.Plate
	v.Type = in.Type
	v.Capacity = in.Capacity
	v.Odometer = in.Odometer
	v.AcquisitionCost = in.AcquisitionCost
	c.store.putVehicle(v)
	return v, nil
}

// RetireVehicle takes a vehicle Out of Service. This is a deliberately
// permissive operator override: active trips or in-progress maintenance
// are not blocked, only surfaced as a warning.
func (c *Coordinator) RetireVehicle(id string) (models.Vehicle, *DanglingReferenceWarning, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.store.vehicles[id]
	if !ok {
		return models.Vehicle{}, nil, &NotFoundError{Kind: "vehicle", ID: id}
	}
	warn := c.vehicleRefWarning(id)
	v.Status = models.VehicleOutOfService
	c.store.putVehicle(v)
	return v, warn, nil
}

// RestoreVehicle brings a retired vehicle back to Available.
func (c *Coordinator) RestoreVehicle(id string) (models.Vehicle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.store.vehicles[id]
	if !ok {
		return models.Vehicle{}, &NotFoundError{Kind: "vehicle", ID: id}
	}
	v.Status = models.VehicleAvailable
	c.store.putVehicle(v)
	return v, nil
}

// SetOdometer records a telemetry odometer reading. Readings only move
// forward; a lower value than the current one is rejected.
func (c *Coordinator) SetOdometer(id string, km float64) (models.Vehicle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.store.vehicles[id]
	if !ok {
		return models.Vehicle{}, &NotFoundError{Kind: "vehicle", ID: id}
	}
	if km < v.Odometer {
		return models.Vehicle{}, &ValidationError{
			Field:  "odometer",
			Reason: fmt.Sprintf("reading %g km is below current %g km", km, v.Odometer),
		}
	}
	v.Odometer = km
	c.store.putVehicle(v)
	return v, nil
}

// ---- drivers ----

// DriverInput carries the registration form fields for a driver.
type DriverInput struct {
	Name          string                `json:"name"`
	License       string                `json:"license"`
	LicenseExpiry time.Time             `json:"license_expiry"`
	Category      models.DriverCategory `json:"category"`
	Phone         string                `json:"phone"`
}

func (in *DriverInput) validate() error {
	if in.Name == "" {
		return &ValidationError{Field: "name", Reason: "driver name is required"}
	}
	if in.License == "" {
		return &ValidationError{Field: "license", Reason: "license number is required"}
	}
	if in.LicenseExpiry.IsZero() {
		return &ValidationError{Field: "license_expiry", Reason: "license expiry date is required"}
	}
	if in.Category == "" {
		in.Category = models.CategoryVan
	}
	if !in.Category.IsValid() {
		return &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown license category %q", in.Category)}
	}
	return nil
}

// RegisterDriver creates a new driver On Duty with zeroed trip counters
// and a full safety score.
func (c *Coordinator) RegisterDriver(in DriverInput) (models.Driver, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := in.validate(); err != nil {
		return models.Driver{}, err
	}
	d := models.Driver{
		ID:            c.newID("D"),
		Name:          in.Name,
		License:       in.License,
		LicenseExpiry: in.LicenseExpiry,
		Category:      in.Category,
		Phone:         in.Phone,
		Status:        models.DriverOnDuty,
		SafetyScore:   100,
		CreatedAt:     c.now(),
	}
	c.store.putDriver(d)
	return d, nil
}

// CycleDriverStatus advances the driver along the fixed ordering
// On Duty -> Off Duty -> Suspended -> On Duty. Independent of trip
// activity; no validation beyond existence.
func (c *Coordinator) CycleDriverStatus(id string) (models.Driver, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.store.drivers[id]
	if !ok {
		return models.Driver{}, &NotFoundError{Kind: "driver", ID: id}
	}
	d.Status = d.Status.Next()
	c.store.putDriver(d)
	return d, nil
}

// ---- trips ----

// TripInput carries the dispatch form fields for a trip.
type TripInput struct {
	VehicleID   string    `json:"vehicle_id"`
	DriverID    string    `json:"driver_id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Cargo       string    `json:"cargo"`
	CargoWeight float64   `json:"cargo_weight"`
	Date        time.Time `json:"date"`
	Revenue     float64   `json:"revenue"`
}

func (in *TripInput) validate() error {
	if in.VehicleID == "" {
		return &ValidationError{Field: "vehicle_id", Reason: "vehicle is required"}
	}
	if in.DriverID == "" {
		return &ValidationError{Field: "driver_id", Reason: "driver is required"}
	}
	if in.Origin == "" {
		return &ValidationError{Field: "origin", Reason: "origin is required"}
	}
	if in.Destination == "" {
		return &ValidationError{Field: "destination", Reason: "destination is required"}
	}
	if in.CargoWeight <= 0 {
		return &ValidationError{Field: "cargo_weight", Reason: "cargo weight must be positive"}
	}
	return nil
}

// DispatchTrip creates a trip directly in status Dispatched and claims
// its vehicle. The vehicle must be Available and the driver must be On
// Duty with an unexpired license; cargo must fit the vehicle's capacity.
func (c *Coordinator) DispatchTrip(in TripInput) (models.Trip, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := in.validate(); err != nil {
		return models.Trip{}, err
	}
	v, ok := c.store.vehicles[in.VehicleID]
	if !ok {
		return models.Trip{}, &NotFoundError{Kind: "vehicle", ID: in.VehicleID}
	}
	d, ok := c.store.drivers[in.DriverID]
	if !ok {
		return models.Trip{}, &NotFoundError{Kind: "driver", ID: in.DriverID}
	}
	if v.Status != models.VehicleAvailable {
		return models.Trip{}, &IneligibleResourceError{
			Kind: "vehicle", ID: v.ID,
			Reason: fmt.Sprintf("status is %q", v.Status),
		}
	}
	if d.Status != models.DriverOnDuty {
		return models.Trip{}, &IneligibleResourceError{
			Kind: "driver", ID: d.ID,
			Reason: fmt.Sprintf("status is %q", d.Status),
		}
	}
	if !d.LicenseExpiry.After(c.now()) {
		return models.Trip{}, &IneligibleResourceError{
			Kind: "driver", ID: d.ID,
			Reason: fmt.Sprintf("license expired on %s", d.LicenseExpiry.Format("2006-01-02")),
		}
	}
	if in.CargoWeight > v.Capacity {
		return models.Trip{}, &CapacityExceededError{CargoWeight: in.CargoWeight, Capacity: v.Capacity}
	}

	t := models.Trip{
		ID:          c.newID("T"),
		VehicleID:   in.VehicleID,
		DriverID:    in.DriverID,
		Origin:      in.Origin,
		Destination: in.Destination,
		Cargo:       in.Cargo,
		CargoWeight: in.CargoWeight,
		Date:        in.Date,
		Status:      models.TripDispatched,
		Revenue:     in.Revenue,
		CreatedAt:   c.now(),
	}
	v.Status = models.VehicleOnTrip
	c.store.putTrip(t)
	c.store.putVehicle(v)
	return t, nil
}

// SetTripStatus moves a trip along its state machine.
//
// Dispatched -> Completed/Cancelled releases the vehicle claim (vehicle
// back to Available) and bumps the driver's counters: trips always,
// completed only on Completed. Draft -> Dispatched changes the trip
// status alone. Anything else is an invalid transition.
//
// A deleted vehicle or driver does not block termination; the missing
// side is simply skipped.
func (c *Coordinator) SetTripStatus(id string, newStatus models.TripStatus) (models.Trip, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.store.trips[id]
	if !ok {
		return models.Trip{}, &NotFoundError{Kind: "trip", ID: id}
	}

	switch newStatus {
	case models.TripDispatched:
		if t.Status != models.TripDraft {
			return models.Trip{}, &InvalidTransitionError{
				Kind: "trip", ID: id, From: string(t.Status), To: string(newStatus),
			}
		}
		t.Status = models.TripDispatched
		c.store.putTrip(t)
		return t, nil

	case models.TripCompleted, models.TripCancelled:
		if t.Status != models.TripDispatched {
			return models.Trip{}, &InvalidTransitionError{
				Kind: "trip", ID: id, From: string(t.Status), To: string(newStatus),
			}
		}
		t.Status = newStatus
		c.store.putTrip(t)
		if v, ok := c.store.vehicles[t.VehicleID]; ok {
			v.Status = models.VehicleAvailable
			c.store.putVehicle(v)
		}
		if d, ok := c.store.drivers[t.DriverID]; ok {
			d.Trips++
			if newStatus == models.TripCompleted {
				d.Completed++
			}
			c.store.putDriver(d)
		}
		return t, nil

	default:
		return models.Trip{}, &InvalidTransitionError{
			Kind: "trip", ID: id, From: string(t.Status), To: string(newStatus),
		}
	}
}

// ---- maintenance ----

// MaintenanceInput carries the service log form fields.
type MaintenanceInput struct {
	VehicleID string    `json:"vehicle_id"`
	Type      string    `json:"type"`
	Date      time.Time `json:"date"`
	Cost      float64   `json:"cost"`
	Notes     string    `json:"notes"`
}

func (in *MaintenanceInput) validate() error {
	if in.VehicleID == "" {
		return &ValidationError{Field: "vehicle_id", Reason: "vehicle is required"}
	}
	if in.Type == "" {
		return &ValidationError{Field: "type", Reason: "service type is required"}
	}
	return nil
}

// OpenMaintenance logs a service and forces the vehicle In Shop. The
// vehicle does not have to be Available: opening maintenance on an On
// Trip vehicle is permitted and overrides its status while the trip
// stays Dispatched. That inconsistency is reported in the returned
// warning rather than blocked.
func (c *Coordinator) OpenMaintenance(in MaintenanceInput) (models.MaintenanceRecord, *DanglingReferenceWarning, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := in.validate(); err != nil {
		return models.MaintenanceRecord{}, nil, err
	}
	v, ok := c.store.vehicles[in.VehicleID]
	if !ok {
		return models.MaintenanceRecord{}, nil, &NotFoundError{Kind: "vehicle", ID: in.VehicleID}
	}

	var warn *DanglingReferenceWarning
	if v.Status == models.VehicleOnTrip {
		warn = &DanglingReferenceWarning{
			Kind: "vehicle", ID: v.ID, Refs: c.activeTripIDs(v.ID),
		}
	}

	m := models.MaintenanceRecord{
		ID:        c.newID("M"),
		VehicleID: in.VehicleID,
		Type:      in.Type,
		Date:      in.Date,
		Cost:      in.Cost,
		Notes:     in.Notes,
		Status:    models.MaintenanceInProgress,
		CreatedAt: c.now(),
	}
	v.Status = models.VehicleInShop
	c.store.putMaintenance(m)
	c.store.putVehicle(v)
	return m, warn, nil
}

// CloseMaintenance completes a service record and releases the vehicle
// back to Available. Already completed records cannot transition again.
func (c *Coordinator) CloseMaintenance(id string) (models.MaintenanceRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.store.maintenance[id]
	if !ok {
		return models.MaintenanceRecord{}, &NotFoundError{Kind: "maintenance record", ID: id}
	}
	if m.Status != models.MaintenanceInProgress {
		return models.MaintenanceRecord{}, &InvalidTransitionError{
			Kind: "maintenance record", ID: id,
			From: string(m.Status), To: string(models.MaintenanceCompleted),
		}
	}
	m.Status = models.MaintenanceCompleted
	c.store.putMaintenance(m)
	if v, ok := c.store.vehicles[m.VehicleID]; ok {
		v.Status = models.VehicleAvailable
		c.store.putVehicle(v)
	}
	return m, nil
}

// ---- fuel ----

// FuelInput carries the fuel log form fields. The trip link is optional.
type FuelInput struct {
	VehicleID string    `json:"vehicle_id"`
	TripID    string    `json:"trip_id,omitempty"`
	Liters    float64   `json:"liters"`
	Cost      float64   `json:"cost"`
	KmDriven  float64   `json:"km_driven"`
	Date      time.Time `json:"date"`
}

// LogFuel appends a fuel record. Pure append: the referenced vehicle or
// trip may already be gone, which display code tolerates as "unknown".
func (c *Coordinator) LogFuel(in FuelInput) (models.FuelLog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if in.VehicleID == "" {
		return models.FuelLog{}, &ValidationError{Field: "vehicle_id", Reason: "vehicle is required"}
	}
	if in.Liters <= 0 {
		return models.FuelLog{}, &ValidationError{Field: "liters", Reason: "liters must be positive"}
	}
	if in.KmDriven < 0 {
		return models.FuelLog{}, &ValidationError{Field: "km_driven", Reason: "km driven cannot be negative"}
	}
	// Telemetry payloads may omit the date; stamp them on arrival.
	if in.Date.IsZero() {
		in.Date = c.now()
	}
	f := models.FuelLog{
		ID:        c.newID("F"),
		VehicleID: in.VehicleID,
		TripID:    in.TripID,
		Liters:    in.Liters,
		Cost:      in.Cost,
		KmDriven:  in.KmDriven,
		Date:      in.Date,
		CreatedAt: c.now(),
	}
	c.store.putFuelLog(f)
	return f, nil
}

// ---- eligibility pools ----

// EligibleVehicles is the authoritative pool of vehicles a new trip may
// claim: exactly those currently Available.
func (c *Coordinator) EligibleVehicles() []models.Vehicle {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Vehicle, 0)
	for _, v := range c.store.vehicleList() {
		if v.Status == models.VehicleAvailable {
			out = append(out, v)
		}
	}
	return out
}

// EligibleDrivers is the authoritative pool of drivers a new trip may
// use: On Duty with a license valid strictly beyond now.
func (c *Coordinator) EligibleDrivers() []models.Driver {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	out := make([]models.Driver, 0)
	for _, d := range c.store.driverList() {
		if d.Status == models.DriverOnDuty && d.LicenseExpiry.After(now) {
			out = append(out, d)
		}
	}
	return out
}

// ---- deletion (two-step contract) ----

// CanDeleteVehicle reports what would dangle if the vehicle were deleted
// now: non-terminal trips and in-progress maintenance still pointing at
// it. A nil warning means the deletion strands nothing active.
func (c *Coordinator) CanDeleteVehicle(id string) (*DanglingReferenceWarning, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.store.vehicles[id]; !ok {
		return nil, &NotFoundError{Kind: "vehicle", ID: id}
	}
	return c.vehicleRefWarning(id), nil
}

// CanDeleteDriver reports non-terminal trips still assigned to the driver.
func (c *Coordinator) CanDeleteDriver(id string) (*DanglingReferenceWarning, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.store.drivers[id]; !ok {
		return nil, &NotFoundError{Kind: "driver", ID: id}
	}
	var refs []string
	for _, t := range c.store.tripList() {
		if t.DriverID == id && !t.Status.Terminal() {
			refs = append(refs, t.ID)
		}
	}
	if len(refs) == 0 {
		return nil, nil
	}
	return &DanglingReferenceWarning{Kind: "driver", ID: id, Refs: refs}, nil
}

// CanDeleteMaintenance reports a vehicle that would be left In Shop
// with no in-progress record explaining it. Completed records strand
// nothing.
func (c *Coordinator) CanDeleteMaintenance(id string) (*DanglingReferenceWarning, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.store.maintenance[id]
	if !ok {
		return nil, &NotFoundError{Kind: "maintenance record", ID: id}
	}
	if m.Status != models.MaintenanceInProgress {
		return nil, nil
	}
	if _, ok := c.store.vehicles[m.VehicleID]; !ok {
		return nil, nil
	}
	return &DanglingReferenceWarning{Kind: "vehicle", ID: m.VehicleID, Refs: []string{m.ID}}, nil
}

// CanDeleteTrip reports fuel logs still linked to the trip.
func (c *Coordinator) CanDeleteTrip(id string) (*DanglingReferenceWarning, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.store.trips[id]; !ok {
		return nil, &NotFoundError{Kind: "trip", ID: id}
	}
	var refs []string
	for _, f := range c.store.fuelLogList() {
		if f.TripID == id {
			refs = append(refs, f.ID)
		}
	}
	if len(refs) == 0 {
		return nil, nil
	}
	return &DanglingReferenceWarning{Kind: "trip", ID: id, Refs: refs}, nil
}

// The Delete operations are pure removals with no cascade. They report
// whether a record was removed; deleting an absent id is a no-op.

func (c *Coordinator) DeleteVehicle(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.deleteVehicle(id)
}

func (c *Coordinator) DeleteDriver(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.deleteDriver(id)
}

func (c *Coordinator) DeleteTrip(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.deleteTrip(id)
}

func (c *Coordinator) DeleteMaintenance(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.deleteMaintenance(id)
}

func (c *Coordinator) DeleteFuelLog(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.deleteFuelLog(id)
}

// ---- reads ----

// Vehicles returns all vehicles in insertion order.
func (c *Coordinator) Vehicles() []models.Vehicle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.vehicleList()
}

// Drivers returns all drivers in insertion order.
func (c *Coordinator) Drivers() []models.Driver {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.driverList()
}

// Trips returns all trips in insertion order.
func (c *Coordinator) Trips() []models.Trip {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.tripList()
}

// Maintenance returns all maintenance records in insertion order.
func (c *Coordinator) Maintenance() []models.MaintenanceRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.maintenanceList()
}

// FuelLogs returns all fuel logs in insertion order.
func (c *Coordinator) FuelLogs() []models.FuelLog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.fuelLogList()
}

// Vehicle looks up a single vehicle.
func (c *Coordinator) Vehicle(id string) (models.Vehicle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store.vehicles[id]
	return v, ok
}

// Driver looks up a single driver.
func (c *Coordinator) Driver(id string) (models.Driver, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.store.drivers[id]
	return d, ok
}

// Trip looks up a single trip.
func (c *Coordinator) Trip(id string) (models.Trip, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.store.trips[id]
	return t, ok
}

// Snapshot copies all five collections for archiving.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.snapshot()
}

// ---- internal helpers (callers hold the lock) ----

func (c *Coordinator) activeTripIDs(vehicleID string) []string {
	var ids []string
	for _, t := range c.store.tripList() {
		if t.VehicleID == vehicleID && !t.Status.Terminal() {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func (c *Coordinator) vehicleRefWarning(id string) *DanglingReferenceWarning {
	refs := c.activeTripIDs(id)
	for _, m := range c.store.maintenanceList() {
		if m.VehicleID == id && m.Status == models.MaintenanceInProgress {
			refs = append(refs, m.ID)
		}
	}
	if len(refs) == 0 {
		return nil
	}
	return &DanglingReferenceWarning{Kind: "vehicle", ID: id, Refs: refs}
}
