package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/fleetops/fleet-command/internal/fleet"
	"github.com/fleetops/fleet-command/internal/models"
)

// FleetHandler is the HTTP surface over the coordinator. It follows the
// pull model: a mutation invokes exactly one coordinator operation and
// responds with the affected record; clients re-query the collections
// they display.
type FleetHandler struct {
	coord *fleet.Coordinator
}

// NewFleetHandler creates the fleet HTTP handler
func NewFleetHandler(coord *fleet.Coordinator) *FleetHandler {
	return &FleetHandler{coord: coord}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps coordinator error kinds to HTTP status codes. The
// message goes out verbatim; all of these are operator-recoverable.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, fleet.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, fleet.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, fleet.ErrIneligible),
		errors.Is(err, fleet.ErrCapacityExceeded),
		errors.Is(err, fleet.ErrInvalidTransition):
		status = http.StatusConflict
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

// warningResponse wraps a mutation result with an optional dangling
// reference advisory for the confirmation UI.
type warningResponse struct {
	Warning string      `json:"warning,omitempty"`
	Result  interface{} `json:"result"`
}

func warningText(warn *fleet.DanglingReferenceWarning) string {
	if warn == nil {
		return ""
	}
	return warn.Message()
}

// Register wires the fleet routes into mux. wrap guards each route with
// the named permission; nil skips authorization, which tests use.
func (h *FleetHandler) Register(mux *http.ServeMux, wrap func(action string, next http.Handler) http.Handler) {
	if wrap == nil {
		wrap = func(_ string, next http.Handler) http.Handler { return next }
	}
	handle := func(pattern, action string, fn http.HandlerFunc) {
		mux.Handle(pattern, wrap(action, fn))
	}

	handle("GET /api/dashboard", "view_fleet", h.Dashboard)

	handle("GET /api/vehicles", "view_fleet", h.ListVehicles)
	handle("GET /api/vehicles/eligible", "view_fleet", h.EligibleVehicles)
	handle("POST /api/vehicles", "manage_fleet", h.CreateVehicle)
	handle("PUT /api/vehicles/{id}", "manage_fleet", h.UpdateVehicle)
	handle("POST /api/vehicles/{id}/retire", "manage_fleet", h.RetireVehicle)
	handle("POST /api/vehicles/{id}/restore", "manage_fleet", h.RestoreVehicle)
	handle("DELETE /api/vehicles/{id}", "manage_fleet", h.DeleteVehicle)

	handle("GET /api/drivers", "view_fleet", h.ListDrivers)
	handle("GET /api/drivers/eligible", "view_fleet", h.EligibleDrivers)
	handle("GET /api/drivers/{id}/license", "view_fleet", h.DriverLicense)
	handle("POST /api/drivers", "manage_fleet", h.CreateDriver)
	handle("POST /api/drivers/{id}/cycle-status", "manage_fleet", h.CycleDriverStatus)
	handle("DELETE /api/drivers/{id}", "manage_fleet", h.DeleteDriver)

	handle("GET /api/trips", "view_fleet", h.ListTrips)
	handle("POST /api/trips", "dispatch_trip", h.DispatchTrip)
	handle("POST /api/trips/{id}/status", "dispatch_trip", h.SetTripStatus)
	handle("DELETE /api/trips/{id}", "dispatch_trip", h.DeleteTrip)

	handle("GET /api/maintenance", "view_fleet", h.ListMaintenance)
	handle("POST /api/maintenance", "log_maintenance", h.CreateMaintenance)
	handle("POST /api/maintenance/{id}/complete", "log_maintenance", h.CompleteMaintenance)
	handle("DELETE /api/maintenance/{id}", "log_maintenance", h.DeleteMaintenance)

	handle("GET /api/fuel", "view_fleet", h.ListFuelLogs)
	handle("GET /api/fuel/summary", "view_fleet", h.FuelSummary)
	handle("POST /api/fuel", "log_fuel", h.CreateFuelLog)
	handle("DELETE /api/fuel/{id}", "log_fuel", h.DeleteFuelLog)
}

// ---- vehicles ----

// ListVehicles handles GET /api/vehicles
func (h *FleetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.coord.Vehicles())
}

// EligibleVehicles handles GET /api/vehicles/eligible
func (h *FleetHandler) EligibleVehicles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.coord.EligibleVehicles())
}

// CreateVehicle handles POST /api/vehicles
func (h *FleetHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var in fleet.VehicleInput
	if !decode(w, r, &in) {
		return
	}
	v, err := h.coord.RegisterVehicle(in)
	if err != nil {
		writeError(w, err)
		return
	}
	logrus.WithFields(logrus.Fields{"vehicle_id": v.ID, "plate": v.Plate}).Info("vehicle registered")
	writeJSON(w, http.StatusCreated, v)
}

// UpdateVehicle handles PUT /api/vehicles/{id}
func (h *FleetHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var in fleet.VehicleInput
	if !decode(w, r, &in) {
		return
	}
	v, err := h.coord.UpdateVehicle(r.PathValue("id"), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// RetireVehicle handles POST /api/vehicles/{id}/retire
func (h *FleetHandler) RetireVehicle(w http.ResponseWriter, r *http.Request) {
	v, warn, err := h.coord.RetireVehicle(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if warn != nil {
		logrus.WithField("vehicle_id", v.ID).Warn(warn.Message())
	}
	writeJSON(w, http.StatusOK, warningResponse{Warning: warningText(warn), Result: v})
}

// RestoreVehicle handles POST /api/vehicles/{id}/restore
func (h *FleetHandler) RestoreVehicle(w http.ResponseWriter, r *http.Request) {
	v, err := h.coord.RestoreVehicle(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// DeleteVehicle handles DELETE /api/vehicles/{id}. Deletion is a
// two-step contract: report what would dangle, then remove anyway. The
// confirmation prompt lives entirely in the client.
func (h *FleetHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	warn, err := h.coord.CanDeleteVehicle(id)
	if err != nil {
		writeError(w, err)
		return
	}
	removed := h.coord.DeleteVehicle(id)
	writeJSON(w, http.StatusOK, warningResponse{Warning: warningText(warn), Result: removed})
}

// ---- drivers ----

// ListDrivers handles GET /api/drivers
func (h *FleetHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.coord.Drivers())
}

// EligibleDrivers handles GET /api/drivers/eligible
func (h *FleetHandler) EligibleDrivers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.coord.EligibleDrivers())
}

// CreateDriver handles POST /api/drivers
func (h *FleetHandler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var in fleet.DriverInput
	if !decode(w, r, &in) {
		return
	}
	d, err := h.coord.RegisterDriver(in)
	if err != nil {
		writeError(w, err)
		return
	}
	logrus.WithFields(logrus.Fields{"driver_id": d.ID, "license": d.License}).Info("driver registered")
	writeJSON(w, http.StatusCreated, d)
}

// CycleDriverStatus handles POST /api/drivers/{id}/cycle-status
func (h *FleetHandler) CycleDriverStatus(w http.ResponseWriter, r *http.Request) {
	d, err := h.coord.CycleDriverStatus(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// DriverLicense handles GET /api/drivers/{id}/license
func (h *FleetHandler) DriverLicense(w http.ResponseWriter, r *http.Request) {
	status, err := h.coord.LicenseStatus(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// DeleteDriver handles DELETE /api/drivers/{id}
func (h *FleetHandler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	warn, err := h.coord.CanDeleteDriver(id)
	if err != nil {
		writeError(w, err)
		return
	}
	removed := h.coord.DeleteDriver(id)
	writeJSON(w, http.StatusOK, warningResponse{Warning: warningText(warn), Result: removed})
}

// ---- trips ----

// ListTrips handles GET /api/trips
func (h *FleetHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.coord.Trips())
}

// DispatchTrip handles POST /api/trips
func (h *FleetHandler) DispatchTrip(w http.ResponseWriter, r *http.Request) {
	var in fleet.TripInput
	if !decode(w, r, &in) {
		return
	}
	t, err := h.coord.DispatchTrip(in)
	if err != nil {
		writeError(w, err)
		return
	}
	logrus.WithFields(logrus.Fields{
		"trip_id":    t.ID,
		"vehicle_id": t.VehicleID,
		"driver_id":  t.DriverID,
	}).Info("trip dispatched")
	writeJSON(w, http.StatusCreated, t)
}

type tripStatusRequest struct {
	Status models.TripStatus `json:"status"`
}

// SetTripStatus handles POST /api/trips/{id}/status
func (h *FleetHandler) SetTripStatus(w http.ResponseWriter, r *http.Request) {
	var req tripStatusRequest
	if !decode(w, r, &req) {
		return
	}
	t, err := h.coord.SetTripStatus(r.PathValue("id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTrip handles DELETE /api/trips/{id}
func (h *FleetHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	warn, err := h.coord.CanDeleteTrip(id)
	if err != nil {
		writeError(w, err)
		return
	}
	removed := h.coord.DeleteTrip(id)
	writeJSON(w, http.StatusOK, warningResponse{Warning: warningText(warn), Result: removed})
}

// ---- maintenance ----

// ListMaintenance handles GET /api/maintenance
func (h *FleetHandler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.coord.Maintenance())
}

// CreateMaintenance handles POST /api/maintenance
func (h *FleetHandler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	var in fleet.MaintenanceInput
	if !decode(w, r, &in) {
		return
	}
	rec, warn, err := h.coord.OpenMaintenance(in)
	if err != nil {
		writeError(w, err)
		return
	}
	if warn != nil {
		logrus.WithField("vehicle_id", rec.VehicleID).Warn(warn.Message())
	}
	writeJSON(w, http.StatusCreated, warningResponse{Warning: warningText(warn), Result: rec})
}

// CompleteMaintenance handles POST /api/maintenance/{id}/complete
func (h *FleetHandler) CompleteMaintenance(w http.ResponseWriter, r *http.Request) {
	rec, err := h.coord.CloseMaintenance(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DeleteMaintenance handles DELETE /api/maintenance/{id}
func (h *FleetHandler) DeleteMaintenance(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	warn, err := h.coord.CanDeleteMaintenance(id)
	if err != nil {
		writeError(w, err)
		return
	}
	removed := h.coord.DeleteMaintenance(id)
	writeJSON(w, http.StatusOK, warningResponse{Warning: warningText(warn), Result: removed})
}

// ---- fuel ----

// ListFuelLogs handles GET /api/fuel
func (h *FleetHandler) ListFuelLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.coord.FuelLogs())
}

// CreateFuelLog handles POST /api/fuel
func (h *FleetHandler) CreateFuelLog(w http.ResponseWriter, r *http.Request) {
	var in fleet.FuelInput
	if !decode(w, r, &in) {
		return
	}
	f, err := h.coord.LogFuel(in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

// DeleteFuelLog handles DELETE /api/fuel/{id}
func (h *FleetHandler) DeleteFuelLog(w http.ResponseWriter, r *http.Request) {
	removed := h.coord.DeleteFuelLog(r.PathValue("id"))
	writeJSON(w, http.StatusOK, warningResponse{Result: removed})
}

// FuelSummary handles GET /api/fuel/summary
func (h *FleetHandler) FuelSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.coord.FuelSummaries())
}

// ---- dashboard ----

// Dashboard handles GET /api/dashboard
func (h *FleetHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.coord.Dashboard())
}
