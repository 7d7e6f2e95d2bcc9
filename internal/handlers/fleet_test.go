package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fleet-command/internal/fleet"
	"github.com/fleetops/fleet-command/internal/models"
)

func newFleetMux(t *testing.T) (*fleet.Coordinator, *http.ServeMux) {
	t.Helper()
	coord := fleet.NewCoordinator(fleet.NewStore(), nil)
	mux := http.NewServeMux()
	NewFleetHandler(coord).Register(mux, nil)
	return coord, mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func registerFixtures(t *testing.T, coord *fleet.Coordinator) (models.Vehicle, models.Driver) {
	t.Helper()
	v, err := coord.RegisterVehicle(fleet.VehicleInput{
		Name: "Van-05", Plate: "TN01AB1234", Capacity: 1000,
	})
	require.NoError(t, err)
	d, err := coord.RegisterDriver(fleet.DriverInput{
		Name: "Arun Kumar", License: "TN1234567",
		LicenseExpiry: time.Now().AddDate(2, 0, 0),
	})
	require.NoError(t, err)
	return v, d
}

func TestCreateVehicle(t *testing.T) {
	_, mux := newFleetMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/vehicles", map[string]interface{}{
		"name": "Truck-01", "plate": "TN02CD5678", "type": "Truck", "capacity": 4000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var v models.Vehicle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, models.VehicleAvailable, v.Status)
	assert.NotEmpty(t, v.ID)
}

func TestCreateVehicle_Invalid(t *testing.T) {
	_, mux := newFleetMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/vehicles", map[string]interface{}{
		"name": "Truck-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/vehicles", bytes.NewBufferString("{not json"))
	rec2 := httptest.NewRecorder()
	mux.ServeHTTP(rec2, req)
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
}

func TestDispatchTrip_OverCapacity(t *testing.T) {
	coord, mux := newFleetMux(t)
	v, d := registerFixtures(t, coord)

	rec := doJSON(t, mux, http.MethodPost, "/api/trips", map[string]interface{}{
		"vehicle_id": v.ID, "driver_id": d.ID,
		"origin": "Chennai", "destination": "Bangalore",
		"cargo": "Electronics", "cargo_weight": 1200,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "1200")
	assert.Contains(t, rec.Body.String(), "1000")
	assert.Empty(t, coord.Trips())
}

func TestDispatchAndCompleteFlow(t *testing.T) {
	coord, mux := newFleetMux(t)
	v, d := registerFixtures(t, coord)

	rec := doJSON(t, mux, http.MethodPost, "/api/trips", map[string]interface{}{
		"vehicle_id": v.ID, "driver_id": d.ID,
		"origin": "Chennai", "destination": "Bangalore",
		"cargo": "Electronics", "cargo_weight": 800,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var trip models.Trip
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trip))
	assert.Equal(t, models.TripDispatched, trip.Status)

	// the vehicle pool no longer offers the claimed vehicle
	rec = doJSON(t, mux, http.MethodGet, "/api/vehicles/eligible", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pool []models.Vehicle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pool))
	assert.Empty(t, pool)

	rec = doJSON(t, mux, http.MethodPost, fmt.Sprintf("/api/trips/%s/status", trip.ID),
		map[string]string{"status": "Completed"})
	require.Equal(t, http.StatusOK, rec.Code)

	got, ok := coord.Vehicle(v.ID)
	require.True(t, ok)
	assert.Equal(t, models.VehicleAvailable, got.Status)
	drv, ok := coord.Driver(d.ID)
	require.True(t, ok)
	assert.Equal(t, 1, drv.Trips)
	assert.Equal(t, 1, drv.Completed)
}

func TestEligibleEndpoints_EmptyPools(t *testing.T) {
	_, mux := newFleetMux(t)

	// an empty pool is an empty array, never null
	for _, path := range []string{"/api/vehicles/eligible", "/api/drivers/eligible"} {
		rec := doJSON(t, mux, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String(), path)
	}
}

func TestSetTripStatus_Terminal(t *testing.T) {
	coord, mux := newFleetMux(t)
	v, d := registerFixtures(t, coord)

	trip, err := coord.DispatchTrip(fleet.TripInput{
		VehicleID: v.ID, DriverID: d.ID,
		Origin: "A", Destination: "B", CargoWeight: 100,
	})
	require.NoError(t, err)
	_, err = coord.SetTripStatus(trip.ID, models.TripCancelled)
	require.NoError(t, err)

	rec := doJSON(t, mux, http.MethodPost, fmt.Sprintf("/api/trips/%s/status", trip.ID),
		map[string]string{"status": "Completed"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSetTripStatus_UnknownTrip(t *testing.T) {
	_, mux := newFleetMux(t)
	rec := doJSON(t, mux, http.MethodPost, "/api/trips/T-nope/status",
		map[string]string{"status": "Completed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteVehicle_WarnsOnActiveTrip(t *testing.T) {
	coord, mux := newFleetMux(t)
	v, d := registerFixtures(t, coord)

	trip, err := coord.DispatchTrip(fleet.TripInput{
		VehicleID: v.ID, DriverID: d.ID,
		Origin: "A", Destination: "B", CargoWeight: 100,
	})
	require.NoError(t, err)

	rec := doJSON(t, mux, http.MethodDelete, "/api/vehicles/"+v.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Warning string `json:"warning"`
		Result  bool   `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Result)
	assert.Contains(t, resp.Warning, trip.ID)

	// second delete: already gone
	rec = doJSON(t, mux, http.MethodDelete, "/api/vehicles/"+v.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMaintenanceFlow(t *testing.T) {
	coord, mux := newFleetMux(t)
	v, _ := registerFixtures(t, coord)

	rec := doJSON(t, mux, http.MethodPost, "/api/maintenance", map[string]interface{}{
		"vehicle_id": v.ID, "type": "Oil Change", "cost": 1200,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Warning string                   `json:"warning"`
		Result  models.MaintenanceRecord `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Warning)
	assert.Equal(t, models.MaintenanceInProgress, resp.Result.Status)

	got, _ := coord.Vehicle(v.ID)
	assert.Equal(t, models.VehicleInShop, got.Status)

	rec = doJSON(t, mux, http.MethodPost, fmt.Sprintf("/api/maintenance/%s/complete", resp.Result.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got, _ = coord.Vehicle(v.ID)
	assert.Equal(t, models.VehicleAvailable, got.Status)
}

func TestMaintenance_OnTripWarning(t *testing.T) {
	coord, mux := newFleetMux(t)
	v, d := registerFixtures(t, coord)

	trip, err := coord.DispatchTrip(fleet.TripInput{
		VehicleID: v.ID, DriverID: d.ID,
		Origin: "A", Destination: "B", CargoWeight: 100,
	})
	require.NoError(t, err)

	rec := doJSON(t, mux, http.MethodPost, "/api/maintenance", map[string]interface{}{
		"vehicle_id": v.ID, "type": "Engine Repair",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), trip.ID)
}

func TestDeleteMaintenance_WarnsOnOpenRecord(t *testing.T) {
	coord, mux := newFleetMux(t)
	v, _ := registerFixtures(t, coord)

	record, _, err := coord.OpenMaintenance(fleet.MaintenanceInput{
		VehicleID: v.ID, Type: "Engine Repair",
	})
	require.NoError(t, err)

	rec := doJSON(t, mux, http.MethodDelete, "/api/maintenance/"+record.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Warning string `json:"warning"`
		Result  bool   `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Result)
	assert.Contains(t, resp.Warning, v.ID, "warning names the vehicle left In Shop")

	got, _ := coord.Vehicle(v.ID)
	assert.Equal(t, models.VehicleInShop, got.Status)

	// second delete: already gone
	rec = doJSON(t, mux, http.MethodDelete, "/api/maintenance/"+record.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFuelEndpoints(t *testing.T) {
	coord, mux := newFleetMux(t)
	v, _ := registerFixtures(t, coord)

	rec := doJSON(t, mux, http.MethodPost, "/api/fuel", map[string]interface{}{
		"vehicle_id": v.ID, "liters": 40, "cost": 4100, "km_driven": 350,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/api/fuel", map[string]interface{}{
		"vehicle_id": v.ID, "liters": 0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/fuel/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sums []fleet.VehicleFuelSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sums))
	require.Len(t, sums, 1)
	assert.True(t, sums[0].HasEfficiency)
	assert.InDelta(t, 8.75, sums[0].KmPerLiter, 1e-9)
}

func TestDashboardEndpoint(t *testing.T) {
	coord, mux := newFleetMux(t)
	v, d := registerFixtures(t, coord)

	_, err := coord.DispatchTrip(fleet.TripInput{
		VehicleID: v.ID, DriverID: d.ID,
		Origin: "A", Destination: "B", CargoWeight: 100,
	})
	require.NoError(t, err)

	rec := doJSON(t, mux, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats fleet.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.ActiveFleet)
	assert.InDelta(t, 100.0, stats.UtilizationPct, 1e-9)
}

func TestDriverEndpoints(t *testing.T) {
	coord, mux := newFleetMux(t)
	_, d := registerFixtures(t, coord)

	rec := doJSON(t, mux, http.MethodPost, fmt.Sprintf("/api/drivers/%s/cycle-status", d.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Driver
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, models.DriverOffDuty, got.Status)

	rec = doJSON(t, mux, http.MethodGet, fmt.Sprintf("/api/drivers/%s/license", d.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var license fleet.LicenseStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &license))
	assert.False(t, license.Expired)
	assert.Greater(t, license.DaysRemaining, 0)

	rec = doJSON(t, mux, http.MethodGet, "/api/drivers/eligible", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pool []models.Driver
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pool))
	assert.Empty(t, pool, "off-duty driver must not be dispatchable")
}
