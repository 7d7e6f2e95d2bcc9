package telemetry

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fleet-command/internal/fleet"
	"github.com/fleetops/fleet-command/internal/models"
)

func newTestIngestor(t *testing.T) (*Ingestor, *fleet.Coordinator, models.Vehicle) {
	t.Helper()
	coord := fleet.NewCoordinator(fleet.NewStore(), nil)
	v, err := coord.RegisterVehicle(fleet.VehicleInput{
		Name: "Van-05", Plate: "TN01AB1234", Capacity: 1000,
	})
	require.NoError(t, err)
	ing := &Ingestor{coord: coord, log: logrus.WithField("component", "telemetry")}
	return ing, coord, v
}

func TestHandleFuel(t *testing.T) {
	ing, coord, v := newTestIngestor(t)

	err := ing.handleFuel("fleet/"+v.ID+"/fuel", []byte(`{"liters":40,"cost":4100,"km_driven":350}`))
	require.NoError(t, err)

	logs := coord.FuelLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, v.ID, logs[0].VehicleID)
	assert.Equal(t, 40.0, logs[0].Liters)
	assert.Equal(t, 350.0, logs[0].KmDriven)
	assert.False(t, logs[0].Date.IsZero(), "readings without a date get stamped on arrival")
}

func TestHandleFuel_DatePassedThrough(t *testing.T) {
	ing, coord, v := newTestIngestor(t)

	payload := `{"liters":30,"cost":3000,"km_driven":250,"date":"2026-03-15T12:00:00Z"}`
	require.NoError(t, ing.handleFuel("fleet/"+v.ID+"/fuel", []byte(payload)))

	logs := coord.FuelLogs()
	require.Len(t, logs, 1)
	want := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	assert.True(t, logs[0].Date.Equal(want))
}

func TestHandleFuel_Invalid(t *testing.T) {
	ing, coord, v := newTestIngestor(t)

	tests := []struct {
		name    string
		topic   string
		payload string
	}{
		{"bad topic", "telemetry/fuel", `{"liters":40}`},
		{"empty vehicle segment", "fleet//fuel", `{"liters":40}`},
		{"not json", "fleet/" + v.ID + "/fuel", `40 liters`},
		{"zero liters", "fleet/" + v.ID + "/fuel", `{"liters":0,"km_driven":10}`},
		{"negative km", "fleet/" + v.ID + "/fuel", `{"liters":40,"km_driven":-5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ing.handleFuel(tt.topic, []byte(tt.payload))
			assert.Error(t, err)
		})
	}
	assert.Empty(t, coord.FuelLogs())
}

func TestHandleOdometer(t *testing.T) {
	ing, coord, v := newTestIngestor(t)

	require.NoError(t, ing.handleOdometer("fleet/"+v.ID+"/odometer", []byte(`{"km":1250}`)))

	got, ok := coord.Vehicle(v.ID)
	require.True(t, ok)
	assert.Equal(t, 1250.0, got.Odometer)

	// a stale reading below the current odometer is rejected
	err := ing.handleOdometer("fleet/"+v.ID+"/odometer", []byte(`{"km":900}`))
	assert.Error(t, err)
	got, _ = coord.Vehicle(v.ID)
	assert.Equal(t, 1250.0, got.Odometer)
}

func TestHandleOdometer_UnknownVehicle(t *testing.T) {
	ing, _, _ := newTestIngestor(t)
	err := ing.handleOdometer("fleet/V-ghost/odometer", []byte(`{"km":100}`))
	assert.Error(t, err)
}

func TestVehicleFromTopic(t *testing.T) {
	id, err := vehicleFromTopic("fleet/V123/fuel")
	require.NoError(t, err)
	assert.Equal(t, "V123", id)

	_, err = vehicleFromTopic("fleet/V123/fuel/extra")
	assert.Error(t, err)
}

func TestIngestorCloseWithoutClient(t *testing.T) {
	ing := &Ingestor{log: logrus.WithField("component", "telemetry")}
	ing.Close() // must not panic
}
