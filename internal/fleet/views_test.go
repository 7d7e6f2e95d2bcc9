package fleet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fleet-command/internal/models"
)

func TestUtilizationRate(t *testing.T) {
	c := NewCoordinator(NewStore(), testClock)
	assert.Equal(t, 0.0, c.UtilizationRate(), "empty fleet is 0, not NaN")

	d, err := c.RegisterDriver(DriverInput{
		Name: "Arun", License: "TN1", LicenseExpiry: testNow.AddDate(1, 0, 0),
	})
	require.NoError(t, err)

	var first models.Vehicle
	for i, plate := range []string{"TN01", "TN02", "TN03", "TN04"} {
		v, err := c.RegisterVehicle(VehicleInput{Name: "V" + plate, Plate: plate, Capacity: 1000})
		require.NoError(t, err)
		if i == 0 {
			first = v
		}
	}
	assert.Equal(t, 0.0, c.UtilizationRate())

	_, err = c.DispatchTrip(TripInput{
		VehicleID: first.ID, DriverID: d.ID,
		Origin: "A", Destination: "B", CargoWeight: 100,
	})
	require.NoError(t, err)
	assert.InDelta(t, 25.0, c.UtilizationRate(), 1e-9)
}

func TestFuelEfficiency(t *testing.T) {
	c, v, _ := newTestCoordinator(t)

	_, ok := c.FuelEfficiency(v.ID)
	assert.False(t, ok, "no liters logged means no efficiency figure")

	_, err := c.LogFuel(FuelInput{VehicleID: v.ID, Liters: 40, KmDriven: 350})
	require.NoError(t, err)
	_, err = c.LogFuel(FuelInput{VehicleID: v.ID, Liters: 10, KmDriven: 150})
	require.NoError(t, err)

	eff, ok := c.FuelEfficiency(v.ID)
	require.True(t, ok)
	assert.InDelta(t, 10.0, eff, 1e-9) // 500 km / 50 L
}

func TestTripCompletionRate(t *testing.T) {
	c, v, d := newTestCoordinator(t)
	assert.Equal(t, 0.0, c.TripCompletionRate(d.ID), "no trips yet")
	assert.Equal(t, 0.0, c.TripCompletionRate("D-nope"))

	for i := 0; i < 4; i++ {
		trip, err := c.DispatchTrip(TripInput{
			VehicleID: v.ID, DriverID: d.ID,
			Origin: "A", Destination: "B", CargoWeight: 100,
		})
		require.NoError(t, err)
		target := models.TripCompleted
		if i == 3 {
			target = models.TripCancelled
		}
		_, err = c.SetTripStatus(trip.ID, target)
		require.NoError(t, err)
	}
	assert.InDelta(t, 0.75, c.TripCompletionRate(d.ID), 1e-9)
}

func TestCheckLicense(t *testing.T) {
	asOf := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expiry  time.Time
		expired bool
		days    int
	}{
		{"expired 10 days ago", asOf.AddDate(0, 0, -10), true, 0},
		{"expires in 10 days", asOf.AddDate(0, 0, 10), false, 10},
		{"expires later today", asOf.Add(6 * time.Hour), false, 1},
		{"expires this instant", asOf, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckLicense(models.Driver{LicenseExpiry: tt.expiry}, asOf)
			assert.Equal(t, tt.expired, got.Expired)
			assert.Equal(t, tt.days, got.DaysRemaining)
		})
	}
}

func TestLicenseStatus(t *testing.T) {
	c, _, d := newTestCoordinator(t)

	status, err := c.LicenseStatus(d.ID)
	require.NoError(t, err)
	assert.False(t, status.Expired)
	assert.Greater(t, status.DaysRemaining, 0)

	_, err = c.LicenseStatus("D-nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDashboard(t *testing.T) {
	s := NewStore()
	Seed(s, testNow)
	c := NewCoordinator(s, testClock)

	stats := c.Dashboard()
	assert.Equal(t, 1, stats.ActiveFleet)       // V1 On Trip
	assert.Equal(t, 1, stats.MaintenanceAlerts) // V3 In Shop
	assert.Equal(t, 1, stats.PendingCargo)      // T2 Draft
	assert.InDelta(t, 100.0/3, stats.UtilizationPct, 1e-9)
}

func TestFuelSummaries(t *testing.T) {
	s := NewStore()
	Seed(s, testNow)
	c := NewCoordinator(s, testClock)

	// a log pointing at a vehicle that no longer exists must not appear
	_, err := c.LogFuel(FuelInput{VehicleID: "V-gone", Liters: 5, Cost: 500, KmDriven: 30})
	require.NoError(t, err)

	sums := c.FuelSummaries()
	require.Len(t, sums, 3)

	byID := make(map[string]VehicleFuelSummary)
	for _, s := range sums {
		byID[s.VehicleID] = s
	}

	v1 := byID["V1"]
	assert.Equal(t, 4100.0, v1.TotalCost)
	assert.True(t, v1.HasEfficiency)
	assert.InDelta(t, 350.0/40, v1.KmPerLiter, 1e-9)

	v3 := byID["V3"]
	assert.False(t, v3.HasEfficiency, "no fuel logged for V3")
	assert.Equal(t, 0.0, v3.TotalCost)
}
