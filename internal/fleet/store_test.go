package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fleet-command/internal/models"
)

func TestStoreInsertionOrder(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"V3", "V1", "V2"} {
		s.putVehicle(models.Vehicle{ID: id, Status: models.VehicleAvailable})
	}

	var got []string
	for _, v := range s.vehicleList() {
		got = append(got, v.ID)
	}
	assert.Equal(t, []string{"V3", "V1", "V2"}, got)

	// updating in place must not move the record
	s.putVehicle(models.Vehicle{ID: "V3", Status: models.VehicleInShop})
	got = nil
	for _, v := range s.vehicleList() {
		got = append(got, v.ID)
	}
	assert.Equal(t, []string{"V3", "V1", "V2"}, got)
	assert.Equal(t, models.VehicleInShop, s.vehicles["V3"].Status)
}

func TestStoreDeleteAbsent(t *testing.T) {
	s := NewStore()
	assert.False(t, s.deleteVehicle("V-nope"))
	assert.False(t, s.deleteDriver("D-nope"))
	assert.False(t, s.deleteTrip("T-nope"))
	assert.False(t, s.deleteMaintenance("M-nope"))
	assert.False(t, s.deleteFuelLog("F-nope"))

	s.putVehicle(models.Vehicle{ID: "V1"})
	assert.True(t, s.deleteVehicle("V1"))
	assert.False(t, s.deleteVehicle("V1"))
	assert.Empty(t, s.vehicleOrder)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewStore()
	Seed(s, testNow)

	snap := s.snapshot()
	require.Len(t, snap.Vehicles, 3)
	require.Len(t, snap.Drivers, 2)
	require.Len(t, snap.Trips, 2)
	require.Len(t, snap.Maintenance, 1)
	require.Len(t, snap.FuelLogs, 2)

	rebuilt := NewStoreFromSnapshot(snap)
	assert.Equal(t, snap, rebuilt.snapshot(), "snapshot must survive a rebuild unchanged")
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.putVehicle(models.Vehicle{ID: "V1", Status: models.VehicleAvailable})

	snap := s.snapshot()
	snap.Vehicles[0].Status = models.VehicleOutOfService

	assert.Equal(t, models.VehicleAvailable, s.vehicles["V1"].Status,
		"mutating a snapshot must not reach the store")
}
