package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fleetops/fleet-command/internal/fleet"
	"github.com/fleetops/fleet-command/internal/models"
)

// FleetArchive persists and restores whole-store snapshots. It is a
// best-effort archive: the coordinator itself runs purely in memory, and
// nothing during normal operation waits on the archive.
type FleetArchive interface {
	Save(ctx context.Context, snap fleet.Snapshot) error
	Load(ctx context.Context) (fleet.Snapshot, error)
}

// MongoArchive implements FleetArchive on a MongoDB database, one
// collection per entity kind.
type MongoArchive struct {
	Database *mongo.Database
}

const (
	collVehicles    = "vehicles"
	collDrivers     = "drivers"
	collTrips       = "trips"
	collMaintenance = "maintenance"
	collFuelLogs    = "fuel_logs"
)

// Save replaces the archived collections with the snapshot's contents.
// Each collection is rewritten wholesale; records carry a sequence field
// so Load can restore insertion order.
func (a *MongoArchive) Save(ctx context.Context, snap fleet.Snapshot) error {
	if a.Database == nil {
		return fmt.Errorf("mongo database is nil")
	}
	if err := replaceAll(ctx, a.Database.Collection(collVehicles), snap.Vehicles); err != nil {
		return fmt.Errorf("archive vehicles: %w", err)
	}
	if err := replaceAll(ctx, a.Database.Collection(collDrivers), snap.Drivers); err != nil {
		return fmt.Errorf("archive drivers: %w", err)
	}
	if err := replaceAll(ctx, a.Database.Collection(collTrips), snap.Trips); err != nil {
		return fmt.Errorf("archive trips: %w", err)
	}
	if err := replaceAll(ctx, a.Database.Collection(collMaintenance), snap.Maintenance); err != nil {
		return fmt.Errorf("archive maintenance: %w", err)
	}
	if err := replaceAll(ctx, a.Database.Collection(collFuelLogs), snap.FuelLogs); err != nil {
		return fmt.Errorf("archive fuel logs: %w", err)
	}
	return nil
}

type sequenced[T any] struct {
	Seq     int       `bson:"seq"`
	Record  T         `bson:"record"`
	SavedAt time.Time `bson:"saved_at"`
}

func replaceAll[T any](ctx context.Context, coll *mongo.Collection, records []T) error {
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(records))
	for i, r := range records {
		docs = append(docs, sequenced[T]{Seq: i, Record: r, SavedAt: now})
	}
	_, err := coll.InsertMany(ctx, docs)
	return err
}

// Load reads the archived snapshot back, in the recorded order. An empty
// database yields an empty snapshot, not an error.
func (a *MongoArchive) Load(ctx context.Context) (fleet.Snapshot, error) {
	if a.Database == nil {
		return fleet.Snapshot{}, fmt.Errorf("mongo database is nil")
	}
	var snap fleet.Snapshot
	var err error
	if snap.Vehicles, err = loadAll[models.Vehicle](ctx, a.Database.Collection(collVehicles)); err != nil {
		return fleet.Snapshot{}, fmt.Errorf("load vehicles: %w", err)
	}
	if snap.Drivers, err = loadAll[models.Driver](ctx, a.Database.Collection(collDrivers)); err != nil {
		return fleet.Snapshot{}, fmt.Errorf("load drivers: %w", err)
	}
	if snap.Trips, err = loadAll[models.Trip](ctx, a.Database.Collection(collTrips)); err != nil {
		return fleet.Snapshot{}, fmt.Errorf("load trips: %w", err)
	}
	if snap.Maintenance, err = loadAll[models.MaintenanceRecord](ctx, a.Database.Collection(collMaintenance)); err != nil {
		return fleet.Snapshot{}, fmt.Errorf("load maintenance: %w", err)
	}
	if snap.FuelLogs, err = loadAll[models.FuelLog](ctx, a.Database.Collection(collFuelLogs)); err != nil {
		return fleet.Snapshot{}, fmt.Errorf("load fuel logs: %w", err)
	}
	return snap, nil
}

func loadAll[T any](ctx context.Context, coll *mongo.Collection) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []sequenced[T]
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Record)
	}
	return out, nil
}
