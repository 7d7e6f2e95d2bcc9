package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"github.com/fleetops/fleet-command/internal/fleet"
)

// Topic layout: fleet/<vehicle-id>/fuel and fleet/<vehicle-id>/odometer.
// Devices publish JSON payloads; malformed or rejected readings are
// logged and dropped, never retried, so a stuck sensor cannot wedge
// the ingest loop.
const (
	fuelTopic     = "fleet/+/fuel"
	odometerTopic = "fleet/+/odometer"
)

// Ingestor bridges vehicle telemetry from an MQTT broker into the
// coordinator. It is an optional sidecar: the HTTP surface works the
// same with or without it.
type Ingestor struct {
	coord  *fleet.Coordinator
	client mqtt.Client
	log    *logrus.Entry
}

// NewIngestor connects to the broker at MQTT_BROKER and subscribes to
// the telemetry topics. Returns an error when the broker is
// unreachable; callers typically log it and run without telemetry.
func NewIngestor(coord *fleet.Coordinator) (*Ingestor, error) {
	broker := os.Getenv("MQTT_BROKER")
	if broker == "" {
		broker = "tcp://localhost:1883"
	}

	ing := &Ingestor{
		coord: coord,
		log:   logrus.WithField("component", "telemetry"),
	}

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(fmt.Sprintf("fleet-command-%d", time.Now().UnixNano())).
		SetConnectTimeout(5 * time.Second).
		SetAutoReconnect(true)
	if user := os.Getenv("MQTT_USERNAME"); user != "" {
		opts.SetUsername(user)
		opts.SetPassword(os.Getenv("MQTT_PASSWORD"))
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to MQTT broker: %w", token.Error())
	}
	ing.client = client

	if token := client.Subscribe(fuelTopic, 1, ing.onFuel); token.Wait() && token.Error() != nil {
		client.Disconnect(250)
		return nil, fmt.Errorf("subscribe %s: %w", fuelTopic, token.Error())
	}
	if token := client.Subscribe(odometerTopic, 1, ing.onOdometer); token.Wait() && token.Error() != nil {
		client.Disconnect(250)
		return nil, fmt.Errorf("subscribe %s: %w", odometerTopic, token.Error())
	}

	ing.log.WithField("broker", broker).Info("telemetry ingest connected")
	return ing, nil
}

// Close disconnects from the broker.
func (i *Ingestor) Close() {
	if i.client != nil {
		i.client.Disconnect(250)
	}
}

func (i *Ingestor) onFuel(_ mqtt.Client, msg mqtt.Message) {
	if err := i.handleFuel(msg.Topic(), msg.Payload()); err != nil {
		i.log.WithError(err).WithField("topic", msg.Topic()).Warn("fuel reading dropped")
	}
}

func (i *Ingestor) onOdometer(_ mqtt.Client, msg mqtt.Message) {
	if err := i.handleOdometer(msg.Topic(), msg.Payload()); err != nil {
		i.log.WithError(err).WithField("topic", msg.Topic()).Warn("odometer reading dropped")
	}
}

type fuelReading struct {
	TripID   string    `json:"trip_id,omitempty"`
	Date     time.Time `json:"date,omitempty"`
	Liters   float64   `json:"liters"`
	Cost     float64   `json:"cost"`
	KmDriven float64   `json:"km_driven"`
}

func (i *Ingestor) handleFuel(topic string, payload []byte) error {
	vehicleID, err := vehicleFromTopic(topic)
	if err != nil {
		return err
	}
	var reading fuelReading
	if err := json.Unmarshal(payload, &reading); err != nil {
		return fmt.Errorf("decode fuel payload: %w", err)
	}
	_, err = i.coord.LogFuel(fleet.FuelInput{
		VehicleID: vehicleID,
		TripID:    reading.TripID,
		Date:      reading.Date,
		Liters:    reading.Liters,
		Cost:      reading.Cost,
		KmDriven:  reading.KmDriven,
	})
	return err
}

type odometerReading struct {
	Km float64 `json:"km"`
}

func (i *Ingestor) handleOdometer(topic string, payload []byte) error {
	vehicleID, err := vehicleFromTopic(topic)
	if err != nil {
		return err
	}
	var reading odometerReading
	if err := json.Unmarshal(payload, &reading); err != nil {
		return fmt.Errorf("decode odometer payload: %w", err)
	}
	_, err = i.coord.SetOdometer(vehicleID, reading.Km)
	return err
}

func vehicleFromTopic(topic string) (string, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 3 || parts[0] != "fleet" || parts[1] == "" {
		return "", fmt.Errorf("unexpected topic %q", topic)
	}
	return parts[1], nil
}
