package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Simulator drives the fleet API like a busy dispatch desk: it
// registers a small fleet, then loops dispatching, completing and
// cancelling trips, opening maintenance and logging fuel, so a demo
// instance always has live data on the dashboard.

var cityPairs = [][2]string{
	{"Chennai", "Bangalore"},
	{"Mumbai", "Pune"},
	{"Delhi", "Jaipur"},
	{"Hyderabad", "Vijayawada"},
	{"Kochi", "Coimbatore"},
	{"Kolkata", "Bhubaneswar"},
}

var cargoKinds = []string{"Electronics", "Textiles", "Produce", "Machinery", "Furniture", "Pharmaceuticals"}

var authToken string

func request(method, url string, body interface{}) (*http.Response, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func postJSON(url string, body interface{}, out interface{}) error {
	resp, err := request(http.MethodPost, url, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s: status %d", url, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func getJSON(url string, out interface{}) error {
	resp, err := request(http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func login(apiURL string) {
	username := os.Getenv("SIM_USERNAME")
	password := os.Getenv("SIM_PASSWORD")
	if username == "" {
		return
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := postJSON(apiURL+"/auth/login", map[string]string{
		"username": username, "password": password,
	}, &resp); err != nil {
		log.WithError(err).Warn("login failed, continuing unauthenticated")
		return
	}
	authToken = resp.Token
	log.WithField("username", username).Info("logged in")
}

type record struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Weight float64 `json:"capacity,omitempty"`
}

func createFleet(apiURL string, vehicles, drivers int) ([]string, []string) {
	types := []string{"Van", "Truck", "Bike", "Car"}
	capacities := map[string]float64{"Van": 1000, "Truck": 5000, "Bike": 30, "Car": 400}

	vehicleIDs := make([]string, 0, vehicles)
	for i := 0; i < vehicles; i++ {
		vtype := types[rand.Intn(len(types))]
		var v record
		err := postJSON(apiURL+"/vehicles", map[string]interface{}{
			"name":     fmt.Sprintf("%s-%02d", vtype, i+1),
			"plate":    fmt.Sprintf("TN%02d%c%c%04d", rand.Intn(99)+1, 'A'+rand.Intn(26), 'A'+rand.Intn(26), rand.Intn(10000)),
			"type":     vtype,
			"capacity": capacities[vtype],
		}, &v)
		if err != nil {
			log.WithError(err).Error("failed to create vehicle")
			continue
		}
		vehicleIDs = append(vehicleIDs, v.ID)
	}

	names := []string{"Arun Kumar", "Priya Sharma", "Vijay Anand", "Deepa Nair", "Ravi Menon", "Kavitha Rao", "Suresh Babu", "Lakshmi Iyer"}
	driverIDs := make([]string, 0, drivers)
	for i := 0; i < drivers; i++ {
		var d record
		err := postJSON(apiURL+"/drivers", map[string]interface{}{
			"name":           names[i%len(names)],
			"license":        fmt.Sprintf("TN%07d", rand.Intn(10000000)),
			"license_expiry": time.Now().AddDate(1+rand.Intn(4), 0, 0),
			"category":       []string{"Van", "Truck", "Bike"}[rand.Intn(3)],
		}, &d)
		if err != nil {
			log.WithError(err).Error("failed to create driver")
			continue
		}
		driverIDs = append(driverIDs, d.ID)
	}
	return vehicleIDs, driverIDs
}

func dispatchTrip(apiURL string) (string, bool) {
	var vehicles, drivers []record
	if err := getJSON(apiURL+"/vehicles/eligible", &vehicles); err != nil || len(vehicles) == 0 {
		return "", false
	}
	if err := getJSON(apiURL+"/drivers/eligible", &drivers); err != nil || len(drivers) == 0 {
		return "", false
	}
	v := vehicles[rand.Intn(len(vehicles))]
	d := drivers[rand.Intn(len(drivers))]
	route := cityPairs[rand.Intn(len(cityPairs))]

	var trip record
	err := postJSON(apiURL+"/trips", map[string]interface{}{
		"vehicle_id":   v.ID,
		"driver_id":    d.ID,
		"origin":       route[0],
		"destination":  route[1],
		"cargo":        cargoKinds[rand.Intn(len(cargoKinds))],
		"cargo_weight": v.Weight * (0.3 + rand.Float64()*0.6),
		"revenue":      5000 + rand.Float64()*20000,
	}, &trip)
	if err != nil {
		log.WithError(err).Warn("dispatch rejected")
		return "", false
	}
	log.WithFields(log.Fields{"trip_id": trip.ID, "vehicle_id": v.ID, "driver_id": d.ID}).Info("trip dispatched")
	return trip.ID, true
}

func settleTrip(apiURL, tripID string) {
	status := "Completed"
	if rand.Float64() < 0.15 {
		status = "Cancelled"
	}
	if err := postJSON(fmt.Sprintf("%s/trips/%s/status", apiURL, tripID), map[string]string{"status": status}, nil); err != nil {
		log.WithError(err).Warn("failed to settle trip")
		return
	}
	log.WithFields(log.Fields{"trip_id": tripID, "status": status}).Info("trip settled")
}

func logFuel(apiURL string, vehicleID string) {
	liters := 20 + rand.Float64()*50
	err := postJSON(apiURL+"/fuel", map[string]interface{}{
		"vehicle_id": vehicleID,
		"liters":     liters,
		"cost":       liters * (95 + rand.Float64()*15),
		"km_driven":  liters * (6 + rand.Float64()*8),
	}, nil)
	if err != nil {
		log.WithError(err).Warn("failed to log fuel")
	}
}

func openMaintenance(apiURL string, vehicleID string) {
	kinds := []string{"Oil Change", "Tire Rotation", "Brake Inspection", "Engine Repair"}
	err := postJSON(apiURL+"/maintenance", map[string]interface{}{
		"vehicle_id": vehicleID,
		"type":       kinds[rand.Intn(len(kinds))],
		"cost":       500 + rand.Float64()*8000,
	}, nil)
	if err != nil {
		log.WithError(err).Warn("failed to open maintenance")
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func main() {
	godotenv.Load()

	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}
	interval := time.Duration(envInt("SIM_TICK_SECONDS", 3)) * time.Second

	login(apiURL)

	vehicleIDs, driverIDs := createFleet(apiURL, envInt("SIM_VEHICLES", 6), envInt("SIM_DRIVERS", 8))
	log.WithFields(log.Fields{
		"vehicles": len(vehicleIDs),
		"drivers":  len(driverIDs),
		"api_url":  apiURL,
	}).Info("fleet created, starting dispatch loop")
	if len(vehicleIDs) == 0 || len(driverIDs) == 0 {
		log.Error("nothing to simulate, is the API reachable?")
		return
	}

	var openTrips []string
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for range tick.C {
		switch {
		case len(openTrips) > 0 && rand.Float64() < 0.5:
			i := rand.Intn(len(openTrips))
			settleTrip(apiURL, openTrips[i])
			openTrips = append(openTrips[:i], openTrips[i+1:]...)
		default:
			if id, ok := dispatchTrip(apiURL); ok {
				openTrips = append(openTrips, id)
			}
		}

		if rand.Float64() < 0.3 {
			logFuel(apiURL, vehicleIDs[rand.Intn(len(vehicleIDs))])
		}
		if rand.Float64() < 0.1 {
			openMaintenance(apiURL, vehicleIDs[rand.Intn(len(vehicleIDs))])
		}
	}
}
