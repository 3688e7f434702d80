package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Simulated device: wanders around the geofence center, crossing the
// boundary now and then, and occasionally reports a location failure.

type errorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type positionMessage struct {
	DeviceID  string     `json:"device_id"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Timestamp int64      `json:"timestamp"`
	Error     *errorInfo `json:"error,omitempty"`
}

const (
	centerLat = -23.55052
	centerLon = -46.633308
	// roughly 1.1km per 0.01 degree of latitude
	driftDegrees = 0.01
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := getEnv("MQTT_BROKER", "tcp://localhost:1883")
	deviceID := getEnv("DEVICE_ID", "device-1")

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("geofence-mock-device")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	topic := fmt.Sprintf("/geofence/device/%s/location", deviceID)
	log.Printf("connected to %s, publishing to %s every %ds...", broker, topic, intervalSec)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		msg := positionMessage{DeviceID: deviceID, Timestamp: time.Now().Unix()}

		// 5% of ticks the device has no fix
		if rand.Float64() < 0.05 {
			msg.Error = &errorInfo{Code: "E_LOCATION_UNAVAILABLE", Message: "no gps fix"}
		} else {
			msg.Latitude = centerLat + (rand.Float64()-0.5)*driftDegrees
			msg.Longitude = centerLon + (rand.Float64()-0.5)*driftDegrees
		}

		payload, _ := json.Marshal(msg)
		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published to %s: %s", topic, payload)
	}
}
