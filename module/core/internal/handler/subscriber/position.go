package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
	"github.com/nandanugg/geofence-monitor/module/core/internal/metrics"
)

const PositionTopicFormat = "/geofence/device/%s/location"

type positionService interface {
	SaveSample(ctx context.Context, sample *domain.PositionSample) error
}

type geofencingService interface {
	Observe(ctx context.Context, p domain.GeoPoint)
	ReportError(ctx context.Context, info *domain.ErrorInfo)
}

type positionMessage struct {
	DeviceID  string            `json:"device_id"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Timestamp int64             `json:"timestamp"`
	Error     *domain.ErrorInfo `json:"error,omitempty"`
}

// PositionSubscriber ingests device fixes, stores them and feeds them to the
// geofencing service.
type PositionSubscriber struct {
	client      mqtt.Client
	deviceID    string
	positionSvc positionService
	geofenceSvc geofencingService
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

func NewPositionSubscriber(client mqtt.Client, deviceID string, positionSvc positionService, geofenceSvc geofencingService, logger *slog.Logger, m *metrics.Metrics) *PositionSubscriber {
	return &PositionSubscriber{
		client:      client,
		deviceID:    deviceID,
		positionSvc: positionSvc,
		geofenceSvc: geofenceSvc,
		logger:      logger,
		metrics:     m,
	}
}

func (s *PositionSubscriber) Start() error {
	token := s.client.Subscribe(fmt.Sprintf(PositionTopicFormat, s.deviceID), 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *PositionSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw positionMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		s.logger.Warn("invalid position message", "topic", msg.Topic(), "error", err)
		return
	}

	ctx := context.Background()

	// the device could not produce a fix; hand the failure to the task
	if raw.Error != nil {
		s.geofenceSvc.ReportError(ctx, raw.Error)
		return
	}

	if err := validatePositionMessage(&raw); err != nil {
		s.logger.Warn("position validation", "error", err)
		return
	}

	sample := &domain.PositionSample{
		DeviceID:  raw.DeviceID,
		Point:     domain.GeoPoint{Lat: raw.Latitude, Lon: raw.Longitude},
		Timestamp: time.Unix(raw.Timestamp, 0),
	}

	if err := s.positionSvc.SaveSample(ctx, sample); err != nil {
		s.logger.Error("save position", "error", err)
		return
	}
	s.metrics.PositionsIngested.Inc()

	s.geofenceSvc.Observe(ctx, sample.Point)
}

func validatePositionMessage(msg *positionMessage) error {
	if msg.DeviceID == "" {
		return fmt.Errorf("device_id: required")
	}
	if msg.Latitude < -90 || msg.Latitude > 90 {
		return fmt.Errorf("latitude: must be between -90 and 90")
	}
	if msg.Longitude < -180 || msg.Longitude > 180 {
		return fmt.Errorf("longitude: must be between -180 and 180")
	}
	if msg.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	return nil
}
