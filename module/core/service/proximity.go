package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
	"github.com/nandanugg/geofence-monitor/module/core/geo"
	"github.com/nandanugg/geofence-monitor/module/core/internal/metrics"
)

const (
	StatusInside  = "You are inside the geofence."
	StatusOutside = "You are outside the geofence."
)

var ErrPermissionDenied = errors.New("location permission not granted")

type positionProvider interface {
	CurrentPosition(ctx context.Context) (domain.GeoPoint, error)
}

type foregroundPermission interface {
	RequestForeground(ctx context.Context) (domain.PermissionStatus, error)
}

type ProximityService struct {
	provider    positionProvider
	permissions foregroundPermission
	region      domain.Region
	timeout     time.Duration
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

func NewProximityService(provider positionProvider, permissions foregroundPermission, region domain.Region, timeout time.Duration, logger *slog.Logger, m *metrics.Metrics) *ProximityService {
	return &ProximityService{
		provider:    provider,
		permissions: permissions,
		region:      region,
		timeout:     timeout,
		logger:      logger,
		metrics:     m,
	}
}

// Evaluate samples the current position once and classifies it against the
// region. Each call is independent.
func (s *ProximityService) Evaluate(ctx context.Context) (*domain.ProximityResult, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	// sampling needs the foreground grant on every call; it may be revoked mid-session
	status, err := s.permissions.RequestForeground(ctx)
	if err == nil && status != domain.PermissionGranted {
		err = ErrPermissionDenied
	}
	if err != nil {
		s.metrics.ProximityFailures.Inc()
		s.logger.Error("check location", "error", err)
		return nil, fmt.Errorf("location permission: %w", err)
	}

	fix, err := s.provider.CurrentPosition(ctx)
	if err != nil {
		s.metrics.ProximityFailures.Inc()
		s.logger.Error("check location", "error", err)
		return nil, fmt.Errorf("current position: %w", err)
	}

	distance := geo.Distance(s.region.Center, fix)
	result := NewProximityResult(distance, s.region.RadiusMeters)

	s.metrics.ProximityChecks.WithLabelValues(string(result.Classification)).Inc()
	s.logger.Info("current location",
		"latitude", fix.Lat,
		"longitude", fix.Lon,
		"distance_meters", distance,
		"classification", string(result.Classification),
	)
	return result, nil
}

// Classify treats the boundary as inside.
func Classify(distance, radius float64) domain.Classification {
	if distance <= radius {
		return domain.Inside
	}
	return domain.Outside
}

func NewProximityResult(distance, radius float64) *domain.ProximityResult {
	if Classify(distance, radius) == domain.Inside {
		return &domain.ProximityResult{
			DistanceMeters: distance,
			Classification: domain.Inside,
			StatusMessage:  StatusInside,
			Color:          domain.ColorInside,
		}
	}
	return &domain.ProximityResult{
		DistanceMeters: distance,
		Classification: domain.Outside,
		StatusMessage:  StatusOutside,
		Color:          domain.ColorOutside,
	}
}
