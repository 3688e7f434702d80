package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
	"github.com/nandanugg/geofence-monitor/module/core/internal/metrics"
)

var (
	ErrForegroundDenied = errors.New("foreground location permission denied")
	ErrBackgroundDenied = errors.New("background location permission denied")
)

type gatekeeper interface {
	RequestForeground(ctx context.Context) (domain.PermissionStatus, error)
	RequestBackground(ctx context.Context) (domain.PermissionStatus, error)
}

type monitor interface {
	StartMonitoring(ctx context.Context, taskName string, regions []domain.Region) error
}

type alerter interface {
	Alert(title, message string)
}

// SetupService performs the one-shot monitoring registration at startup.
type SetupService struct {
	gatekeeper gatekeeper
	monitor    monitor
	alerter    alerter
	taskName   string
	region     domain.Region
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

func NewSetupService(g gatekeeper, mon monitor, a alerter, taskName string, region domain.Region, logger *slog.Logger, m *metrics.Metrics) *SetupService {
	return &SetupService{
		gatekeeper: g,
		monitor:    mon,
		alerter:    a,
		taskName:   taskName,
		region:     region,
		logger:     logger,
		metrics:    m,
	}
}

// Run requests both permissions and registers the region. It is attempted
// once; nothing is retried.
func (s *SetupService) Run(ctx context.Context) error {
	status, err := s.gatekeeper.RequestForeground(ctx)
	if err != nil || status != domain.PermissionGranted {
		s.alerter.Alert("Permission required", "We need permission to access your location.")
		return s.denied(ErrForegroundDenied, err)
	}

	status, err = s.gatekeeper.RequestBackground(ctx)
	if err != nil || status != domain.PermissionGranted {
		s.alerter.Alert("Background permission required", "We need permission to access your location in the background.")
		return s.denied(ErrBackgroundDenied, err)
	}
	s.logger.Info("permissions granted")

	if err := s.monitor.StartMonitoring(ctx, s.taskName, []domain.Region{s.region}); err != nil {
		s.metrics.RegistrationFailures.Inc()
		s.logger.Error("start geofencing", "task", s.taskName, "error", err)
		return fmt.Errorf("start geofencing: %w", err)
	}

	s.logger.Info("geofencing started",
		"task", s.taskName,
		"region", s.region.Identifier,
		"radius_meters", s.region.RadiusMeters,
	)
	return nil
}

func (s *SetupService) denied(sentinel, cause error) error {
	if cause != nil {
		s.logger.Error("permission request", "error", cause)
		return fmt.Errorf("%w: %w", sentinel, cause)
	}
	s.logger.Warn("permission denied", "error", sentinel)
	return sentinel
}
