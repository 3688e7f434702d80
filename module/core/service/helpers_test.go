package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
	"github.com/nandanugg/geofence-monitor/module/core/internal/metrics"
)

var testRegion = domain.Region{
	Identifier:    "myGeofence",
	Center:        domain.GeoPoint{Lat: -23.55052, Lon: -46.633308},
	RadiusMeters:  500,
	NotifyOnEntry: true,
	NotifyOnExit:  true,
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func newMetrics() *metrics.Metrics {
	return metrics.New(nil)
}

type mockAlertPublisher struct {
	publishAlertFn func(ctx context.Context, alert *domain.TransitionAlert) error
	calls          []*domain.TransitionAlert
}

func (m *mockAlertPublisher) PublishAlert(ctx context.Context, alert *domain.TransitionAlert) error {
	m.calls = append(m.calls, alert)
	if m.publishAlertFn != nil {
		return m.publishAlertFn(ctx, alert)
	}
	return nil
}

type mockPositionProvider struct {
	currentPositionFn func(ctx context.Context) (domain.GeoPoint, error)
}

func (m *mockPositionProvider) CurrentPosition(ctx context.Context) (domain.GeoPoint, error) {
	return m.currentPositionFn(ctx)
}

func granted() *mockGatekeeper {
	return &mockGatekeeper{foreground: domain.PermissionGranted, background: domain.PermissionGranted}
}
