package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
)

type mockGatekeeper struct {
	foreground    domain.PermissionStatus
	background    domain.PermissionStatus
	err           error
	backgroundAsk int
}

func (m *mockGatekeeper) RequestForeground(context.Context) (domain.PermissionStatus, error) {
	return m.foreground, m.err
}

func (m *mockGatekeeper) RequestBackground(context.Context) (domain.PermissionStatus, error) {
	m.backgroundAsk++
	return m.background, m.err
}

type mockMonitor struct {
	startFn func(ctx context.Context, taskName string, regions []domain.Region) error
	calls   int
}

func (m *mockMonitor) StartMonitoring(ctx context.Context, taskName string, regions []domain.Region) error {
	m.calls++
	if m.startFn != nil {
		return m.startFn(ctx, taskName, regions)
	}
	return nil
}

func TestSetup_ScenarioA_ForegroundDenied(t *testing.T) {
	gk := &mockGatekeeper{foreground: domain.PermissionDenied, background: domain.PermissionGranted}
	mon := &mockMonitor{}
	board := NewStatusBoard()
	svc := NewSetupService(gk, mon, board, taskName, testRegion, discardLogger(), newMetrics())

	err := svc.Run(context.Background())
	if !errors.Is(err, ErrForegroundDenied) {
		t.Fatalf("expected ErrForegroundDenied, got %v", err)
	}
	if mon.calls != 0 {
		t.Fatalf("expected no registration, got %d calls", mon.calls)
	}
	if gk.backgroundAsk != 0 {
		t.Errorf("background permission should not be requested after foreground denial")
	}
	alert := board.Snapshot().Alert
	if alert == nil || alert.Title != "Permission required" {
		t.Fatalf("expected denial alert, got %+v", alert)
	}
}

func TestSetup_ScenarioA_BackgroundDenied(t *testing.T) {
	gk := &mockGatekeeper{foreground: domain.PermissionGranted, background: domain.PermissionDenied}
	mon := &mockMonitor{}
	board := NewStatusBoard()
	svc := NewSetupService(gk, mon, board, taskName, testRegion, discardLogger(), newMetrics())

	err := svc.Run(context.Background())
	if !errors.Is(err, ErrBackgroundDenied) {
		t.Fatalf("expected ErrBackgroundDenied, got %v", err)
	}
	if mon.calls != 0 {
		t.Fatalf("expected no registration, got %d calls", mon.calls)
	}
	if alert := board.Snapshot().Alert; alert == nil || alert.Title != "Background permission required" {
		t.Fatalf("expected background alert, got %+v", alert)
	}
}

func TestSetup_PermissionRequestError(t *testing.T) {
	cause := errors.New("prompt dismissed")
	gk := &mockGatekeeper{err: cause}
	mon := &mockMonitor{}
	svc := NewSetupService(gk, mon, NewStatusBoard(), taskName, testRegion, discardLogger(), newMetrics())

	err := svc.Run(context.Background())
	if !errors.Is(err, ErrForegroundDenied) || !errors.Is(err, cause) {
		t.Fatalf("expected wrapped denial and cause, got %v", err)
	}
	if mon.calls != 0 {
		t.Fatal("expected no registration")
	}
}

func TestSetup_Granted_RegistersOnce(t *testing.T) {
	gk := &mockGatekeeper{foreground: domain.PermissionGranted, background: domain.PermissionGranted}
	var gotTask string
	var gotRegions []domain.Region
	mon := &mockMonitor{
		startFn: func(_ context.Context, name string, regions []domain.Region) error {
			gotTask = name
			gotRegions = regions
			return nil
		},
	}
	board := NewStatusBoard()
	svc := NewSetupService(gk, mon, board, taskName, testRegion, discardLogger(), newMetrics())

	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mon.calls != 1 {
		t.Fatalf("expected 1 registration, got %d", mon.calls)
	}
	if gotTask != taskName || len(gotRegions) != 1 || gotRegions[0].Identifier != "myGeofence" {
		t.Errorf("unexpected registration: %s %+v", gotTask, gotRegions)
	}
	if board.Snapshot().Alert != nil {
		t.Error("expected no alert when permissions are granted")
	}
}

func TestSetup_RegistrationFailure(t *testing.T) {
	gk := &mockGatekeeper{foreground: domain.PermissionGranted, background: domain.PermissionGranted}
	mon := &mockMonitor{
		startFn: func(context.Context, string, []domain.Region) error {
			return ErrLocationServicesDisabled
		},
	}
	m := newMetrics()
	svc := NewSetupService(gk, mon, NewStatusBoard(), taskName, testRegion, discardLogger(), m)

	err := svc.Run(context.Background())
	if !errors.Is(err, ErrLocationServicesDisabled) {
		t.Fatalf("expected ErrLocationServicesDisabled, got %v", err)
	}
	if mon.calls != 1 {
		t.Fatalf("registration must not be retried, got %d calls", mon.calls)
	}
	if got := testutil.ToFloat64(m.RegistrationFailures); got != 1 {
		t.Errorf("expected 1 registration failure, got %f", got)
	}
}
