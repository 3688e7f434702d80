package permission

import (
	"context"
	"testing"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
)

func TestStaticGatekeeper(t *testing.T) {
	g := NewStaticGatekeeper(true, false)

	fg, err := g.RequestForeground(context.Background())
	if err != nil || fg != domain.PermissionGranted {
		t.Errorf("foreground = %s, %v; want granted", fg, err)
	}
	bg, err := g.RequestBackground(context.Background())
	if err != nil || bg != domain.PermissionDenied {
		t.Errorf("background = %s, %v; want denied", bg, err)
	}
}

func TestStaticGatekeeper_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewStaticGatekeeper(true, true)
	if _, err := g.RequestForeground(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
