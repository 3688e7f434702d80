package service

import (
	"testing"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
)

func TestStatusBoard_InitialState(t *testing.T) {
	d := NewStatusBoard().Snapshot()
	if d.Status != StatusWaiting || d.Color != domain.ColorIdle || d.Alert != nil {
		t.Errorf("unexpected initial display: %+v", d)
	}
}

func TestStatusBoard_ShowReplacesStatus(t *testing.T) {
	b := NewStatusBoard()
	b.Show(NewProximityResult(10, 500))
	b.Show(NewProximityResult(10000, 500))

	d := b.Snapshot()
	if d.Status != StatusOutside || d.Color != domain.ColorOutside {
		t.Errorf("expected latest result to win, got %+v", d)
	}
}

func TestStatusBoard_SnapshotIsACopy(t *testing.T) {
	b := NewStatusBoard()
	b.Alert("Permission required", "denied")

	d := b.Snapshot()
	d.Alert.Title = "changed"

	if b.Snapshot().Alert.Title != "Permission required" {
		t.Error("snapshot must not alias board state")
	}
}
