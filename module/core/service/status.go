package service

import (
	"sync"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
)

const StatusWaiting = "Waiting for geofence event..."

// StatusBoard is the state of the user-facing display. Only proximity
// results change the status line.
type StatusBoard struct {
	mu      sync.RWMutex
	display domain.Display
}

func NewStatusBoard() *StatusBoard {
	return &StatusBoard{display: domain.Display{Status: StatusWaiting, Color: domain.ColorIdle}}
}

func (b *StatusBoard) Show(result *domain.ProximityResult) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.display.Status = result.StatusMessage
	b.display.Color = result.Color
}

func (b *StatusBoard) Alert(title, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.display.Alert = &domain.Alert{Title: title, Message: message}
}

func (b *StatusBoard) Snapshot() domain.Display {
	b.mu.RLock()
	defer b.mu.RUnlock()
	d := b.display
	if d.Alert != nil {
		a := *d.Alert
		d.Alert = &a
	}
	return d
}
