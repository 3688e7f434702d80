// Package permission grants or denies location capabilities from fixed
// settings. It stands in for the device's permission prompts.
package permission

import (
	"context"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
)

type StaticGatekeeper struct {
	foreground bool
	background bool
}

func NewStaticGatekeeper(foreground, background bool) *StaticGatekeeper {
	return &StaticGatekeeper{foreground: foreground, background: background}
}

func (g *StaticGatekeeper) RequestForeground(ctx context.Context) (domain.PermissionStatus, error) {
	return status(ctx, g.foreground)
}

func (g *StaticGatekeeper) RequestBackground(ctx context.Context) (domain.PermissionStatus, error) {
	return status(ctx, g.background)
}

func status(ctx context.Context, granted bool) (domain.PermissionStatus, error) {
	if err := ctx.Err(); err != nil {
		return domain.PermissionDenied, err
	}
	if granted {
		return domain.PermissionGranted, nil
	}
	return domain.PermissionDenied, nil
}
