package publisher

import (
	"context"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
)

type AlertPublisher interface {
	PublishAlert(ctx context.Context, alert *domain.TransitionAlert) error
}
