package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
	"github.com/nandanugg/geofence-monitor/module/core/internal/metrics"
	"github.com/nandanugg/geofence-monitor/module/core/internal/repository/publisher"
	"github.com/nandanugg/geofence-monitor/module/core/task"
)

var _ task.Handler = (*TransitionHandler)(nil)

// TransitionHandler is the background task that reacts to enter/exit events
// for the single registered region.
type TransitionHandler struct {
	region    domain.Region
	publisher publisher.AlertPublisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
	now       func() time.Time

	mu    sync.Mutex
	state domain.RegionState
}

func NewTransitionHandler(region domain.Region, pub publisher.AlertPublisher, logger *slog.Logger, m *metrics.Metrics) *TransitionHandler {
	return &TransitionHandler{
		region:    region,
		publisher: pub,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
	}
}

func (h *TransitionHandler) State() domain.RegionState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *TransitionHandler) HandleTransition(ctx context.Context, ev domain.TransitionEvent) {
	h.logger.Debug("geofencing task executed", "region", ev.Region.Identifier)

	if ev.Error != nil {
		h.metrics.TransitionErrors.Inc()
		h.logger.Error("geofencing error", "error", ev.Error.Error())
		return
	}

	if ev.Region.Identifier != h.region.Identifier {
		h.logger.Warn("transition for unmonitored region ignored", "region", ev.Region.Identifier)
		return
	}

	switch ev.Kind {
	case domain.TransitionEnter:
		h.apply(ctx, ev.Kind, domain.StateInside, h.region.NotifyOnEntry)
	case domain.TransitionExit:
		h.apply(ctx, ev.Kind, domain.StateOutside, h.region.NotifyOnExit)
	default:
		h.logger.Warn("unknown transition kind ignored", "event_type", string(ev.Kind))
	}
}

func (h *TransitionHandler) apply(ctx context.Context, kind domain.TransitionKind, target domain.RegionState, notify bool) {
	h.mu.Lock()
	if h.state == target {
		h.mu.Unlock()
		h.logger.Info("transition already applied", "event_type", string(kind), "state", target.String())
		return
	}
	h.state = target
	h.mu.Unlock()

	h.metrics.Transitions.WithLabelValues(string(kind)).Inc()
	h.logger.Info("geofence transition", "event_type", string(kind), "region", h.region.Identifier)

	if !notify {
		return
	}

	msg := transitionMessage(kind, h.region.Identifier)
	h.logger.Info(msg)

	alert := &domain.TransitionAlert{
		ID:        uuid.NewString(),
		RegionID:  h.region.Identifier,
		Event:     kind,
		Message:   msg,
		Timestamp: h.now().Unix(),
	}
	if err := h.publisher.PublishAlert(ctx, alert); err != nil {
		h.logger.Error("publish transition alert", "error", err)
	}
}

func transitionMessage(kind domain.TransitionKind, region string) string {
	if kind == domain.TransitionEnter {
		return fmt.Sprintf("You entered the geofence %s", region)
	}
	return fmt.Sprintf("You left the geofence %s", region)
}
