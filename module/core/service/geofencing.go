package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
	"github.com/nandanugg/geofence-monitor/module/core/geo"
	"github.com/nandanugg/geofence-monitor/module/core/task"
)

var (
	ErrLocationServicesDisabled = errors.New("location services are disabled")
	ErrNoRegions                = errors.New("at least one region is required")
	ErrDuplicateRegion          = errors.New("duplicate region identifier")
)

type dispatcher interface {
	IsDefined(name string) bool
	Dispatch(ctx context.Context, name string, ev domain.TransitionEvent) error
}

type monitoredRegion struct {
	region domain.Region
	state  domain.RegionState
}

// GeofencingService watches incoming fixes for every monitored region and
// delivers enter/exit transitions to the task registered under the task name.
type GeofencingService struct {
	dispatcher      dispatcher
	servicesEnabled bool
	logger          *slog.Logger

	mu      sync.Mutex
	tasks   map[string][]*monitoredRegion
	lastFix *domain.GeoPoint
}

func NewGeofencingService(d dispatcher, servicesEnabled bool, logger *slog.Logger) *GeofencingService {
	return &GeofencingService{
		dispatcher:      d,
		servicesEnabled: servicesEnabled,
		logger:          logger,
		tasks:           make(map[string][]*monitoredRegion),
	}
}

// StartMonitoring replaces the region set of taskName. If a fix has already
// been seen, the last-known transition is replayed to the task.
func (s *GeofencingService) StartMonitoring(ctx context.Context, taskName string, regions []domain.Region) error {
	if !s.servicesEnabled {
		return ErrLocationServicesDisabled
	}
	if !s.dispatcher.IsDefined(taskName) {
		return fmt.Errorf("task %s: %w", taskName, task.ErrTaskNotDefined)
	}
	if len(regions) == 0 {
		return ErrNoRegions
	}

	seen := make(map[string]struct{}, len(regions))
	monitored := make([]*monitoredRegion, 0, len(regions))
	for _, r := range regions {
		if err := r.Validate(); err != nil {
			return err
		}
		if _, dup := seen[r.Identifier]; dup {
			return fmt.Errorf("region %s: %w", r.Identifier, ErrDuplicateRegion)
		}
		seen[r.Identifier] = struct{}{}
		monitored = append(monitored, &monitoredRegion{region: r})
	}

	s.mu.Lock()
	s.tasks[taskName] = monitored
	var pending []delivery
	if s.lastFix != nil {
		for _, m := range monitored {
			if ev, ok := advance(m, *s.lastFix); ok {
				pending = append(pending, delivery{task: taskName, ev: ev})
			}
		}
	}
	s.mu.Unlock()

	s.deliverAll(ctx, pending)
	return nil
}

func (s *GeofencingService) Observe(ctx context.Context, p domain.GeoPoint) {
	s.mu.Lock()
	s.lastFix = &p
	var pending []delivery
	for name, regions := range s.tasks {
		for _, m := range regions {
			if ev, ok := advance(m, p); ok {
				pending = append(pending, delivery{task: name, ev: ev})
			}
		}
	}
	s.mu.Unlock()

	s.deliverAll(ctx, pending)
}

// ReportError delivers an error-bearing event to every monitored task.
func (s *GeofencingService) ReportError(ctx context.Context, info *domain.ErrorInfo) {
	s.mu.Lock()
	pending := make([]delivery, 0, len(s.tasks))
	for name := range s.tasks {
		pending = append(pending, delivery{task: name, ev: domain.TransitionEvent{Error: info}})
	}
	s.mu.Unlock()

	s.deliverAll(ctx, pending)
}

// Deliver forwards an externally raised event to taskName, but only while
// that task is monitoring the event's region. Anything else is dropped.
func (s *GeofencingService) Deliver(ctx context.Context, taskName string, ev domain.TransitionEvent) bool {
	s.mu.Lock()
	regions, ok := s.tasks[taskName]
	if ok && ev.Error == nil {
		ok = false
		for _, m := range regions {
			if m.region.Identifier == ev.Region.Identifier {
				ev.Region = m.region
				ok = true
				break
			}
		}
	}
	s.mu.Unlock()

	if !ok {
		s.logger.Warn("event for unmonitored task or region dropped",
			"task", taskName,
			"region", ev.Region.Identifier,
		)
		return false
	}
	s.deliverAll(ctx, []delivery{{task: taskName, ev: ev}})
	return true
}

type delivery struct {
	task string
	ev   domain.TransitionEvent
}

// deliverAll runs outside s.mu so a slow task never blocks fix ingestion.
func (s *GeofencingService) deliverAll(ctx context.Context, pending []delivery) {
	for _, d := range pending {
		if err := s.dispatcher.Dispatch(ctx, d.task, d.ev); err != nil {
			s.logger.Error("deliver geofence event", "task", d.task, "error", err)
		}
	}
}

// advance moves m to the state implied by p and reports the transition, if
// any. A first fix outside the region settles the state without an event.
func advance(m *monitoredRegion, p domain.GeoPoint) (domain.TransitionEvent, bool) {
	next := domain.StateOutside
	if geo.Distance(m.region.Center, p) <= m.region.RadiusMeters {
		next = domain.StateInside
	}

	prev := m.state
	m.state = next
	if prev == next || (prev == domain.StateUnknown && next == domain.StateOutside) {
		return domain.TransitionEvent{}, false
	}

	kind := domain.TransitionEnter
	if next == domain.StateOutside {
		kind = domain.TransitionExit
	}
	return domain.TransitionEvent{Kind: kind, Region: m.region}, true
}
