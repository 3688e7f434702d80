// Package task keeps the process-wide table of named transition handlers that
// the geofencing service looks up when it delivers an event.
package task

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
)

var (
	ErrTaskNotDefined     = errors.New("task not defined")
	ErrTaskAlreadyDefined = errors.New("task already defined with a different handler")
)

// Handler implementations must be pointer types so that a repeated Define
// can be recognised by identity.
type Handler interface {
	HandleTransition(ctx context.Context, ev domain.TransitionEvent)
}

type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Define binds name to h. Defining the same handler twice is a no-op.
func (r *Registry) Define(name string, h Handler) error {
	if name == "" {
		return fmt.Errorf("task name: required")
	}
	if h == nil {
		return fmt.Errorf("task %s: handler required", name)
	}
	if reflect.ValueOf(h).Kind() != reflect.Pointer {
		return fmt.Errorf("task %s: handler %T must be a pointer", name, h)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.handlers[name]; ok {
		if existing == h {
			return nil
		}
		return fmt.Errorf("task %s: %w", name, ErrTaskAlreadyDefined)
	}
	r.handlers[name] = h
	return nil
}

func (r *Registry) IsDefined(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[name]
	return ok
}

func (r *Registry) Dispatch(ctx context.Context, name string, ev domain.TransitionEvent) error {
	r.mu.RLock()
	h, ok := r.handlers[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("task %s: %w", name, ErrTaskNotDefined)
	}
	h.HandleTransition(ctx, ev)
	return nil
}
