package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
)

const TransitionTopicFormat = "/geofence/task/%s/event"

type transitionRouter interface {
	Deliver(ctx context.Context, taskName string, ev domain.TransitionEvent) bool
}

type transitionMessage struct {
	EventType string            `json:"event_type"`
	Region    string            `json:"region"`
	Error     *domain.ErrorInfo `json:"error,omitempty"`
}

// TransitionSubscriber accepts transition events raised by the device's own
// geofencing and hands them to the geofencing service, which only lets them
// through to a task that is actually monitoring the region. The event kind is
// passed through as-is; the task decides what to do with kinds it does not know.
type TransitionSubscriber struct {
	client   mqtt.Client
	taskName string
	router   transitionRouter
	logger   *slog.Logger
}

func NewTransitionSubscriber(client mqtt.Client, taskName string, router transitionRouter, logger *slog.Logger) *TransitionSubscriber {
	return &TransitionSubscriber{
		client:   client,
		taskName: taskName,
		router:   router,
		logger:   logger,
	}
}

func (s *TransitionSubscriber) Start() error {
	token := s.client.Subscribe(fmt.Sprintf(TransitionTopicFormat, s.taskName), 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *TransitionSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw transitionMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		s.logger.Warn("invalid transition message", "topic", msg.Topic(), "error", err)
		return
	}

	if raw.Error == nil && raw.Region == "" {
		s.logger.Warn("transition without region", "topic", msg.Topic())
		return
	}

	ev := domain.TransitionEvent{
		Kind:   domain.TransitionKind(strings.ToLower(raw.EventType)),
		Region: domain.Region{Identifier: raw.Region},
		Error:  raw.Error,
	}
	s.router.Deliver(context.Background(), s.taskName, ev)
}
