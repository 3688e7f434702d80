package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
)

type fakeChannel struct {
	exchange string
	msgs     []amqp.Publishing
	err      error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, _ string, _, _ bool, msg amqp.Publishing) error {
	f.exchange = exchange
	f.msgs = append(f.msgs, msg)
	return f.err
}

func TestPublishAlert_Success(t *testing.T) {
	ch := &fakeChannel{}
	p := &AlertPublisher{ch: ch}

	alert := &domain.TransitionAlert{
		ID:        "5f0c7a4e-0000-4000-8000-000000000001",
		RegionID:  "myGeofence",
		Event:     domain.TransitionEnter,
		Message:   "entered geofence myGeofence",
		Timestamp: 1715003456,
	}
	if err := p.PublishAlert(context.Background(), alert); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ch.exchange != ExchangeName {
		t.Errorf("expected exchange %s, got %s", ExchangeName, ch.exchange)
	}
	if len(ch.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(ch.msgs))
	}
	msg := ch.msgs[0]
	if msg.MessageId != alert.ID {
		t.Errorf("expected message id %s, got %s", alert.ID, msg.MessageId)
	}
	if msg.Type != "enter" {
		t.Errorf("expected type enter, got %s", msg.Type)
	}

	var decoded domain.TransitionAlert
	if err := json.Unmarshal(msg.Body, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.RegionID != "myGeofence" {
		t.Errorf("expected myGeofence, got %s", decoded.RegionID)
	}
}

func TestPublishAlert_ChannelError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := &AlertPublisher{ch: ch}

	err := p.PublishAlert(context.Background(), &domain.TransitionAlert{ID: "x", Event: domain.TransitionExit})
	if err == nil {
		t.Fatal("expected error")
	}
}
