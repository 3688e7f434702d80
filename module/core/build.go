package core

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
	handler "github.com/nandanugg/geofence-monitor/module/core/internal/handler/http"
	"github.com/nandanugg/geofence-monitor/module/core/internal/handler/subscriber"
	"github.com/nandanugg/geofence-monitor/module/core/internal/metrics"
	"github.com/nandanugg/geofence-monitor/module/core/internal/permission"
	"github.com/nandanugg/geofence-monitor/module/core/internal/repository/database/postgres"
	"github.com/nandanugg/geofence-monitor/module/core/internal/repository/publisher/rabbitmq"
	"github.com/nandanugg/geofence-monitor/module/core/service"
	"github.com/nandanugg/geofence-monitor/module/core/task"
)

type Settings struct {
	DeviceID                string
	TaskName                string
	Region                  domain.Region
	PositionTimeout         time.Duration
	ForegroundGranted       bool
	BackgroundGranted       bool
	LocationServicesEnabled bool
}

type Module struct {
	Registry      *task.Registry
	Transitions   *service.TransitionHandler
	Geofencing    *service.GeofencingService
	Proximity     *service.ProximityService
	PositionSvc   *service.PositionService
	Board         *service.StatusBoard
	setup         *service.SetupService
	status        *handler.StatusHandler
	positions     *handler.PositionHandler
	positionSub   *subscriber.PositionSubscriber
	transitionSub *subscriber.TransitionSubscriber
}

func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, reg prometheus.Registerer, logger *slog.Logger, s Settings) (*Module, error) {
	if err := s.Region.Validate(); err != nil {
		return nil, fmt.Errorf("geofence region: %w", err)
	}

	m := metrics.New(reg)

	alertPub, err := rabbitmq.NewAlertPublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("alert publisher: %w", err)
	}

	// the task must exist before anything can deliver to it
	registry := task.NewRegistry()
	transitions := service.NewTransitionHandler(s.Region, alertPub, logger.With("component", "transition_task"), m)
	if err := registry.Define(s.TaskName, transitions); err != nil {
		return nil, fmt.Errorf("define task: %w", err)
	}

	positionSvc := service.NewPositionService(postgres.NewPositionRepo(db), s.DeviceID)
	geofencing := service.NewGeofencingService(registry, s.LocationServicesEnabled, logger.With("component", "geofencing"))
	gatekeeper := permission.NewStaticGatekeeper(s.ForegroundGranted, s.BackgroundGranted)
	proximity := service.NewProximityService(positionSvc, gatekeeper, s.Region, s.PositionTimeout, logger.With("component", "proximity"), m)
	board := service.NewStatusBoard()

	setup := service.NewSetupService(gatekeeper, geofencing, board, s.TaskName, s.Region, logger.With("component", "setup"), m)

	return &Module{
		Registry:      registry,
		Transitions:   transitions,
		Geofencing:    geofencing,
		Proximity:     proximity,
		PositionSvc:   positionSvc,
		Board:         board,
		setup:         setup,
		status:        handler.NewStatusHandler(proximity, board),
		positions:     handler.NewPositionHandler(positionSvc),
		positionSub:   subscriber.NewPositionSubscriber(mqttClient, s.DeviceID, positionSvc, geofencing, logger.With("component", "position_subscriber"), m),
		transitionSub: subscriber.NewTransitionSubscriber(mqttClient, s.TaskName, geofencing, logger.With("component", "transition_subscriber")),
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.status.Register(r)
	m.positions.Register(r)
}

// Setup runs the startup permission and registration sequence once.
func (m *Module) Setup(ctx context.Context) error {
	return m.setup.Run(ctx)
}

func (m *Module) StartSubscribers() error {
	if err := m.positionSub.Start(); err != nil {
		return fmt.Errorf("position subscriber: %w", err)
	}
	if err := m.transitionSub.Start(); err != nil {
		return fmt.Errorf("transition subscriber: %w", err)
	}
	return nil
}
