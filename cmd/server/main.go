package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/nandanugg/geofence-monitor/config"
	"github.com/nandanugg/geofence-monitor/module/core"
	"github.com/nandanugg/geofence-monitor/module/core/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg.LogLevel)

	db, err := config.NewPostgres(cfg)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer func() { _ = db.Close() }()

	amqpConn, err := config.NewRabbitMQ(cfg)
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer func() { _ = amqpConn.Close() }()

	mqttClient, err := config.NewMQTT(cfg, logger)
	if err != nil {
		log.Fatalf("mqtt: %v", err)
	}
	defer mqttClient.Disconnect(250)

	region := domain.Region{
		Identifier:    cfg.Geofence.Identifier,
		Center:        domain.GeoPoint{Lat: cfg.Geofence.Latitude, Lon: cfg.Geofence.Longitude},
		RadiusMeters:  cfg.Geofence.RadiusMeters,
		NotifyOnEntry: cfg.Geofence.NotifyOnEntry,
		NotifyOnExit:  cfg.Geofence.NotifyOnExit,
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	coreModule, err := core.Build(db, amqpConn, mqttClient, reg, logger, core.Settings{
		DeviceID:                cfg.DeviceID,
		TaskName:                cfg.TaskName,
		Region:                  region,
		PositionTimeout:         cfg.PositionTimeout,
		ForegroundGranted:       cfg.ForegroundGranted,
		BackgroundGranted:       cfg.BackgroundGranted,
		LocationServicesEnabled: cfg.LocationServicesEnabled,
	})
	if err != nil {
		log.Fatalf("core module: %v", err)
	}

	if err := coreModule.StartSubscribers(); err != nil {
		log.Fatalf("start subscribers: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// a failed setup leaves the status surface up so the user can see why
	if err := coreModule.Setup(ctx); err != nil {
		logger.Error("geofence setup", "error", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	health := config.NewHealthChecker(db, amqpConn, mqttClient)
	health.Register(r)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	coreModule.RegisterRoutes(&r.RouterGroup)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server", "error", err)
		os.Exit(1)
	}
	logger.Info("shut down")
}
