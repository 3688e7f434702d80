package config

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
)

type dependencyCheck struct {
	name  string
	check func(ctx context.Context) error
}

type HealthChecker struct {
	checks []dependencyCheck
}

func NewHealthChecker(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client) *HealthChecker {
	return &HealthChecker{checks: []dependencyCheck{
		{name: "postgres", check: db.PingContext},
		{name: "rabbitmq", check: func(context.Context) error {
			if amqpConn.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		}},
		{name: "mqtt", check: func(context.Context) error {
			if !mqttClient.IsConnected() {
				return errors.New("not connected")
			}
			return nil
		}},
	}}
}

func (h *HealthChecker) Register(r *gin.Engine) {
	r.GET("/healthz", h.Handle)
}

func (h *HealthChecker) Handle(c *gin.Context) {
	status := http.StatusOK
	deps := gin.H{}

	for _, dc := range h.checks {
		if err := dc.check(c.Request.Context()); err != nil {
			deps[dc.name] = gin.H{"status": "down", "error": err.Error()}
			status = http.StatusServiceUnavailable
			continue
		}
		deps[dc.name] = gin.H{"status": "up"}
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":       overall,
		"dependencies": deps,
	})
}
