package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
	"github.com/nandanugg/geofence-monitor/module/core/service"
)

type proximityEvaluator interface {
	Evaluate(ctx context.Context) (*domain.ProximityResult, error)
}

type statusBoard interface {
	Show(result *domain.ProximityResult)
	Snapshot() domain.Display
}

type StatusHandler struct {
	evaluator proximityEvaluator
	board     statusBoard
}

func NewStatusHandler(evaluator proximityEvaluator, board statusBoard) *StatusHandler {
	return &StatusHandler{evaluator: evaluator, board: board}
}

func (h *StatusHandler) Register(r *gin.RouterGroup) {
	r.GET("/status", h.GetStatus)
	r.POST("/status/check", h.CheckLocation)
}

func (h *StatusHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.board.Snapshot())
}

// CheckLocation runs one proximity evaluation. On failure the board keeps
// whatever it showed before.
func (h *StatusHandler) CheckLocation(c *gin.Context) {
	result, err := h.evaluator.Evaluate(c.Request.Context())
	if errors.Is(err, service.ErrPermissionDenied) {
		c.JSON(http.StatusForbidden, gin.H{"error": "location permission not granted"})
		return
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to check location"})
		return
	}

	h.board.Show(result)
	c.JSON(http.StatusOK, result)
}
