package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
	"github.com/nandanugg/geofence-monitor/module/core/service"
)

type positionService interface {
	Latest(ctx context.Context) (*domain.PositionSample, error)
	GetHistory(ctx context.Context, start, end time.Time) ([]domain.PositionSample, error)
}

type positionResponse struct {
	DeviceID  string  `json:"device_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
}

type PositionHandler struct {
	positionSvc positionService
}

func NewPositionHandler(positionSvc positionService) *PositionHandler {
	return &PositionHandler{positionSvc: positionSvc}
}

func (h *PositionHandler) Register(r *gin.RouterGroup) {
	r.GET("/positions/latest", h.GetLatest)
	r.GET("/positions/history", h.GetHistory)
}

func (h *PositionHandler) GetLatest(c *gin.Context) {
	s, err := h.positionSvc.Latest(c.Request.Context())
	if errors.Is(err, service.ErrNoPositionFix) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no position recorded"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch position"})
		return
	}

	c.JSON(http.StatusOK, toPositionResponse(s))
}

func (h *PositionHandler) GetHistory(c *gin.Context) {
	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
		return
	}

	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
		return
	}
	if end < start {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must not be before start"})
		return
	}

	samples, err := h.positionSvc.GetHistory(c.Request.Context(), time.Unix(start, 0), time.Unix(end, 0))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	results := make([]positionResponse, len(samples))
	for i := range samples {
		results[i] = toPositionResponse(&samples[i])
	}
	c.JSON(http.StatusOK, results)
}

func toPositionResponse(s *domain.PositionSample) positionResponse {
	return positionResponse{
		DeviceID:  s.DeviceID,
		Latitude:  s.Point.Lat,
		Longitude: s.Point.Lon,
		Timestamp: s.Timestamp.Unix(),
	}
}
