package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
	"github.com/nandanugg/geofence-monitor/module/core/internal/repository/database"
)

var ErrNoPositionFix = errors.New("no position fix available")

type PositionService struct {
	repo     database.PositionRepository
	deviceID string
}

func NewPositionService(repo database.PositionRepository, deviceID string) *PositionService {
	return &PositionService{repo: repo, deviceID: deviceID}
}

func (s *PositionService) DeviceID() string {
	return s.deviceID
}

func (s *PositionService) SaveSample(ctx context.Context, sample *domain.PositionSample) error {
	if sample.DeviceID != s.deviceID {
		return fmt.Errorf("device %s: not the monitored device", sample.DeviceID)
	}
	return s.repo.Insert(ctx, sample)
}

func (s *PositionService) Latest(ctx context.Context) (*domain.PositionSample, error) {
	sample, err := s.repo.GetLatest(ctx, s.deviceID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrNoPositionFix
	}
	return sample, err
}

// CurrentPosition returns whatever fix is newest. No staleness bound applies.
func (s *PositionService) CurrentPosition(ctx context.Context) (domain.GeoPoint, error) {
	sample, err := s.Latest(ctx)
	if err != nil {
		return domain.GeoPoint{}, err
	}
	return sample.Point, nil
}

func (s *PositionService) GetHistory(ctx context.Context, start, end time.Time) ([]domain.PositionSample, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("history range: end before start")
	}
	return s.repo.GetHistory(ctx, &domain.HistoryQuery{DeviceID: s.deviceID, Start: start, End: end})
}
