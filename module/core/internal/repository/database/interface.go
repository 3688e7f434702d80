package database

import (
	"context"
	"errors"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
)

var ErrNotFound = errors.New("no position recorded")

type PositionRepository interface {
	Insert(ctx context.Context, sample *domain.PositionSample) error
	GetLatest(ctx context.Context, deviceID string) (*domain.PositionSample, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.PositionSample, error)
}
