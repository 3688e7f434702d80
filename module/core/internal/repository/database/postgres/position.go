package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
	"github.com/nandanugg/geofence-monitor/module/core/internal/repository/database"
)

var _ database.PositionRepository = (*PositionRepo)(nil)

type PositionRepo struct {
	db *sql.DB
}

func NewPositionRepo(db *sql.DB) *PositionRepo {
	return &PositionRepo{db: db}
}

func (r *PositionRepo) Insert(ctx context.Context, sample *domain.PositionSample) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO device_positions (device_id, latitude, longitude, recorded_at) VALUES ($1, $2, $3, $4)`,
		sample.DeviceID, sample.Point.Lat, sample.Point.Lon, sample.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert position: %w", err)
	}
	return nil
}

func (r *PositionRepo) GetLatest(ctx context.Context, deviceID string) (*domain.PositionSample, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT device_id, latitude, longitude, recorded_at FROM device_positions WHERE device_id = $1 ORDER BY recorded_at DESC LIMIT 1`,
		deviceID,
	)

	var s domain.PositionSample
	if err := row.Scan(&s.DeviceID, &s.Point.Lat, &s.Point.Lon, &s.Timestamp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("latest position: %w", err)
	}
	return &s, nil
}

func (r *PositionRepo) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.PositionSample, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT device_id, latitude, longitude, recorded_at FROM device_positions WHERE device_id = $1 AND recorded_at >= $2 AND recorded_at <= $3 ORDER BY recorded_at ASC`,
		query.DeviceID, query.Start, query.End,
	)
	if err != nil {
		return nil, fmt.Errorf("position history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []domain.PositionSample
	for rows.Next() {
		var s domain.PositionSample
		if err := rows.Scan(&s.DeviceID, &s.Point.Lat, &s.Point.Lon, &s.Timestamp); err != nil {
			return nil, err
		}
		results = append(results, s)
	}
	return results, rows.Err()
}
