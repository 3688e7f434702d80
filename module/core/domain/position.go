package domain

import "time"

type PositionSample struct {
	DeviceID  string    `json:"device_id"`
	Point     GeoPoint  `json:"point"`
	Timestamp time.Time `json:"timestamp"`
}

type HistoryQuery struct {
	DeviceID string
	Start    time.Time
	End      time.Time
}

type PermissionStatus string

const (
	PermissionGranted PermissionStatus = "granted"
	PermissionDenied  PermissionStatus = "denied"
)
