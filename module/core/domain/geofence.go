package domain

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidRadius     = errors.New("radius must be a positive finite number of meters")
	ErrMissingIdentifier = errors.New("identifier is required")
	ErrInvalidCenter     = errors.New("center is outside latitude/longitude bounds")
)

type GeoPoint struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

func (p GeoPoint) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Region is a circular geofence. It is built once at startup and never mutated.
type Region struct {
	Identifier    string   `json:"identifier"`
	Center        GeoPoint `json:"center"`
	RadiusMeters  float64  `json:"radius"`
	NotifyOnEntry bool     `json:"notify_on_entry"`
	NotifyOnExit  bool     `json:"notify_on_exit"`
}

func (r Region) Validate() error {
	if r.Identifier == "" {
		return ErrMissingIdentifier
	}
	if !(r.RadiusMeters > 0) || math.IsInf(r.RadiusMeters, 1) {
		return fmt.Errorf("region %s: %w", r.Identifier, ErrInvalidRadius)
	}
	if !r.Center.Valid() {
		return fmt.Errorf("region %s: %w", r.Identifier, ErrInvalidCenter)
	}
	return nil
}

type RegionState int

const (
	StateUnknown RegionState = iota
	StateOutside
	StateInside
)

func (s RegionState) String() string {
	switch s {
	case StateInside:
		return "inside"
	case StateOutside:
		return "outside"
	default:
		return "unknown"
	}
}
