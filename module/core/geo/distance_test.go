package geo

import (
	"math"
	"testing"

	"github.com/nandanugg/geofence-monitor/module/core/domain"
)

var saoPaulo = domain.GeoPoint{Lat: -23.55052, Lon: -46.633308}

// metersNorth returns the latitude offset that moves m meters along a meridian.
func metersNorth(m float64) float64 {
	return m / EarthRadiusMeters * 180 / math.Pi
}

func TestHaversine_ZeroDistance(t *testing.T) {
	points := []domain.GeoPoint{
		saoPaulo,
		{Lat: 0, Lon: 0},
		{Lat: 90, Lon: 0},
		{Lat: -6.2088, Lon: 106.8456},
		{Lat: 45, Lon: 179.9999},
	}
	for _, p := range points {
		if d := Distance(p, p); d != 0 {
			t.Errorf("Distance(%v, %v) = %f, want 0", p, p, d)
		}
	}
}

func TestHaversine_Symmetry(t *testing.T) {
	pairs := [][2]domain.GeoPoint{
		{saoPaulo, {Lat: -22.9068, Lon: -43.1729}},
		{{Lat: 51.5074, Lon: -0.1278}, {Lat: 40.7128, Lon: -74.0060}},
		{{Lat: 0, Lon: 179.5}, {Lat: 0, Lon: -179.5}},
		{{Lat: 89.9, Lon: 10}, {Lat: -89.9, Lon: -170}},
	}
	for _, pq := range pairs {
		d1 := Distance(pq[0], pq[1])
		d2 := Distance(pq[1], pq[0])
		if math.Abs(d1-d2) > 1e-6 {
			t.Errorf("asymmetric distance: %f vs %f", d1, d2)
		}
	}
}

func TestHaversine_KnownValue500mNorth(t *testing.T) {
	north := domain.GeoPoint{Lat: saoPaulo.Lat + metersNorth(500), Lon: saoPaulo.Lon}
	d := Distance(saoPaulo, north)
	if math.Abs(d-500) > 1 {
		t.Errorf("expected ~500m, got %f", d)
	}

	// the rounded 0.0045 degree offset lands within a few meters of 500
	approx := domain.GeoPoint{Lat: saoPaulo.Lat + 0.0045, Lon: saoPaulo.Lon}
	d = Distance(saoPaulo, approx)
	if d < 495 || d > 505 {
		t.Errorf("expected ~500m for +0.0045 deg, got %f", d)
	}
}

func TestHaversine_Antipodal(t *testing.T) {
	d := Haversine(0, 0, 0, 180)
	want := math.Pi * EarthRadiusMeters
	if math.Abs(d-want) > 1e-3 {
		t.Errorf("expected %f, got %f", want, d)
	}
}

func TestHaversine_NonNegative(t *testing.T) {
	if d := Haversine(-6.2088, 106.8456, -6.2100, 106.8456); d <= 0 {
		t.Errorf("expected positive distance, got %f", d)
	}
}

func TestHaversine_NaNPropagates(t *testing.T) {
	if d := Haversine(math.NaN(), 0, 0, 0); !math.IsNaN(d) {
		t.Errorf("expected NaN, got %f", d)
	}
}
