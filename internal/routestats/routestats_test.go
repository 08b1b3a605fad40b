// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package routestats

import (
	"math"
	"testing"

	"github.com/tomtom215/routevariety/internal/models"
)

func TestHaversineKm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     models.LatLng
		expected float64
		delta    float64
	}{
		{"same point", models.LatLng{51.5, -0.1}, models.LatLng{51.5, -0.1}, 0, 1e-12},
		{"one degree latitude", models.LatLng{0, 0}, models.LatLng{1, 0}, 111.19, 0.01},
		{"london to paris", models.LatLng{51.5074, -0.1278}, models.LatLng{48.8566, 2.3522}, 343.5, 1.0},
		{"short hop", models.LatLng{51.5, -0.1}, models.LatLng{51.51, -0.11}, 1.31, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := HaversineKm(tt.a, tt.b)
			if math.Abs(got-tt.expected) > tt.delta {
				t.Errorf("HaversineKm() = %v, want %v ±%v", got, tt.expected, tt.delta)
			}
		})
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	t.Parallel()

	a := models.LatLng{40.7128, -74.0060}
	b := models.LatLng{34.0522, -118.2437}
	if HaversineKm(a, b) != HaversineKm(b, a) {
		t.Error("expected symmetric distance")
	}
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	if got := Calculate(nil); got.DistanceKm != 0 || got.Points != 0 {
		t.Errorf("Calculate(nil) = %+v", got)
	}

	single := models.ActivityStream{{51.5, -0.1}}
	if got := Calculate(single); got.DistanceKm != 0 || got.Points != 1 {
		t.Errorf("Calculate(single) = %+v", got)
	}

	route := models.ActivityStream{{51.5, -0.1}, {51.51, -0.11}, {51.52, -0.12}}
	got := Calculate(route)
	want := HaversineKm(route[0], route[1]) + HaversineKm(route[1], route[2])
	if got.DistanceKm != want {
		t.Errorf("DistanceKm = %v, want %v", got.DistanceKm, want)
	}
	if got.Points != 3 {
		t.Errorf("Points = %d, want 3", got.Points)
	}
	if got.ElevationGain != 0 {
		t.Errorf("ElevationGain = %v, want 0", got.ElevationGain)
	}

	if again := Calculate(route); again != got {
		t.Error("Calculate is not deterministic")
	}
}

func TestBounds(t *testing.T) {
	t.Parallel()

	if _, ok := Bounds(nil); ok {
		t.Error("expected ok=false for empty route")
	}

	route := models.ActivityStream{{51.5, -0.1}, {51.52, -0.12}, {51.49, -0.08}}
	b, ok := Bounds(route)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if b.Min.Lat() != 51.49 || b.Max.Lat() != 51.52 {
		t.Errorf("latitude bounds = [%v, %v]", b.Min.Lat(), b.Max.Lat())
	}
	if b.Min.Lon() != -0.12 || b.Max.Lon() != -0.08 {
		t.Errorf("longitude bounds = [%v, %v]", b.Min.Lon(), b.Max.Lon())
	}
}

func TestCenter(t *testing.T) {
	t.Parallel()

	if got := Center(nil, DefaultCenter); got != DefaultCenter {
		t.Errorf("Center(nil) = %v, want %v", got, DefaultCenter)
	}
	route := models.ActivityStream{{10, 20}, {11, 21}}
	if got := Center(route, DefaultCenter); got != route[0] {
		t.Errorf("Center() = %v, want first point", got)
	}
}

func TestPointConversion(t *testing.T) {
	t.Parallel()

	p := models.LatLng{51.5, -0.1}
	op := ToPoint(p)
	if op.Lon() != -0.1 || op.Lat() != 51.5 {
		t.Errorf("ToPoint() = %v", op)
	}
	if back := FromPoint(op); back != p {
		t.Errorf("FromPoint() = %v, want %v", back, p)
	}
}
