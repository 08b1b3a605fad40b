// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

// Package routestats computes summary statistics for GPS routes.
package routestats

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/tomtom215/routevariety/internal/models"
)

// EarthRadiusKm is the mean Earth radius used by HaversineKm.
const EarthRadiusKm = 6371.0

// DefaultCenter is used when a route has no points (central London).
var DefaultCenter = models.LatLng{51.5074, -0.1278}

// Stats summarizes a route.
type Stats struct {
	DistanceKm float64 `json:"distance_km"`

	// ElevationGain is always 0; streams carry no altitude.
	ElevationGain float64 `json:"elevation_gain"`

	Points int `json:"points"`
}

// HaversineKm returns the great-circle distance between two points.
func HaversineKm(a, b models.LatLng) float64 {
	lat1 := a.Lat() * math.Pi / 180
	lat2 := b.Lat() * math.Pi / 180
	dLat := (b.Lat() - a.Lat()) * math.Pi / 180
	dLng := (b.Lng() - a.Lng()) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Calculate sums consecutive segment distances. Routes with fewer than two
// points have zero distance.
func Calculate(route models.ActivityStream) Stats {
	stats := Stats{Points: len(route)}
	for i := 1; i < len(route); i++ {
		stats.DistanceKm += HaversineKm(route[i-1], route[i])
	}
	return stats
}

// Bounds returns the bounding box of the route. ok is false for an empty route.
func Bounds(route models.ActivityStream) (bound orb.Bound, ok bool) {
	if len(route) == 0 {
		return orb.Bound{}, false
	}
	return ToLineString(route).Bound(), true
}

// Center returns the first route point, or fallback when the route is empty.
func Center(route models.ActivityStream, fallback models.LatLng) models.LatLng {
	if len(route) == 0 {
		return fallback
	}
	return route[0]
}

// ToPoint converts a LatLng to an orb point, which is ordered [lng, lat].
func ToPoint(p models.LatLng) orb.Point {
	return orb.Point{p.Lng(), p.Lat()}
}

// FromPoint is the inverse of ToPoint.
func FromPoint(p orb.Point) models.LatLng {
	return models.LatLng{p.Lat(), p.Lon()}
}

// ToLineString converts a route to an orb line string.
func ToLineString(route models.ActivityStream) orb.LineString {
	ls := make(orb.LineString, len(route))
	for i, p := range route {
		ls[i] = ToPoint(p)
	}
	return ls
}
