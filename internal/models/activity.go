// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package models

import (
	"fmt"
	"time"
)

// Activity is one recorded exercise session as listed by the backend.
// The backend only returns activities that carry GPS data.
type Activity struct {
	// ID is unique per backend account.
	ID int64 `json:"id"`

	Name string `json:"name"`

	// Distance is the total distance in meters.
	Distance float64 `json:"distance"`

	// Type is a free-text category such as "Run" or "Ride".
	Type string `json:"type"`

	// StartDate is an ISO-8601 timestamp.
	StartDate string `json:"start_date"`
}

// DistanceKm returns the activity distance in kilometers.
func (a Activity) DistanceKm() float64 {
	return a.Distance / 1000
}

// StartTime parses StartDate. Both RFC 3339 and a bare date are accepted.
func (a Activity) StartTime() (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, a.StartDate); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", a.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start_date %q: %w", a.StartDate, err)
	}
	return t, nil
}

// LatLng is a WGS84 coordinate encoded on the wire as [latitude, longitude].
type LatLng [2]float64

// Lat returns the latitude.
func (p LatLng) Lat() float64 { return p[0] }

// Lng returns the longitude.
func (p LatLng) Lng() float64 { return p[1] }

// ActivityStream is a GPS track in traversal order.
// Order matters: it defines the drawn path and the distance sum.
type ActivityStream []LatLng
