// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK as long as the process can serve HTTP.
func (rt *Router) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(rt.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Not ready while the maps key is missing or the backend breaker is open.
func (rt *Router) HealthReady(w http.ResponseWriter, r *http.Request) {
	breaker := rt.backend.BreakerState()
	mapsConfigured := rt.cfg.MapsConfigured()
	ready := mapsConfigured && breaker != "open"

	hits, misses := rt.views.Lookups()
	data := map[string]interface{}{
		"maps_configured": mapsConfigured,
		"backend_breaker": breaker,
		"live_views":      rt.views.Len(),
		"view_lookups":    map[string]int64{"hits": hits, "misses": misses},
		"ready_to_serve":  ready,
		"uptime":          time.Since(rt.startTime).Seconds(),
	}

	if !ready {
		WriteErrorDetails(w, r, ErrCodeServiceUnavailable, "Service not ready", data)
		return
	}
	WriteSuccess(w, r, data)
}
