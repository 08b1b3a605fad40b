// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package api

import (
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/tomtom215/routevariety/internal/cache"
	"github.com/tomtom215/routevariety/internal/config"
	"github.com/tomtom215/routevariety/internal/logging"
	"github.com/tomtom215/routevariety/internal/mapwidget"
	"github.com/tomtom215/routevariety/internal/metrics"
	"github.com/tomtom215/routevariety/internal/view"
)

// mapSession is one mounted map view: its controller and the scene canvas
// the current page replays.
type mapSession struct {
	id   string
	ctrl *view.MapController

	mu     sync.Mutex
	canvas *mapwidget.SceneCanvas
	mounts int
}

// remount binds a fresh canvas for a newly rendered page. The controller
// redraws its current state on it; commands still pending for the previous
// page are dropped with the old canvas.
func (ms *mapSession) remount() {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.mounts++
	ms.canvas = mapwidget.NewSceneCanvas(ms.id[:8] + "-" + strconv.Itoa(ms.mounts) + "-")
	ms.ctrl.Attach(ms.canvas)
}

// drain returns the commands the current page has not replayed yet.
func (ms *mapSession) drain() []mapwidget.Command {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.canvas.Drain()
}

// ViewStore holds the live map views, keyed by view ID. Views that the
// browser never releases are dropped by LRU eviction or idle expiry, and
// every removal releases the view's overlays.
type ViewStore struct {
	style mapwidget.Style
	lru   *cache.LRU[*mapSession]
}

// NewViewStore creates a store bounded by cfg.
func NewViewStore(cfg config.ViewsConfig, style mapwidget.Style) *ViewStore {
	s := &ViewStore{
		style: style,
		lru:   cache.NewLRU[*mapSession](cfg.Capacity, cfg.TTL),
	}
	s.lru.OnEvict(func(id string, ms *mapSession, reason cache.EvictReason) {
		ms.ctrl.Release()
		metrics.ViewsLive.Dec()
		metrics.RecordViewEviction(string(reason))
		logging.Debug().Str("view_id", id).Str("reason", string(reason)).Msg("Map view dropped")
	})
	return s
}

// create mounts a new view with a fresh canvas attached.
func (s *ViewStore) create() *mapSession {
	id := uuid.NewString()
	ms := &mapSession{
		id:   id,
		ctrl: view.NewMapController(s.style),
	}
	ms.remount()
	s.lru.Add(id, ms)
	metrics.ViewsLive.Inc()
	return ms
}

func (s *ViewStore) get(id string) (*mapSession, bool) {
	return s.lru.Get(id)
}

// release drops the view; unknown IDs are ignored.
func (s *ViewStore) release(id string) bool {
	return s.lru.Remove(id)
}

// Sweep drops expired views, publishes lookup counts and returns how many
// views were removed.
func (s *ViewStore) Sweep() int {
	n := s.lru.Sweep()
	metrics.RecordViewLookups(s.Lookups())
	return n
}

// Lookups returns how many view lookups found or missed their view.
func (s *ViewStore) Lookups() (hits, misses int64) {
	hits, misses, _ = s.lru.Stats()
	return hits, misses
}

// Len returns the number of held views.
func (s *ViewStore) Len() int {
	return s.lru.Len()
}

// Close releases every view.
func (s *ViewStore) Close() {
	s.lru.Clear()
}
