// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package mapwidget

import (
	"strconv"
	"sync"

	"github.com/paulmach/orb"

	"github.com/tomtom215/routevariety/internal/metrics"
	"github.com/tomtom215/routevariety/internal/models"
)

// Draw command operations understood by the browser scene player.
const (
	OpAddPolyline = "add_polyline"
	OpAddMarker   = "add_marker"
	OpOpenInfo    = "open_info"
	OpRemove      = "remove"
	OpFitBounds   = "fit_bounds"
)

// LatLngBounds is a viewport in the widget's south/west/north/east form.
type LatLngBounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// BoundsFromOrb converts an orb bound, whose points are [lng, lat].
func BoundsFromOrb(b orb.Bound) LatLngBounds {
	return LatLngBounds{South: b.Min.Lat(), West: b.Min.Lon(), North: b.Max.Lat(), East: b.Max.Lon()}
}

// Command is one recorded canvas operation.
type Command struct {
	Op       string             `json:"op"`
	ID       OverlayID          `json:"id,omitempty"`
	Polyline *PolylineOptions   `json:"polyline,omitempty"`
	Marker   *MarkerOptions     `json:"marker,omitempty"`
	Info     *InfoWindowOptions `json:"info,omitempty"`
	Bounds   *LatLngBounds      `json:"bounds,omitempty"`
	Padding  int                `json:"padding,omitempty"`
}

// SceneCanvas is a Canvas that records draw commands for replay in the
// browser. It is safe for concurrent use.
type SceneCanvas struct {
	mu      sync.Mutex
	prefix  string
	seq     int
	pending []Command
	live    map[OverlayID]struct{}
}

// NewSceneCanvas creates an empty scene. Overlay IDs start with prefix so
// IDs from different canvases never collide in one page.
func NewSceneCanvas(prefix string) *SceneCanvas {
	return &SceneCanvas{prefix: prefix, live: make(map[OverlayID]struct{})}
}

func (s *SceneCanvas) add(cmd Command) OverlayID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := OverlayID(s.prefix + strconv.Itoa(s.seq))
	cmd.ID = id
	s.live[id] = struct{}{}
	s.pending = append(s.pending, cmd)
	metrics.MapOverlaysLive.Inc()
	return id
}

// AddPolyline implements Canvas.
func (s *SceneCanvas) AddPolyline(opts PolylineOptions) OverlayID {
	opts.Path = append([]models.LatLng(nil), opts.Path...)
	return s.add(Command{Op: OpAddPolyline, Polyline: &opts})
}

// AddMarker implements Canvas.
func (s *SceneCanvas) AddMarker(opts MarkerOptions) OverlayID {
	return s.add(Command{Op: OpAddMarker, Marker: &opts})
}

// OpenInfoWindow implements Canvas.
func (s *SceneCanvas) OpenInfoWindow(opts InfoWindowOptions) OverlayID {
	return s.add(Command{Op: OpOpenInfo, Info: &opts})
}

// RemoveOverlay implements Canvas. Unknown IDs are ignored.
func (s *SceneCanvas) RemoveOverlay(id OverlayID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.live[id]; !ok {
		return
	}
	delete(s.live, id)
	s.pending = append(s.pending, Command{Op: OpRemove, ID: id})
	metrics.MapOverlaysLive.Dec()
}

// FitBounds implements Canvas.
func (s *SceneCanvas) FitBounds(bound orb.Bound, padding int) {
	b := BoundsFromOrb(bound)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, Command{Op: OpFitBounds, Bounds: &b, Padding: padding})
}

// Drain returns and clears the commands recorded since the last Drain.
func (s *SceneCanvas) Drain() []Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	cmds := s.pending
	s.pending = nil
	if cmds == nil {
		cmds = []Command{}
	}
	return cmds
}

// Live returns the number of overlays currently drawn.
func (s *SceneCanvas) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}
