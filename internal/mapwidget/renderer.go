// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package mapwidget

import (
	"strconv"
	"strings"

	"github.com/tomtom215/routevariety/internal/models"
	"github.com/tomtom215/routevariety/internal/routestats"
)

// Style holds the drawing constants.
type Style struct {
	StrokeColor   string
	StrokeOpacity float64
	StrokeWeight  int
	FitPadding    int
	DefaultZoom   int
	MapID         string
}

// DefaultStyle matches the Route Variety brand colors.
var DefaultStyle = Style{
	StrokeColor:   "#fc4c02",
	StrokeOpacity: 0.8,
	StrokeWeight:  4,
	FitPadding:    20,
	DefaultZoom:   13,
	MapID:         "ROUTE_VARIETY_MAP",
}

// Scene is what a Renderer should show.
type Scene struct {
	Route models.ActivityStream

	// RouteVersion changes on every successful load. The polyline is
	// redrawn and the viewport refitted when it changes.
	RouteVersion uint64

	// POIs is the visible (filtered) set.
	POIs []models.IndexedPOI

	// Selected is the full-list index of the POI whose popup is open.
	Selected *int
}

// Renderer keeps one canvas in sync with a Scene. It is not safe for
// concurrent use; the owning view serializes calls.
type Renderer struct {
	style  Style
	canvas Canvas

	polyline     OverlayID
	routeVersion uint64
	routeDrawn   bool
	fitted       bool

	markers   map[int]OverlayID
	markerKey string

	info    OverlayID
	infoFor int
}

// NewRenderer creates a detached renderer.
func NewRenderer(style Style) *Renderer {
	return &Renderer{style: style, infoFor: -1}
}

// Attach binds a new widget instance, clearing overlays from the previous
// one. The next Render draws everything from scratch on c.
func (r *Renderer) Attach(c Canvas) {
	r.Release()
	r.canvas = c
}

// attached reports whether a canvas is bound.
func (r *Renderer) attached() bool {
	return r.canvas != nil
}

// Render brings the canvas in line with s.
func (r *Renderer) Render(s Scene) {
	if !r.attached() {
		return
	}

	routeChanged := !r.routeDrawn || s.RouteVersion != r.routeVersion
	if routeChanged {
		r.removePolyline()
		if len(s.Route) > 0 {
			r.polyline = r.canvas.AddPolyline(PolylineOptions{
				Path:          s.Route,
				StrokeColor:   r.style.StrokeColor,
				StrokeOpacity: r.style.StrokeOpacity,
				StrokeWeight:  r.style.StrokeWeight,
			})
		}
		r.routeVersion = s.RouteVersion
		r.routeDrawn = true
		r.fitted = false
	}

	if !r.fitted && len(s.Route) > 0 {
		if b, ok := routestats.Bounds(s.Route); ok {
			r.canvas.FitBounds(b, r.style.FitPadding)
			r.fitted = true
		}
	}

	if key := markerKey(s); key != r.markerKey || r.markers == nil {
		r.removeInfo()
		r.removeMarkers()
		r.markers = make(map[int]OverlayID, len(s.POIs))
		for _, p := range s.POIs {
			r.markers[p.Index] = r.canvas.AddMarker(MarkerOptions{
				Position: p.Coords,
				Title:    p.Title(),
				POIIndex: p.Index,
			})
		}
		r.markerKey = key
	}

	r.renderInfo(s)
}

func (r *Renderer) renderInfo(s Scene) {
	want := -1
	if s.Selected != nil {
		want = *s.Selected
	}
	if want == r.infoFor {
		return
	}
	r.removeInfo()
	if want < 0 {
		return
	}
	anchor, ok := r.markers[want]
	if !ok {
		return
	}
	for _, p := range s.POIs {
		if p.Index == want {
			r.info = r.canvas.OpenInfoWindow(InfoWindowOptions{
				Anchor:   anchor,
				Position: p.Coords,
				Content:  NewInfoContent(p.POI),
			})
			r.infoFor = want
			return
		}
	}
}

// Clear removes every overlay but keeps the canvas bound.
func (r *Renderer) Clear() {
	if !r.attached() {
		return
	}
	r.removeInfo()
	r.removeMarkers()
	r.removePolyline()
	r.routeDrawn = false
	r.fitted = false
	r.markerKey = ""
}

// Release removes every overlay and detaches the canvas.
func (r *Renderer) Release() {
	r.Clear()
	r.canvas = nil
}

func (r *Renderer) removePolyline() {
	if r.polyline != "" {
		r.canvas.RemoveOverlay(r.polyline)
		r.polyline = ""
	}
}

func (r *Renderer) removeMarkers() {
	for _, id := range r.markers {
		r.canvas.RemoveOverlay(id)
	}
	r.markers = nil
}

func (r *Renderer) removeInfo() {
	if r.info != "" {
		r.canvas.RemoveOverlay(r.info)
		r.info = ""
	}
	r.infoFor = -1
}

// markerKey identifies the visible set; markers are rebuilt when it changes.
func markerKey(s Scene) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(s.RouteVersion, 10))
	for _, p := range s.POIs {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(p.Index))
	}
	return b.String()
}
