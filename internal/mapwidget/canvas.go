// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

/*
Package mapwidget adapts map view state to an interactive map widget.

The widget itself (Google Maps JavaScript API) runs in the browser. This
package owns everything that decides what is drawn:

  - Canvas: the primitive operations a widget instance supports
  - SceneCanvas: a Canvas that records draw commands for the browser
  - Renderer: keeps a canvas in sync with a route, visible POIs and the
    selected POI, drawing only what changed
  - Export: writes the current route and POIs as GPX, KML or GeoJSON
*/
package mapwidget

import (
	"github.com/paulmach/orb"

	"github.com/tomtom215/routevariety/internal/models"
)

// OverlayID identifies one overlay on one canvas.
type OverlayID string

// PolylineOptions describes a drawn route.
type PolylineOptions struct {
	Path          []models.LatLng `json:"path"`
	StrokeColor   string          `json:"stroke_color"`
	StrokeOpacity float64         `json:"stroke_opacity"`
	StrokeWeight  int             `json:"stroke_weight"`
}

// MarkerOptions describes a POI marker. POIIndex is the index in the full
// POI list and is sent back by the browser when the marker is clicked.
type MarkerOptions struct {
	Position models.LatLng `json:"position"`
	Title    string        `json:"title"`
	POIIndex int           `json:"poi_index"`
}

// InfoContent is the text of a POI popup.
type InfoContent struct {
	Name      string `json:"name"`
	TypeLabel string `json:"type_label"`

	// Stars is empty for unrated POIs.
	Stars  string `json:"stars,omitempty"`
	Rating string `json:"rating,omitempty"`

	// Price is "$" repeated by price level, or empty.
	Price string `json:"price,omitempty"`
}

// NewInfoContent renders the popup text for poi.
func NewInfoContent(poi models.POI) InfoContent {
	c := InfoContent{
		Name:      poi.Name,
		TypeLabel: models.CategoryLabel(poi.Type),
		Stars:     poi.Stars(),
		Price:     poi.Price(),
	}
	if poi.Rated() {
		c.Rating = formatRating(*poi.Rating)
	}
	return c
}

// InfoWindowOptions anchors a popup to a marker.
type InfoWindowOptions struct {
	Anchor   OverlayID     `json:"anchor"`
	Position models.LatLng `json:"position"`
	Content  InfoContent   `json:"content"`
}

// Canvas is one live map widget instance.
type Canvas interface {
	AddPolyline(opts PolylineOptions) OverlayID
	AddMarker(opts MarkerOptions) OverlayID
	OpenInfoWindow(opts InfoWindowOptions) OverlayID
	RemoveOverlay(id OverlayID)
	FitBounds(bound orb.Bound, padding int)
}
