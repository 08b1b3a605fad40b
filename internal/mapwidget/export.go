// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package mapwidget

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/tkrajina/gpxgo/gpx"
	kml "github.com/twpayne/go-kml/v2"

	"github.com/tomtom215/routevariety/internal/models"
	"github.com/tomtom215/routevariety/internal/routestats"
)

// Format is a route download format.
type Format string

// Supported export formats.
const (
	FormatGPX     Format = "gpx"
	FormatKML     Format = "kml"
	FormatGeoJSON Format = "geojson"
)

// ParseFormat accepts gpx, kml and geojson in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatGPX, FormatKML, FormatGeoJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType is the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatGPX:
		return "application/gpx+xml"
	case FormatKML:
		return "application/vnd.google-earth.kml+xml"
	default:
		return "application/geo+json"
	}
}

// RouteExport is the data written by Export.
type RouteExport struct {
	Name  string
	Route models.ActivityStream
	POIs  []models.IndexedPOI
}

// Filename is a download name for the export, e.g. "activity-42.gpx".
func (e RouteExport) Filename(f Format) string {
	return e.Name + "." + string(f)
}

// Export writes e in format f.
func Export(w io.Writer, f Format, e RouteExport) error {
	switch f {
	case FormatGPX:
		return writeGPX(w, e)
	case FormatKML:
		return writeKML(w, e)
	case FormatGeoJSON:
		return writeGeoJSON(w, e)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

// writeGPX writes the route as one track and each POI as a waypoint.
func writeGPX(w io.Writer, e RouteExport) error {
	seg := gpx.GPXTrackSegment{Points: make([]gpx.GPXPoint, 0, len(e.Route))}
	for _, p := range e.Route {
		seg.Points = append(seg.Points, gpx.GPXPoint{
			Point: gpx.Point{Latitude: p.Lat(), Longitude: p.Lng()},
		})
	}

	doc := &gpx.GPX{
		Creator: "Route Variety",
		Name:    e.Name,
		Tracks: []gpx.GPXTrack{{
			Name:     e.Name,
			Segments: []gpx.GPXTrackSegment{seg},
		}},
	}
	for _, poi := range e.POIs {
		doc.Waypoints = append(doc.Waypoints, gpx.GPXPoint{
			Point:       gpx.Point{Latitude: poi.Coords.Lat(), Longitude: poi.Coords.Lng()},
			Name:        poi.Name,
			Type:        poi.Type,
			Description: describePOI(poi.POI),
		})
	}

	out, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("failed to encode gpx: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// routeColor is DefaultStyle.StrokeColor at 0.8 opacity.
var routeColor = color.RGBA{R: 0xfc, G: 0x4c, B: 0x02, A: 0xcc}

func writeKML(w io.Writer, e RouteExport) error {
	coords := make([]kml.Coordinate, len(e.Route))
	for i, p := range e.Route {
		coords[i] = kml.Coordinate{Lon: p.Lng(), Lat: p.Lat()}
	}

	children := []kml.Element{
		kml.Name(e.Name),
		kml.SharedStyle("route",
			kml.LineStyle(
				kml.Color(routeColor),
				kml.Width(float64(DefaultStyle.StrokeWeight)),
			),
		),
	}
	if len(coords) > 0 {
		children = append(children, kml.Placemark(
			kml.Name(e.Name),
			kml.StyleURL("#route"),
			kml.LineString(kml.Coordinates(coords...)),
		))
	}
	for _, poi := range e.POIs {
		children = append(children, kml.Placemark(
			kml.Name(poi.Name),
			kml.Description(describePOI(poi.POI)),
			kml.Point(kml.Coordinates(kml.Coordinate{Lon: poi.Coords.Lng(), Lat: poi.Coords.Lat()})),
		))
	}

	if err := kml.KML(kml.Document(children...)).WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("failed to encode kml: %w", err)
	}
	return nil
}

func writeGeoJSON(w io.Writer, e RouteExport) error {
	fc := geojson.NewFeatureCollection()

	if len(e.Route) > 0 {
		stats := routestats.Calculate(e.Route)
		route := geojson.NewFeature(routestats.ToLineString(e.Route))
		route.Properties["name"] = e.Name
		route.Properties["distance_km"] = stats.DistanceKm
		route.Properties["points"] = stats.Points
		route.Properties["stroke"] = DefaultStyle.StrokeColor
		fc.Append(route)
	}

	for _, poi := range e.POIs {
		f := geojson.NewFeature(routestats.ToPoint(poi.Coords))
		f.Properties["name"] = poi.Name
		f.Properties["type"] = poi.Type
		f.Properties["index"] = poi.Index
		if poi.Rating != nil {
			f.Properties["rating"] = *poi.Rating
		}
		if poi.PriceLevel != nil {
			f.Properties["price_level"] = *poi.PriceLevel
		}
		fc.Append(f)
	}

	out, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode geojson: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// describePOI is the one-line description used by GPX and KML.
func describePOI(p models.POI) string {
	parts := []string{models.CategoryLabel(p.Type)}
	if p.Rated() {
		parts = append(parts, p.Stars()+" "+formatRating(*p.Rating))
	}
	if price := p.Price(); price != "" {
		parts = append(parts, price)
	}
	return strings.Join(parts, " · ")
}
