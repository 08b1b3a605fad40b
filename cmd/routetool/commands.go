// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/tomtom215/routevariety/internal/mapwidget"
	"github.com/tomtom215/routevariety/internal/models"
	"github.com/tomtom215/routevariety/internal/routestats"
)

var errNoPoints = errors.New("gpx file has no track or route points")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "routetool",
		Short:         "Inspect and convert GPS routes",
		Long:          `Compute route statistics and convert GPX files to GPX, KML or GeoJSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newStatsCmd(), newConvertCmd())
	return root
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file.gpx>",
		Short: "Print distance, point count and bounds of a route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route, _, err := readGPX(args[0])
			if err != nil {
				return err
			}
			return printStats(cmd.OutOrStdout(), route)
		},
	}
}

func newConvertCmd() *cobra.Command {
	var (
		format string
		output string
		name   string
	)
	cmd := &cobra.Command{
		Use:   "convert <file.gpx>",
		Short: "Convert a GPX route to gpx, kml or geojson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := mapwidget.ParseFormat(format)
			if err != nil {
				return err
			}
			route, pois, err := readGPX(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			export := mapwidget.RouteExport{Name: name, Route: route, POIs: pois}
			if output == "" || output == "-" {
				return mapwidget.Export(cmd.OutOrStdout(), f, export)
			}

			out, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := mapwidget.Export(out, f, export); err != nil {
				_ = out.Close()
				return err
			}
			return out.Close()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(mapwidget.FormatGeoJSON), "output format: gpx, kml or geojson")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "route name (default input file name)")
	return cmd
}

// readGPX flattens all tracks of a GPX file into one route, falling back to
// its routes when there are no tracks. Waypoints become POIs.
func readGPX(path string) (models.ActivityStream, []models.IndexedPOI, error) {
	doc, err := gpx.ParseFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var route models.ActivityStream
	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				route = append(route, models.LatLng{p.Latitude, p.Longitude})
			}
		}
	}
	if len(route) == 0 {
		for _, rte := range doc.Routes {
			for _, p := range rte.Points {
				route = append(route, models.LatLng{p.Latitude, p.Longitude})
			}
		}
	}
	if len(route) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", path, errNoPoints)
	}

	pois := make([]models.IndexedPOI, 0, len(doc.Waypoints))
	for i, w := range doc.Waypoints {
		pois = append(pois, models.IndexedPOI{
			Index: i,
			POI: models.POI{
				Name:   w.Name,
				Type:   w.Type,
				Coords: models.LatLng{w.Latitude, w.Longitude},
			},
		})
	}
	return route, pois, nil
}

func printStats(w io.Writer, route models.ActivityStream) error {
	stats := routestats.Calculate(route)
	bound, _ := routestats.Bounds(route)
	start := routestats.Center(route, models.LatLng{})
	sw, ne := routestats.FromPoint(bound.Min), routestats.FromPoint(bound.Max)

	_, err := fmt.Fprintf(w,
		"points:   %d\ndistance: %.2f km\nstart:    %.5f, %.5f\nbounds:   %.5f,%.5f %.5f,%.5f\n",
		stats.Points, stats.DistanceKm,
		start.Lat(), start.Lng(),
		sw.Lat(), sw.Lng(), ne.Lat(), ne.Lng(),
	)
	return err
}
