// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

// Command routetool inspects and converts GPS routes offline, using the
// same distance math and export writers as the web server.
//
//	routetool stats ride.gpx
//	routetool convert ride.gpx --format kml --output ride.kml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
