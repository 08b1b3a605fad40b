// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

/*
Package api is the browser-facing HTTP layer.

Pages are rendered on the server with html/template. The map widget runs
in the browser: it replays draw commands produced by the map view's scene
canvas and posts user interactions back to the view endpoints.

# Routes

Pages:

	GET  /                      home / login
	GET  /activities            recent activities
	GET  /activity/{id}         mounts a new map view

Map view endpoints (JSON envelope, except retry which re-renders the page):

	GET  /views/{view}                      current view + pending draw commands
	POST /views/{view}/category             {"category": "restaurant"}
	POST /views/{view}/select               {"index": 3}
	POST /views/{view}/close
	POST /views/{view}/retry                form post
	POST /views/{view}/release              sent by the pagehide beacon
	GET  /views/{view}/export.{format}      gpx, kml or geojson

Operations:

	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /metrics
	GET  /static/*

When no maps key is configured every page renders the configuration error
screen instead; health, metrics and static assets stay available.

# Middleware

Global: request ID, chi RealIP, chi Recoverer, CORS, security headers.
Pages and view endpoints add httprate rate limiting, gzip compression and
Prometheus request metrics.
*/
package api
