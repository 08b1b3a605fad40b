// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

/*
Package supervisor runs the server's long-lived services under a
thejerf/suture/v4 supervisor tree.

	routevariety (root)
	├── api-layer          HTTP server
	└── maintenance-layer  view janitor

A crashing service is restarted with suture's failure backoff without
disturbing the other layer. Supervisor events are logged through the
zerolog-backed slog handler via thejerf/sutureslog.
*/
package supervisor
