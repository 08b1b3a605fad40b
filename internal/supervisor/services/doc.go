// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

/*
Package services adapts server components to suture.Service.

HTTPServerService binds the listener and turns http.Server's blocking Serve into
suture's context-aware Serve with a bounded graceful shutdown.

ViewJanitorService periodically sweeps the map view store so views whose
browser tab vanished without the release beacon are dropped and their
overlays released.

Both implement fmt.Stringer, which suture uses to name the service in
its events.
*/
package services
