// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

/*
Package view holds the view-state controllers behind the three pages.

  - HomeController: login page or redirect to the activity list
  - ActivitiesController: the user's recent activities
  - MapController: one route explorer view (route, POIs, filter, popup)

Controllers talk to the backend only through backend.API and never touch
HTTP. MapController is long-lived: it is created when a map page is
mounted, receives interactions until it is released, and drives a
mapwidget.Renderer so the browser map always reflects its state.

Page states and the messages shown for them:

	Invalid  "Invalid activity ID" (terminal, back link only)
	Loading  "Loading route and discovering points of interest..."
	Error    "This activity has no GPS data to display." or
	         "Failed to load activity data. Please check your connection and try again."
	Ready    route, stats, category filter, markers
*/
package view
