// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

/*
Package models defines the data exchanged with the activity backend.

  - Activity: one recorded session from the user's fitness account
  - ActivityStream: the ordered GPS track of one activity
  - POI: a point of interest returned by the backend's POI search

All values are immutable once decoded; views copy slices rather than
mutating them.
*/
package models
