// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package mapwidget

import "strconv"

func formatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
