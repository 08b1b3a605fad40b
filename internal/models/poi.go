// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package models

import "strings"

// POI is a named, categorized place near a route.
//
// A POI has no identifier. It is addressed by its index in the list the
// backend returned, which is why views refer to POIs by index.
type POI struct {
	Name string `json:"name"`

	// Type is one of the Category values; unknown types are kept verbatim.
	Type string `json:"type"`

	Coords LatLng `json:"coords"`

	// Rating is 0-5 when the place has been rated.
	Rating *float64 `json:"rating,omitempty"`

	// PriceLevel is a small positive integer when known.
	PriceLevel *int `json:"price_level,omitempty"`
}

// Title is the marker hover text.
func (p POI) Title() string {
	return p.Name + " (" + p.Type + ")"
}

// Rated reports whether the POI carries a rating. A zero rating counts as
// unrated, like an absent one.
func (p POI) Rated() bool {
	return p.Rating != nil && *p.Rating != 0
}

// Stars renders the rating as filled and empty stars out of five.
// It returns "" when the POI is unrated.
func (p POI) Stars() string {
	if !p.Rated() {
		return ""
	}
	filled := int(*p.Rating)
	if filled < 0 {
		filled = 0
	}
	if filled > 5 {
		filled = 5
	}
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled)
}

// Price renders the price level as repeated dollar signs.
func (p POI) Price() string {
	if p.PriceLevel == nil || *p.PriceLevel <= 0 {
		return ""
	}
	return strings.Repeat("$", *p.PriceLevel)
}

// CategoryAll is the filter value that matches every POI.
const CategoryAll = "All"

// POI categories offered by the filter, in display order.
const (
	CategoryRestaurant        = "restaurant"
	CategoryTouristAttraction = "tourist_attraction"
	CategoryLodging           = "lodging"
	CategoryGasStation        = "gas_station"
	CategoryStore             = "store"
	CategoryHospital          = "hospital"
	CategoryBank              = "bank"
	CategoryOther             = "other"
)

// Categories lists the filter values, CategoryAll first.
var Categories = []string{
	CategoryAll,
	CategoryRestaurant,
	CategoryTouristAttraction,
	CategoryLodging,
	CategoryGasStation,
	CategoryStore,
	CategoryHospital,
	CategoryBank,
	CategoryOther,
}

// IsCategory reports whether c is one of Categories.
func IsCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

// CategoryLabel is the human-readable form of a category or POI type.
// Only the first underscore is replaced, so "gas_station" reads "gas station".
func CategoryLabel(c string) string {
	if c == CategoryAll {
		return "All Types"
	}
	return strings.Replace(c, "_", " ", 1)
}

// IndexedPOI is a POI together with its index in the full POI list.
type IndexedPOI struct {
	Index int `json:"index"`
	POI
}
