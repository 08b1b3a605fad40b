// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package view

import (
	"strconv"

	"github.com/tomtom215/routevariety/internal/mapwidget"
	"github.com/tomtom215/routevariety/internal/models"
	"github.com/tomtom215/routevariety/internal/routestats"
)

// CategoryOption is one entry of the category select.
type CategoryOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
	Selected bool   `json:"selected"`
}

// MapView is a MapState plus every value derived from it.
type MapView struct {
	ActivityID int64  `json:"activity_id"`
	Phase      Phase  `json:"phase"`
	Loading    bool   `json:"loading"`
	Retrying   bool   `json:"retrying"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`

	// CanRetry is true only in the Error phase.
	CanRetry bool `json:"can_retry"`

	Route models.ActivityStream `json:"route"`

	// POIs is the filtered set, each carrying its full-list index.
	POIs      []models.IndexedPOI `json:"pois"`
	TotalPOIs int                 `json:"total_pois"`

	Category   string           `json:"category"`
	Categories []CategoryOption `json:"categories"`

	Selected *int                   `json:"selected,omitempty"`
	Info     *mapwidget.InfoContent `json:"info,omitempty"`

	Center        models.LatLng    `json:"center"`
	Stats         routestats.Stats `json:"stats"`
	DistanceLabel string           `json:"distance_label"`

	// NoResults is set when the filter empties a non-empty POI set.
	NoResults bool `json:"no_results"`
}

// Derive computes the view for state. It is a pure function.
func Derive(s MapState) MapView {
	filtered := FilterPOIs(s.POIs, s.Category)
	stats := routestats.Calculate(s.Route)

	v := MapView{
		ActivityID:    s.ActivityID,
		Phase:         s.Phase,
		Loading:       s.Loading,
		Retrying:      s.Retrying,
		Error:         s.Error,
		CanRetry:      s.Phase == PhaseError,
		Route:         s.Route,
		POIs:          filtered,
		TotalPOIs:     len(s.POIs),
		Category:      s.Category,
		Categories:    CategoryCounts(s.POIs, s.Category),
		Center:        routestats.Center(s.Route, routestats.DefaultCenter),
		Stats:         stats,
		DistanceLabel: strconv.FormatFloat(stats.DistanceKm, 'f', 1, 64) + " km",
		NoResults:     s.Phase == PhaseReady && len(s.POIs) > 0 && len(filtered) == 0,
	}

	switch {
	case s.Retrying:
		v.Message = MsgRetrying
	case s.Loading:
		v.Message = MsgLoading
	}

	if s.Selected != nil {
		for _, p := range filtered {
			if p.Index == *s.Selected {
				idx := p.Index
				info := mapwidget.NewInfoContent(p.POI)
				v.Selected = &idx
				v.Info = &info
				break
			}
		}
	}
	return v
}

// FilterPOIs returns the POIs matching category, in original order, each
// tagged with its index in pois. CategoryAll matches everything.
func FilterPOIs(pois []models.POI, category string) []models.IndexedPOI {
	out := make([]models.IndexedPOI, 0, len(pois))
	for i, p := range pois {
		if category == models.CategoryAll || p.Type == category {
			out = append(out, models.IndexedPOI{Index: i, POI: p})
		}
	}
	return out
}

// CategoryCounts builds the category select with per-category counts.
func CategoryCounts(pois []models.POI, selected string) []CategoryOption {
	counts := make(map[string]int, len(models.Categories))
	for _, p := range pois {
		counts[p.Type]++
	}

	opts := make([]CategoryOption, len(models.Categories))
	for i, c := range models.Categories {
		n := counts[c]
		if c == models.CategoryAll {
			n = len(pois)
		}
		opts[i] = CategoryOption{
			Value:    c,
			Label:    models.CategoryLabel(c),
			Count:    n,
			Selected: c == selected,
		}
	}
	return opts
}
