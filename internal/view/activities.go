// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package view

import (
	"context"
	"strconv"

	"github.com/tomtom215/routevariety/internal/backend"
	"github.com/tomtom215/routevariety/internal/logging"
	"github.com/tomtom215/routevariety/internal/models"
)

// Activity list messages.
const (
	MsgActivitiesFailed = "Failed to load activities. Please try logging in again."
	MsgNoActivities     = "No recent activities with GPS data found."
)

// ActivityItem is one row of the activity list.
type ActivityItem struct {
	ID         int64
	Name       string
	Type       string
	DistanceKm string
	StartDate  string
	Href       string
}

// ActivitiesView is the activity list page.
type ActivitiesView struct {
	// Redirect is set when the session is not authenticated.
	Redirect string

	Error      string
	Activities []ActivityItem
}

// Empty reports a successful fetch that returned no activities.
func (v ActivitiesView) Empty() bool {
	return v.Redirect == "" && v.Error == "" && len(v.Activities) == 0
}

// ActivitiesController loads the activity list.
type ActivitiesController struct{}

// Mount checks the session, then fetches the list. The list is never
// fetched for an unauthenticated session.
func (ActivitiesController) Mount(ctx context.Context, api backend.API) ActivitiesView {
	if !api.CheckAuthStatus(ctx) {
		return ActivitiesView{Redirect: HomePath}
	}

	activities, err := api.GetActivities(ctx)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("Failed to load activities")
		return ActivitiesView{Error: MsgActivitiesFailed}
	}

	items := make([]ActivityItem, len(activities))
	for i, a := range activities {
		items[i] = newActivityItem(a)
	}
	return ActivitiesView{Activities: items}
}

func newActivityItem(a models.Activity) ActivityItem {
	item := ActivityItem{
		ID:         a.ID,
		Name:       a.Name,
		Type:       a.Type,
		DistanceKm: strconv.FormatFloat(a.DistanceKm(), 'f', 2, 64),
		StartDate:  a.StartDate,
		Href:       ActivityPath(a.ID),
	}
	if t, err := a.StartTime(); err == nil {
		item.StartDate = t.Format("2 Jan 2006")
	}
	return item
}

// ActivityPath is the map page for an activity.
func ActivityPath(id int64) string {
	return "/activity/" + strconv.FormatInt(id, 10)
}
