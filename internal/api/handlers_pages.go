// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/routevariety/internal/logging"
	"github.com/tomtom215/routevariety/internal/view"
)

// HomePage shows the login link, or redirects a logged-in user to their
// activities.
func (rt *Router) HomePage(w http.ResponseWriter, r *http.Request) {
	v := rt.home.Mount(r.Context(), rt.backend.Session(r))
	if v.Redirect != "" {
		http.Redirect(w, r, v.Redirect, http.StatusSeeOther)
		return
	}
	rt.pages.render(w, r, http.StatusOK, pageHome, &pageData{Home: &v})
}

// ActivitiesPage lists recent activities.
func (rt *Router) ActivitiesPage(w http.ResponseWriter, r *http.Request) {
	v := view.ActivitiesController{}.Mount(r.Context(), rt.backend.Session(r))
	if v.Redirect != "" {
		http.Redirect(w, r, v.Redirect, http.StatusSeeOther)
		return
	}
	status := http.StatusOK
	if v.Error != "" {
		status = http.StatusBadGateway
	}
	rt.pages.render(w, r, status, pageActivities, &pageData{Title: "Activities", Activities: &v})
}

// ActivityPage mounts a new map view for the activity and loads it.
func (rt *Router) ActivityPage(w http.ResponseWriter, r *http.Request) {
	ms := rt.views.create()
	ctx := logging.ContextWithViewID(r.Context(), ms.id)

	v := ms.ctrl.Navigate(ctx, rt.backend.Session(r), chi.URLParam(r, "id"))
	if v.Phase == view.PhaseInvalid {
		rt.views.release(ms.id)
		rt.renderError(w, r, http.StatusNotFound, v.Error)
		return
	}
	rt.renderMap(w, r, ms, v)
}

// NotFoundPage is the HTML 404.
func (rt *Router) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	rt.renderError(w, r, http.StatusNotFound, "Page not found")
}

// ConfigError replaces every page when no maps key is configured.
func (rt *Router) ConfigError(w http.ResponseWriter, r *http.Request) {
	rt.pages.render(w, r, http.StatusInternalServerError, pageConfigError, &pageData{Title: "Configuration Error"})
}

func (rt *Router) renderMap(w http.ResponseWriter, r *http.Request, ms *mapSession, v view.MapView) {
	rt.pages.render(w, r, http.StatusOK, pageMap, &pageData{
		Title:  "Activity Route",
		Map:    &v,
		ViewID: ms.id,
		Maps: mapsData{
			Key:   rt.cfg.Maps.Key(),
			MapID: rt.cfg.Maps.MapID,
			Zoom:  rt.cfg.Maps.DefaultZoom,
		},
	})
}

func (rt *Router) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	rt.pages.render(w, r, status, pageError, &pageData{
		Title:     "Error",
		Message:   message,
		BackHref:  view.ActivitiesPath,
		BackLabel: "Back to Activities",
	})
}
