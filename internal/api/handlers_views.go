// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package api

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/routevariety/internal/logging"
	"github.com/tomtom215/routevariety/internal/mapwidget"
	"github.com/tomtom215/routevariety/internal/metrics"
	"github.com/tomtom215/routevariety/internal/validation"
	"github.com/tomtom215/routevariety/internal/view"
)

// viewPayload is the data of every view endpoint: the derived view and
// the draw commands the browser has not replayed yet.
type viewPayload struct {
	View     view.MapView        `json:"view"`
	Commands []mapwidget.Command `json:"commands"`
}

// CategoryRequest is the body of POST /views/{view}/category.
type CategoryRequest struct {
	Category string `json:"category" validate:"required,poi_category"`
}

// SelectRequest is the body of POST /views/{view}/select.
type SelectRequest struct {
	Index *int `json:"index" validate:"required,min=0"`
}

// lookup resolves the view or writes a 404.
func (rt *Router) lookup(w http.ResponseWriter, r *http.Request) (*mapSession, bool) {
	ms, ok := rt.views.get(chi.URLParam(r, "view"))
	if !ok {
		WriteError(w, r, ErrCodeNotFound, "Map view not found or expired")
		return nil, false
	}
	return ms, true
}

func (rt *Router) writeView(w http.ResponseWriter, r *http.Request, ms *mapSession, v view.MapView) {
	WriteSuccess(w, r, viewPayload{View: v, Commands: ms.drain()})
}

// decodeJSON reads a bounded JSON body and validates it. It writes the
// error response itself and reports whether the handler may continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(http.MaxBytesReader(w, r.Body, maxBodySize)); err != nil {
		WriteError(w, r, ErrCodeBadRequest, "Request body too large")
		return false
	}
	if err := json.Unmarshal(buf.Bytes(), dst); err != nil {
		WriteError(w, r, ErrCodeBadRequest, "Invalid JSON body")
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		WriteErrorDetails(w, r, ErrCodeValidationFailed, apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

// writeViewError maps controller errors onto the envelope.
func (rt *Router) writeViewError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, view.ErrUnknownCategory):
		WriteError(w, r, ErrCodeValidationFailed, err.Error())
	case errors.Is(err, view.ErrPOINotVisible):
		WriteError(w, r, ErrCodeBadRequest, err.Error())
	case errors.Is(err, view.ErrNotReady), errors.Is(err, view.ErrNotRetryable):
		WriteError(w, r, ErrCodeConflict, err.Error())
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Map view interaction failed")
		WriteError(w, r, ErrCodeInternalError, "Map view interaction failed")
	}
}

// ViewState returns the current view and any pending draw commands.
func (rt *Router) ViewState(w http.ResponseWriter, r *http.Request) {
	ms, ok := rt.lookup(w, r)
	if !ok {
		return
	}
	rt.writeView(w, r, ms, ms.ctrl.Snapshot())
}

// ViewCategory changes the POI filter.
func (rt *Router) ViewCategory(w http.ResponseWriter, r *http.Request) {
	ms, ok := rt.lookup(w, r)
	if !ok {
		return
	}
	var req CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v, err := ms.ctrl.SelectCategory(req.Category)
	if err != nil {
		rt.writeViewError(w, r, err)
		return
	}
	rt.writeView(w, r, ms, v)
}

// ViewSelect opens the popup for one POI.
func (rt *Router) ViewSelect(w http.ResponseWriter, r *http.Request) {
	ms, ok := rt.lookup(w, r)
	if !ok {
		return
	}
	var req SelectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	v, err := ms.ctrl.SelectPOI(*req.Index)
	if err != nil {
		rt.writeViewError(w, r, err)
		return
	}
	rt.writeView(w, r, ms, v)
}

// ViewClose closes the popup.
func (rt *Router) ViewClose(w http.ResponseWriter, r *http.Request) {
	ms, ok := rt.lookup(w, r)
	if !ok {
		return
	}
	rt.writeView(w, r, ms, ms.ctrl.CloseInfo())
}

// ViewRetry re-runs a failed load and re-renders the page. If the view
// has already been dropped the activity is mounted afresh.
func (rt *Router) ViewRetry(w http.ResponseWriter, r *http.Request) {
	ms, ok := rt.views.get(chi.URLParam(r, "view"))
	if !ok {
		if id, valid := view.ParseActivityID(r.PostFormValue("activity_id")); valid {
			http.Redirect(w, r, view.ActivityPath(id), http.StatusSeeOther)
			return
		}
		rt.renderError(w, r, http.StatusNotFound, "Map view not found or expired")
		return
	}

	// A reload re-posts this form to a page with an empty map.
	ms.remount()
	v, err := ms.ctrl.Retry(r.Context(), rt.backend.Session(r))
	if err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Retry ignored")
	}
	rt.renderMap(w, r, ms, v)
}

// ViewRelease drops the view and its overlays. It always succeeds.
func (rt *Router) ViewRelease(w http.ResponseWriter, r *http.Request) {
	rt.views.release(chi.URLParam(r, "view"))
	w.WriteHeader(http.StatusNoContent)
}

// ViewExport downloads the route and the visible POIs.
func (rt *Router) ViewExport(w http.ResponseWriter, r *http.Request) {
	ms, ok := rt.lookup(w, r)
	if !ok {
		return
	}
	format, err := mapwidget.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		WriteError(w, r, ErrCodeBadRequest, err.Error())
		return
	}

	v := ms.ctrl.Snapshot()
	if v.Phase != view.PhaseReady {
		WriteError(w, r, ErrCodeConflict, view.ErrNotReady.Error())
		return
	}

	exp := mapwidget.RouteExport{
		Name:  "activity-" + strconv.FormatInt(v.ActivityID, 10),
		Route: v.Route,
		POIs:  v.POIs,
	}

	var buf bytes.Buffer
	if err := mapwidget.Export(&buf, format, exp); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("format", string(format)).Msg("Route export failed")
		WriteError(w, r, ErrCodeInternalError, "Route export failed")
		return
	}

	metrics.RouteExports.WithLabelValues(string(format)).Inc()
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+exp.Filename(format)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
