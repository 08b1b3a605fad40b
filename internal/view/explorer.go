// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package view

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/tomtom215/routevariety/internal/backend"
	"github.com/tomtom215/routevariety/internal/logging"
	"github.com/tomtom215/routevariety/internal/mapwidget"
	"github.com/tomtom215/routevariety/internal/metrics"
	"github.com/tomtom215/routevariety/internal/models"
)

// Map view messages.
const (
	MsgInvalidActivity = "Invalid activity ID"
	MsgNoGPS           = "This activity has no GPS data to display."
	MsgLoadFailed      = "Failed to load activity data. Please check your connection and try again."
	MsgLoading         = "Loading route and discovering points of interest..."
	MsgRetrying        = "Retrying..."
	MsgNoResults       = "No points of interest found for the selected category."
)

var (
	// ErrUnknownCategory rejects a category outside models.Categories.
	ErrUnknownCategory = errors.New("unknown POI category")

	// ErrPOINotVisible rejects selecting a POI hidden by the current filter.
	ErrPOINotVisible = errors.New("POI is not in the visible set")

	// ErrNotReady rejects interactions before a route has loaded.
	ErrNotReady = errors.New("map view is not ready")

	// ErrNotRetryable rejects Retry outside the Error phase.
	ErrNotRetryable = errors.New("map view has nothing to retry")
)

// Phase is the lifecycle phase of a map view.
type Phase string

// Map view phases.
const (
	PhaseInvalid Phase = "invalid"
	PhaseLoading Phase = "loading"
	PhaseError   Phase = "error"
	PhaseReady   Phase = "ready"
)

// MapState is the mutable state of one map view.
//
// Route and POIs are only ever replaced together by one successful load.
// Selected, when set, always indexes a POI inside the current filter.
type MapState struct {
	ActivityID int64
	Phase      Phase
	Route      models.ActivityStream
	POIs       []models.POI
	Category   string
	Selected   *int
	Loading    bool
	Retrying   bool
	Error      string

	// Generation identifies the current load sequence. Results carrying
	// an older generation are discarded.
	Generation uint64
}

// MapController owns one map view. All methods are safe for concurrent
// use; the lock is never held across backend calls.
type MapController struct {
	mu           sync.Mutex
	state        MapState
	renderer     *mapwidget.Renderer
	routeVersion uint64
	released     bool
}

// NewMapController creates a view with no activity and no canvas.
func NewMapController(style mapwidget.Style) *MapController {
	return &MapController{
		state:    MapState{Phase: PhaseInvalid, Category: models.CategoryAll},
		renderer: mapwidget.NewRenderer(style),
	}
}

// ParseActivityID accepts a positive decimal integer and nothing else.
func ParseActivityID(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Navigate points the view at rawID and runs the load sequence. Any
// earlier state, filter, selection and overlays are dropped.
func (c *MapController) Navigate(ctx context.Context, api backend.API, rawID string) MapView {
	c.mu.Lock()
	c.state = MapState{
		Category:   models.CategoryAll,
		Generation: c.state.Generation + 1,
	}
	c.released = false
	c.renderer.Clear()

	id, ok := ParseActivityID(rawID)
	if !ok {
		c.state.Phase = PhaseInvalid
		c.state.Error = MsgInvalidActivity
		v := Derive(c.state)
		c.mu.Unlock()
		logging.Ctx(ctx).Debug().Str("raw_id", rawID).Msg("Rejected activity ID")
		return v
	}

	c.state.ActivityID = id
	c.state.Phase = PhaseLoading
	c.state.Loading = true
	gen := c.state.Generation
	c.mu.Unlock()

	c.load(ctx, api, gen, id)
	return c.Snapshot()
}

// Retry re-runs the load sequence after a failure.
func (c *MapController) Retry(ctx context.Context, api backend.API) (MapView, error) {
	c.mu.Lock()
	if c.state.Phase != PhaseError {
		v := Derive(c.state)
		c.mu.Unlock()
		return v, ErrNotRetryable
	}
	c.state.Generation++
	c.state.Phase = PhaseLoading
	c.state.Loading = true
	c.state.Retrying = true
	c.state.Error = ""
	gen, id := c.state.Generation, c.state.ActivityID
	c.mu.Unlock()

	c.load(ctx, api, gen, id)
	return c.Snapshot(), nil
}

type loadResult struct {
	route models.ActivityStream
	pois  []models.POI
	noGPS bool
	err   error
}

// load fetches the stream, then POIs for a non-empty stream, and applies
// the outcome if gen is still current.
func (c *MapController) load(ctx context.Context, api backend.API, gen uint64, id int64) {
	log := logging.CtxWith(ctx).Int64("activity_id", id).Uint64("generation", gen).Logger()
	start := time.Now()

	var res loadResult
	res.route, res.err = api.GetActivityStream(ctx, id)
	switch {
	case res.err != nil:
	case len(res.route) == 0:
		res.noGPS = true
	default:
		res.pois, res.err = api.FindPOIs(ctx, res.route)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.state.Generation || c.released {
		metrics.ViewStaleResults.Inc()
		log.Debug().Uint64("current", c.state.Generation).Msg("Discarding stale load result")
		return
	}

	c.state.Loading = false
	c.state.Retrying = false

	switch {
	case res.err != nil:
		log.Warn().Err(res.err).Msg("Failed to load activity")
		c.state.Phase = PhaseError
		c.state.Error = MsgLoadFailed
		metrics.RecordViewLoad("failed", time.Since(start))
	case res.noGPS:
		log.Info().Msg("Activity has no GPS data")
		c.state.Phase = PhaseError
		c.state.Error = MsgNoGPS
		metrics.RecordViewLoad("no_gps", time.Since(start))
	default:
		c.state.Route = res.route
		c.state.POIs = res.pois
		c.state.Phase = PhaseReady
		c.routeVersion++
		log.Info().Int("points", len(res.route)).Int("pois", len(res.pois)).Msg("Activity loaded")
		metrics.RecordViewLoad("ready", time.Since(start))
	}
	c.redraw()
}

// SelectCategory changes the POI filter and clears the selection.
func (c *MapController) SelectCategory(category string) (MapView, error) {
	if !models.IsCategory(category) {
		return c.Snapshot(), ErrUnknownCategory
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != PhaseReady {
		return Derive(c.state), ErrNotReady
	}
	c.state.Category = category
	c.state.Selected = nil
	c.redraw()
	return Derive(c.state), nil
}

// SelectPOI opens the popup for the POI at index in the full POI list.
// The POI must be visible under the current filter.
func (c *MapController) SelectPOI(index int) (MapView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != PhaseReady {
		return Derive(c.state), ErrNotReady
	}
	if index < 0 || index >= len(c.state.POIs) {
		return Derive(c.state), ErrPOINotVisible
	}
	if c.state.Category != models.CategoryAll && c.state.POIs[index].Type != c.state.Category {
		return Derive(c.state), ErrPOINotVisible
	}
	c.state.Selected = &index
	c.redraw()
	return Derive(c.state), nil
}

// CloseInfo closes the popup.
func (c *MapController) CloseInfo() MapView {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Selected = nil
	c.redraw()
	return Derive(c.state)
}

// Snapshot returns the current state with derived values.
func (c *MapController) Snapshot() MapView {
	return Derive(c.rawState())
}

// rawState returns a copy of the undecorated state.
func (c *MapController) rawState() MapState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Attach binds a new map widget instance and draws the current state on it.
func (c *MapController) Attach(canvas mapwidget.Canvas) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.released = false
	c.renderer.Attach(canvas)
	c.redraw()
}

// Release removes every overlay, detaches the widget and discards any
// load still in flight.
func (c *MapController) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.released = true
	c.renderer.Release()
}

// redraw must be called with mu held. Only a Ready view draws anything.
func (c *MapController) redraw() {
	if c.state.Phase != PhaseReady {
		c.renderer.Clear()
		return
	}
	c.renderer.Render(mapwidget.Scene{
		Route:        c.state.Route,
		RouteVersion: c.routeVersion,
		POIs:         FilterPOIs(c.state.POIs, c.state.Category),
		Selected:     c.state.Selected,
	})
}
