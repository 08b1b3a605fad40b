// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/routevariety/internal/backend"
	"github.com/tomtom215/routevariety/internal/config"
	"github.com/tomtom215/routevariety/internal/logging"
	"github.com/tomtom215/routevariety/internal/middleware"
	"github.com/tomtom215/routevariety/internal/view"
)

// maxBodySize bounds JSON interaction payloads.
const maxBodySize = 4 << 10

// Router owns the handlers and their dependencies.
type Router struct {
	cfg       *config.Config
	backend   *backend.Client
	views     *ViewStore
	pages     pages
	mw        *ChiMiddleware
	home      view.HomeController
	startTime time.Time
}

// NewRouter wires the handlers. It fails only if the embedded templates
// do not parse.
func NewRouter(cfg *config.Config, client *backend.Client, views *ViewStore) (*Router, error) {
	p, err := loadPages()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return &Router{
		cfg:       cfg,
		backend:   client,
		views:     views,
		pages:     p,
		mw:        NewChiMiddleware(ChiMiddlewareConfigFrom(cfg.Security)),
		home:      view.HomeController{LoginURL: client.LoginURL()},
		startTime: time.Now(),
	}, nil
}

// Handler builds the chi route tree.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.mw.CORS())
	r.Use(SecurityHeaders())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", rt.HealthLive)
		r.Get("/ready", rt.HealthReady)
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", staticHandler())

	if !rt.cfg.MapsConfigured() {
		logging.Error().Msg("Google Maps API key is missing: set GOOGLE_MAPS_JAVASCRIPT_KEY or MAPS_API_KEY")
		r.NotFound(middleware.PrometheusMetrics(http.HandlerFunc(rt.ConfigError)).ServeHTTP)
		return r
	}

	r.Group(func(r chi.Router) {
		r.Use(rt.mw.RateLimit())
		r.Use(middleware.Compression)
		r.Use(middleware.PrometheusMetrics)

		r.Get("/", rt.HomePage)
		r.Get("/activities", rt.ActivitiesPage)
		r.Get("/activity/{id}", rt.ActivityPage)
		// A missing id is an invalid id, not an unknown page.
		r.Get("/activity", rt.ActivityPage)
		r.Get("/activity/", rt.ActivityPage)

		r.Route("/views/{view}", func(r chi.Router) {
			r.Use(rt.withViewID)
			r.Get("/", rt.ViewState)
			r.Post("/category", rt.ViewCategory)
			r.Post("/select", rt.ViewSelect)
			r.Post("/close", rt.ViewClose)
			r.Post("/retry", rt.ViewRetry)
			r.Post("/release", rt.ViewRelease)
			r.Get("/export.{format}", rt.ViewExport)
		})
	})

	r.NotFound(rt.NotFoundPage)
	return r
}

// withViewID adds the view ID to the logging context.
func (rt *Router) withViewID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.ContextWithViewID(r.Context(), chi.URLParam(r, "view"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
