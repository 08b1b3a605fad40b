// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

// Package main is the entry point for the Route Variety web server.
//
// Route Variety shows a user's recent fitness activities, draws a chosen
// activity's GPS route on a Google Map and marks points of interest found
// along it. Login, activity data and POI search live in a separate backend;
// this server renders the pages, forwards the browser's backend session
// cookie and keeps one map view per open tab.
//
// # Startup
//
//  1. Configuration: defaults, .env, optional config.yaml, environment (koanf v2)
//  2. Logging: zerolog, JSON or console
//  3. Backend client with circuit breaker
//  4. View store (LRU with idle expiry)
//  5. Supervisor tree: HTTP server (api layer) and view janitor (maintenance layer)
//
// # Configuration
//
//	BACKEND_URL=http://localhost:5000
//	GOOGLE_MAPS_JAVASCRIPT_KEY=...     (or MAPS_API_KEY)
//	HTTP_PORT=8080
//	LOG_LEVEL=info LOG_FORMAT=json
//
// Without a maps key the server still starts and every page shows the
// configuration error screen; health and metrics endpoints keep working.
//
// # Signal Handling
//
// SIGINT and SIGTERM stop accepting connections, drain in-flight requests
// within SERVER_SHUTDOWN_TIMEOUT and release every live map view.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/routevariety/internal/api"
	"github.com/tomtom215/routevariety/internal/backend"
	"github.com/tomtom215/routevariety/internal/config"
	"github.com/tomtom215/routevariety/internal/logging"
	"github.com/tomtom215/routevariety/internal/mapwidget"
	"github.com/tomtom215/routevariety/internal/supervisor"
	"github.com/tomtom215/routevariety/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("backend_url", cfg.Backend.URL).
		Str("environment", cfg.Server.Environment).
		Bool("maps_configured", cfg.MapsConfigured()).
		Msg("Starting Route Variety")

	client := backend.NewClient(cfg.Backend)

	style := mapwidget.DefaultStyle
	style.MapID = cfg.Maps.MapID
	style.DefaultZoom = cfg.Maps.DefaultZoom

	views := api.NewViewStore(cfg.Views, style)
	defer views.Close()

	router, err := api.NewRouter(cfg, client, views)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build router")
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(
		logging.NewSlogLogger(),
		supervisor.TreeConfigFrom(cfg.Supervisor, cfg.Server.ShutdownTimeout),
	)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout))
	tree.AddMaintenanceService(services.NewViewJanitorService(views, cfg.Views.SweepInterval))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Route Variety stopped")
}
