// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

/*
Package config loads Route Variety configuration with Koanf v2.

Environment variables:

	HTTP_HOST, HTTP_PORT                 listener (default 0.0.0.0:8080)
	ENVIRONMENT                          development | production
	BACKEND_URL                          activity backend (default http://localhost:5000)
	BACKEND_TIMEOUT                      per-request timeout (default 15s)
	BACKEND_SESSION_COOKIE               cookie forwarded to the backend (default: all)
	BACKEND_LOGIN_PATH                   OAuth start path (default /auth/strava)
	GOOGLE_MAPS_JAVASCRIPT_KEY           browser maps key
	MAPS_API_KEY                         fallback maps key
	VIEW_CACHE_CAPACITY, VIEW_TTL        live map view store bounds
	CORS_ORIGINS                         comma-separated allowed origins
	RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER

A .env file in the working directory is read first; values already present
in the environment are not overridden. A YAML file found via CONFIG_PATH or
config.yaml uses the koanf tag names as keys:

	backend:
	  url: https://api.example.com
	  breaker:
	    failure_ratio: 0.5
	maps:
	  api_key: AIza...
*/
package config
