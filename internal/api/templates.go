// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/tomtom215/routevariety/internal/logging"
	"github.com/tomtom215/routevariety/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page template names.
const (
	pageHome        = "home"
	pageActivities  = "activities"
	pageMap         = "map"
	pageError       = "error"
	pageConfigError = "config_error"
)

// mapsData is the browser-side map widget configuration.
type mapsData struct {
	Key   string
	MapID string
	Zoom  int
}

// pageData is the single model passed to every page template.
type pageData struct {
	Title string

	Home       *view.HomeView
	Activities *view.ActivitiesView
	Map        *view.MapView
	ViewID     string
	Maps       mapsData

	Message   string
	BackHref  string
	BackLabel string
}

// pages holds one template set per page, each layered on the layout.
type pages map[string]*template.Template

func loadPages() (pages, error) {
	p := make(pages)
	for _, name := range []string{pageHome, pageActivities, pageMap, pageError, pageConfigError} {
		t, err := template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		p[name] = t
	}
	return p, nil
}

// render executes into a buffer first so a template failure never leaves
// a half-written page behind.
func (p pages) render(w http.ResponseWriter, r *http.Request, status int, name string, data *pageData) {
	t, ok := p[name]
	if !ok {
		logging.Ctx(r.Context()).Error().Str("template", name).Msg("Unknown page template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("template", name).Msg("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Client went away during page write")
	}
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
