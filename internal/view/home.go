// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package view

import (
	"context"

	"github.com/tomtom215/routevariety/internal/backend"
)

// Paths the controllers redirect to.
const (
	HomePath       = "/"
	ActivitiesPath = "/activities"
)

// HomeView is the login page.
type HomeView struct {
	// Redirect is set when the user is already logged in.
	Redirect string

	// LoginURL starts the backend OAuth flow.
	LoginURL string
}

// HomeController decides between the login page and the activity list.
type HomeController struct {
	LoginURL string
}

// Mount checks the session and returns the page to show.
func (c HomeController) Mount(ctx context.Context, api backend.API) HomeView {
	if api.CheckAuthStatus(ctx) {
		return HomeView{Redirect: ActivitiesPath}
	}
	return HomeView{LoginURL: c.LoginURL}
}
