// Route Variety - Activity Route Explorer with Nearby Points of Interest
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/routevariety

package services

import (
	"context"
	"time"

	"github.com/tomtom215/routevariety/internal/logging"
)

// DefaultSweepInterval applies when NewViewJanitorService gets a
// non-positive interval.
const DefaultSweepInterval = time.Minute

// Sweeper drops expired entries and reports how many went.
// Satisfied by *api.ViewStore.
type Sweeper interface {
	Sweep() int
}

// ViewJanitorService sweeps a view store on a fixed interval.
type ViewJanitorService struct {
	store    Sweeper
	interval time.Duration
	name     string
}

// NewViewJanitorService creates a janitor for store.
func NewViewJanitorService(store Sweeper, interval time.Duration) *ViewJanitorService {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &ViewJanitorService{
		store:    store,
		interval: interval,
		name:     "view-janitor",
	}
}

// Serve implements suture.Service.
func (j *ViewJanitorService) Serve(ctx context.Context) error {
	log := logging.WithComponent("view-janitor")
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := j.store.Sweep(); n > 0 {
				log.Debug().Int("expired", n).Msg("Swept idle map views")
			}
		}
	}
}

func (j *ViewJanitorService) String() string {
	return j.name
}
