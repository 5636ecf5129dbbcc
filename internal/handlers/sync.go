// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"catalogd/internal/cache"
)

// Runner is the catalog sync pipeline the trigger endpoint starts.
// Satisfied by *ingest.Ingestor.
type Runner interface {
	RunFullSync(ctx context.Context)
}

// Sync exposes the fire-and-forget catalog sync trigger.
type Sync struct {
	runner   Runner
	listings *cache.ListingCache

	// baseCtx scopes background syncs to the process lifetime, so a
	// shutdown cancels a running sync instead of orphaning it.
	baseCtx context.Context
}

// NewSync creates the sync trigger handler. listings may be nil.
func NewSync(baseCtx context.Context, runner Runner, listings *cache.ListingCache) *Sync {
	return &Sync{runner: runner, listings: listings, baseCtx: baseCtx}
}

// Trigger handles POST /parse. It acknowledges immediately and runs the
// sync in a detached goroutine; the caller never waits on ingestion.
func (s *Sync) Trigger(w http.ResponseWriter, r *http.Request) {
	go func() {
		s.runner.RunFullSync(s.baseCtx)
		if s.listings != nil {
			s.listings.InvalidateAll(s.baseCtx)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"message": "background parsing started"})
}
