// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package api

import (
	"context"
	"net/http"
	"time"
)

// ReadinessFunc reports whether a dependency is ready to serve.
type ReadinessFunc func(ctx context.Context) error

// WithReadiness registers a readiness probe, typically the database ping.
// Returns the handler for chaining.
func (h *Handler) WithReadiness(f ReadinessFunc) *Handler {
	h.readiness = f
	return h
}

// HealthLive handles GET /api/v1/health/live. The process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady handles GET /api/v1/health/ready. Checks dependencies.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	if h.readiness != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := h.readiness(ctx); err != nil {
			respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Dependency check failed", err)
			return
		}
	}

	respondSuccess(w, http.StatusOK, map[string]string{"status": "ready"}, started)
}
