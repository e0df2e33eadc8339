// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package api

import (
	"net/http"
	"time"

	"github.com/funvill/cultural-archiver-sub013/internal/logging"
	"github.com/funvill/cultural-archiver-sub013/internal/metrics"
	"github.com/funvill/cultural-archiver-sub013/internal/similarity"
)

// SimilarityCheckRequest is the submission-flow duplicate check payload.
type SimilarityCheckRequest struct {
	Lat          float64           `json:"lat" validate:"latitude"`
	Lon          float64           `json:"lon" validate:"longitude"`
	Title        string            `json:"title,omitempty" validate:"max=500"`
	Artist       string            `json:"artist,omitempty" validate:"max=500"`
	Tags         map[string]string `json:"tags,omitempty"`
	RadiusMeters *float64          `json:"radius_meters,omitempty" validate:"omitempty,gt=0,lte=10000"`
	Limit        int               `json:"limit,omitempty" validate:"min=0,max=100"`
}

// SimilarityCheck handles POST /api/v1/similarity/check. It finds approved
// artworks near the submitted coordinates, scores them against the
// submission, and reports matches grouped by confidence band so the client
// can warn the contributor before they finish their submission.
func (h *Handler) SimilarityCheck(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	ctx := r.Context()

	var req SimilarityCheckRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	radius := h.defaultRadiusMeters
	if req.RadiusMeters != nil {
		radius = *req.RadiusMeters
	}
	limit := req.Limit
	if limit == 0 {
		limit = defaultNearbyLimit
	}

	nearby, err := h.store.FindNearbyArtworks(ctx, req.Lat, req.Lon, radius, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to search nearby artworks", err)
		return
	}

	query := similarity.Query{
		Coordinates: similarity.Coordinate{Lat: req.Lat, Lon: req.Lon},
		Title:       req.Title,
		Artist:      req.Artist,
		Tags:        req.Tags,
	}
	result := h.engine.CheckForDuplicates(ctx, query, candidatesFromNearby(nearby))

	metrics.RecordSimilarityCheck("interactive", result.CandidatesChecked, time.Since(started))
	metrics.RecordDuplicateMatches("interactive", string(similarity.BandHighSimilarity), len(result.HighSimilarityMatches))
	metrics.RecordDuplicateMatches("interactive", string(similarity.BandWarning), len(result.WarningSimilarityMatches))

	logging.Ctx(ctx).Debug().
		Int("candidates", result.CandidatesChecked).
		Int("high", len(result.HighSimilarityMatches)).
		Int("warning", len(result.WarningSimilarityMatches)).
		Msg("Similarity check completed")

	respondSuccess(w, http.StatusOK, result, started)
}
