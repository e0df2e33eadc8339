// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/funvill/cultural-archiver-sub013/internal/database"
	"github.com/funvill/cultural-archiver-sub013/internal/models"
	"github.com/funvill/cultural-archiver-sub013/internal/similarity"
)

// nearbyQuery carries the validated query parameters for the nearby search.
type nearbyQuery struct {
	Lat    float64 `validate:"latitude"`
	Lon    float64 `validate:"longitude"`
	Radius float64 `validate:"gt=0,lte=10000"`
	Limit  int     `validate:"min=1,max=100"`
}

// ArtworksNearby handles GET /api/v1/artworks/nearby. Results come back in
// ascending distance order. When the caller also supplies title or artist
// query parameters, each result is annotated with a similarity score and the
// list is reordered so the strongest matches surface first.
func (h *Handler) ArtworksNearby(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	ctx := r.Context()

	lat, latOK := getFloatParam(r, "lat")
	lon, lonOK := getFloatParam(r, "lon")
	if !latOK || !lonOK {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "lat and lon query parameters are required", nil)
		return
	}

	q := nearbyQuery{
		Lat:    lat,
		Lon:    lon,
		Radius: h.defaultRadiusMeters,
		Limit:  getIntParam(r, "limit", defaultNearbyLimit),
	}
	if radius, ok := getFloatParam(r, "radius"); ok {
		q.Radius = radius
	}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	nearby, err := h.store.FindNearbyArtworks(ctx, q.Lat, q.Lon, q.Radius, q.Limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to search nearby artworks", err)
		return
	}

	title := r.URL.Query().Get("title")
	artist := r.URL.Query().Get("artist")
	if title != "" || artist != "" {
		query := similarity.Query{
			Coordinates: similarity.Coordinate{Lat: q.Lat, Lon: q.Lon},
			Title:       title,
			Artist:      artist,
		}
		ranked := h.engine.EnhanceNearbyResults(ctx, query, candidatesFromNearby(nearby))
		nearby = reorderNearby(nearby, ranked)
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"artworks": nearby,
		"count":    len(nearby),
	}, started)
}

// GetArtwork handles GET /api/v1/artworks/{id}.
func (h *Handler) GetArtwork(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "artwork id is required", nil)
		return
	}

	artwork, err := h.store.GetArtwork(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrArtworkNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Artwork not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to load artwork", err)
		return
	}

	respondSuccess(w, http.StatusOK, artwork, started)
}

// reorderNearby applies the engine's similarity ranking to the store rows,
// attaching score and explanation to each.
func reorderNearby(nearby []models.NearbyArtwork, ranked []similarity.RankedCandidate) []models.NearbyArtwork {
	byID := make(map[string]models.NearbyArtwork, len(nearby))
	for _, n := range nearby {
		byID[n.ID] = n
	}

	out := make([]models.NearbyArtwork, 0, len(ranked))
	for _, rc := range ranked {
		n, ok := byID[rc.ID]
		if !ok {
			continue
		}
		score := rc.SimilarityScore
		n.SimilarityScore = &score
		n.Explanation = rc.Explanation
		out = append(out, n)
	}
	return out
}
