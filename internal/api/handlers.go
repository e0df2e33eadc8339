// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package api

import (
	"context"

	"github.com/funvill/cultural-archiver-sub013/internal/massimport"
	"github.com/funvill/cultural-archiver-sub013/internal/models"
	"github.com/funvill/cultural-archiver-sub013/internal/similarity"
)

// Query parameter bounds shared across endpoints.
const (
	defaultNearbyLimit = 25
	maxNearbyLimit     = 100
	maxRadiusMeters    = 10000
)

// ArtworkStore is the storage surface the handlers need.
type ArtworkStore interface {
	FindNearbyArtworks(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]models.NearbyArtwork, error)
	GetArtwork(ctx context.Context, id string) (*models.Artwork, error)
}

// DuplicateChecker is the mass-import resolver surface.
type DuplicateChecker interface {
	CheckForDuplicates(ctx context.Context, req massimport.Request) (*massimport.Result, error)
	MergeTags(ctx context.Context, artworkID string, incoming map[string]string) (map[string]string, bool, error)
}

// Handler holds the request handlers and their collaborators.
type Handler struct {
	store    ArtworkStore
	engine   *similarity.Service
	resolver DuplicateChecker

	defaultRadiusMeters float64
	readiness           ReadinessFunc
}

// NewHandler creates a Handler. The default radius applies when a request
// omits its search radius.
func NewHandler(store ArtworkStore, engine *similarity.Service, resolver DuplicateChecker, defaultRadiusMeters float64) *Handler {
	if defaultRadiusMeters <= 0 {
		defaultRadiusMeters = similarity.DefaultSearchRadiusMeters
	}
	return &Handler{
		store:               store,
		engine:              engine,
		resolver:            resolver,
		defaultRadiusMeters: defaultRadiusMeters,
	}
}

// candidatesFromNearby adapts store rows to engine candidates, carrying the
// store-computed distance so it is not recomputed.
func candidatesFromNearby(nearby []models.NearbyArtwork) []similarity.Candidate {
	candidates := make([]similarity.Candidate, len(nearby))
	for i, n := range nearby {
		meters := n.DistanceMeters
		candidates[i] = similarity.Candidate{
			ID:             n.ID,
			Coordinates:    similarity.Coordinate{Lat: n.Lat, Lon: n.Lon},
			Title:          n.Title,
			Artist:         n.Artist,
			TypeName:       n.TypeName,
			Tags:           n.Tags,
			DistanceMeters: &meters,
		}
	}
	return candidates
}
