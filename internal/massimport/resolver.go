// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

// Package massimport implements the stricter duplicate resolver used when
// importing records programmatically with no human in the loop to dismiss
// false positives. It wraps the similarity engine with an artist signal, a
// wider search radius, a caller-overridable duplicate threshold, and a
// per-field score breakdown for the import report.
package massimport

import (
	"context"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/funvill/cultural-archiver-sub013/internal/logging"
	"github.com/funvill/cultural-archiver-sub013/internal/metrics"
	"github.com/funvill/cultural-archiver-sub013/internal/models"
	"github.com/funvill/cultural-archiver-sub013/internal/similarity"
)

// Store is the storage collaborator: a radius query over approved records
// plus the tag union merge into an existing record.
type Store interface {
	FindNearbyArtworks(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]models.NearbyArtwork, error)
	MergeArtworkTags(ctx context.Context, id string, incoming map[string]string) (map[string]string, bool, error)
}

// Config holds resolver settings. The search radius is larger than the
// interactive flow's default because import sources carry coordinate drift.
type Config struct {
	SearchRadiusMeters float64
	CandidateLimit     int
	DefaultThreshold   float64
	Engine             similarity.Config

	// Circuit breaker around the store's radius query: a failing store
	// should skip items quickly instead of being hammered by the batch.
	BreakerFailureThreshold uint32
	BreakerOpenTimeout      time.Duration
}

// DefaultConfig returns the documented mass-import defaults.
func DefaultConfig() Config {
	return Config{
		SearchRadiusMeters:      1000,
		CandidateLimit:          25,
		DefaultThreshold:        similarity.DefaultHighThreshold,
		Engine:                  similarity.MassImportConfig(),
		BreakerFailureThreshold: 5,
		BreakerOpenTimeout:      30 * time.Second,
	}
}

// Request is one import item to check. Tags use the key->value map shape
// produced by the import mappers.
type Request struct {
	Title              string            `json:"title" validate:"required,max=500"`
	Description        string            `json:"description,omitempty"`
	Lat                float64           `json:"lat" validate:"latitude"`
	Lon                float64           `json:"lon" validate:"longitude"`
	Artist             string            `json:"artist,omitempty" validate:"max=500"`
	Tags               map[string]string `json:"tags,omitempty"`
	DuplicateThreshold *float64          `json:"duplicate_threshold,omitempty" validate:"omitempty,min=0,max=1"`
}

// ScoreBreakdown exposes the raw (unweighted) per-signal scores of the best
// candidate, for transparency in the import report. Signals without data on
// both sides report zero.
type ScoreBreakdown struct {
	Title    float64 `json:"title"`
	Artist   float64 `json:"artist"`
	Location float64 `json:"location"`
	Tags     float64 `json:"tags"`
}

// DuplicateInfo describes the confirmed duplicate for one import item.
// Created once per item and consumed immediately by the import route; never
// persisted as its own entity.
type DuplicateInfo struct {
	ExistingArtworkID string         `json:"existing_artwork_id"`
	Title             string         `json:"title"`
	ConfidenceScore   float64        `json:"confidence_score"`
	ScoreBreakdown    ScoreBreakdown `json:"score_breakdown"`
}

// Result is the resolver's decision for one import item.
type Result struct {
	IsDuplicate       bool           `json:"is_duplicate"`
	DuplicateInfo     *DuplicateInfo `json:"duplicate_info,omitempty"`
	CandidatesChecked int            `json:"candidates_checked"`
}

// Resolver checks import items against the existing catalogue.
type Resolver struct {
	store   Store
	engine  *similarity.Service
	cfg     Config
	breaker *gobreaker.CircuitBreaker[[]models.NearbyArtwork]
}

// NewResolver creates a resolver. Engine misconfiguration is rejected here,
// before any batch runs.
func NewResolver(store Store, cfg Config) (*Resolver, error) {
	defaults := DefaultConfig()
	if cfg.SearchRadiusMeters <= 0 {
		cfg.SearchRadiusMeters = defaults.SearchRadiusMeters
	}
	if cfg.CandidateLimit < 1 {
		cfg.CandidateLimit = defaults.CandidateLimit
	}
	if cfg.DefaultThreshold == 0 {
		cfg.DefaultThreshold = defaults.DefaultThreshold
	}
	if cfg.DefaultThreshold < 0 || cfg.DefaultThreshold > 1 {
		return nil, fmt.Errorf("default threshold must be in [0,1], got %v", cfg.DefaultThreshold)
	}
	if cfg.BreakerFailureThreshold == 0 {
		cfg.BreakerFailureThreshold = defaults.BreakerFailureThreshold
	}
	if cfg.BreakerOpenTimeout <= 0 {
		cfg.BreakerOpenTimeout = defaults.BreakerOpenTimeout
	}

	engineCfg := cfg.Engine
	if engineCfg == (similarity.Config{}) {
		engineCfg = similarity.MassImportConfig()
	}
	engine, err := similarity.New(engineCfg)
	if err != nil {
		return nil, fmt.Errorf("mass-import engine: %w", err)
	}

	breaker := gobreaker.NewCircuitBreaker[[]models.NearbyArtwork](gobreaker.Settings{
		Name:    "massimport-store",
		Timeout: cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Mass-import store breaker state change")
		},
	})

	return &Resolver{
		store:   store,
		engine:  engine,
		cfg:     cfg,
		breaker: breaker,
	}, nil
}

// CheckForDuplicates decides whether one import item describes an artwork
// already in the catalogue. A store failure is fatal for this single item
// only; the import route reports the item as an error and continues the
// batch.
func (r *Resolver) CheckForDuplicates(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	threshold := r.cfg.DefaultThreshold
	if req.DuplicateThreshold != nil {
		t := *req.DuplicateThreshold
		if t < 0 || t > 1 {
			return nil, fmt.Errorf("duplicate threshold must be in [0,1], got %v", t)
		}
		threshold = t
	}

	candidates, err := r.breaker.Execute(func() ([]models.NearbyArtwork, error) {
		return r.store.FindNearbyArtworks(ctx, req.Lat, req.Lon, r.cfg.SearchRadiusMeters, r.cfg.CandidateLimit)
	})
	if err != nil {
		metrics.RecordMassImportDecision("error")
		return nil, fmt.Errorf("find nearby artworks: %w", err)
	}

	result := &Result{CandidatesChecked: len(candidates)}
	if len(candidates) == 0 {
		metrics.RecordMassImportDecision("unique")
		metrics.RecordSimilarityCheck("mass_import", 0, time.Since(start))
		return result, nil
	}

	query := similarity.Query{
		Coordinates: similarity.Coordinate{Lat: req.Lat, Lon: req.Lon},
		Title:       req.Title,
		Artist:      req.Artist,
		Tags:        req.Tags,
	}
	scored := r.engine.CalculateSimilarityScores(ctx, query, candidatesFromNearby(candidates))

	best := scored[0]
	bestIdx := 0
	for i, s := range scored[1:] {
		if s.OverallScore > best.OverallScore {
			best = s
			bestIdx = i + 1
		}
	}

	metrics.RecordSimilarityCheck("mass_import", len(candidates), time.Since(start))

	if best.OverallScore < threshold {
		metrics.RecordMassImportDecision("unique")
		return result, nil
	}

	result.IsDuplicate = true
	result.DuplicateInfo = &DuplicateInfo{
		ExistingArtworkID: best.ArtworkID,
		Title:             candidates[bestIdx].Title,
		ConfidenceScore:   best.OverallScore,
		ScoreBreakdown:    breakdownFromSignals(best.Signals),
	}
	metrics.RecordMassImportDecision("duplicate")
	logging.Ctx(ctx).Info().
		Str("existing_artwork_id", best.ArtworkID).
		Float64("score", best.OverallScore).
		Float64("threshold", threshold).
		Msg("Mass-import item matched existing artwork")

	return result, nil
}

// MergeTags performs the idempotent tag union merge into the matched
// record. Existing keys are never overwritten.
func (r *Resolver) MergeTags(ctx context.Context, artworkID string, incoming map[string]string) (map[string]string, bool, error) {
	merged, changed, err := r.store.MergeArtworkTags(ctx, artworkID, incoming)
	if err != nil {
		return nil, false, fmt.Errorf("merge tags into %s: %w", artworkID, err)
	}
	if changed {
		metrics.RecordTagMerge()
	}
	return merged, changed, nil
}

// candidatesFromNearby adapts store rows to engine candidates, reusing the
// store-computed distance.
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

// breakdownFromSignals pulls the raw per-signal scores out of a result.
func breakdownFromSignals(signals []similarity.Signal) ScoreBreakdown {
	var b ScoreBreakdown
	for _, sig := range signals {
		switch sig.Type {
		case similarity.SignalTitle:
			b.Title = sig.RawScore
		case similarity.SignalArtist:
			b.Artist = sig.RawScore
		case similarity.SignalDistance:
			b.Location = sig.RawScore
		case similarity.SignalTags:
			b.Tags = sig.RawScore
		}
	}
	return b
}
