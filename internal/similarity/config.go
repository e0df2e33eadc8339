// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package similarity

import (
	"fmt"
)

// DefaultSearchRadiusMeters is the platform's default search radius for the
// interactive submission flow. The distance-score cutoff defaults to it so
// a candidate at the edge of the search radius scores 0 on distance.
const DefaultSearchRadiusMeters = 500.0

// Default classification thresholds. Scores at or above HighThreshold are
// treated as high-confidence duplicates; between the two as a warning.
const (
	DefaultWarningThreshold = 0.4
	DefaultHighThreshold    = 0.7
)

// Config controls the signal set, weights and thresholds of an engine
// instance. The zero value is not usable directly; pass it through New,
// which applies defaults and validates.
type Config struct {
	// Signal weights. A weight of zero disables the signal entirely.
	// Weights of the signals included for a given comparison are
	// renormalized to sum to 1.0 before averaging.
	DistanceWeight float64 `json:"distance_weight"`
	TitleWeight    float64 `json:"title_weight"`
	TagsWeight     float64 `json:"tags_weight"`
	ArtistWeight   float64 `json:"artist_weight"`

	// DistanceCutoffMeters is the distance at which the distance signal
	// reaches zero. The mapping is linear, not Gaussian, so every score
	// stays explainable.
	DistanceCutoffMeters float64 `json:"distance_cutoff_meters"`

	// Classification thresholds, both in [0,1], warning <= high.
	WarningThreshold float64 `json:"warning_threshold"`
	HighThreshold    float64 `json:"high_threshold"`

	// IncludeMetadata attaches raw per-signal metadata (exact distance,
	// token counts) to results. Disabled in production responses so
	// internal scoring detail is not leaked to end users.
	IncludeMetadata bool `json:"include_metadata"`
}

// DefaultConfig returns the interactive-flow configuration: distance 0.5,
// title 0.3, tags 0.2, no artist signal.
func DefaultConfig() Config {
	return Config{
		DistanceWeight:       0.5,
		TitleWeight:          0.3,
		TagsWeight:           0.2,
		ArtistWeight:         0,
		DistanceCutoffMeters: DefaultSearchRadiusMeters,
		WarningThreshold:     DefaultWarningThreshold,
		HighThreshold:        DefaultHighThreshold,
	}
}

// MassImportConfig returns the stricter configuration used by the
// unattended import pipeline: it adds the artist signal at a high relative
// weight, lowers distance's share, and widens the distance cutoff to absorb
// coordinate drift in import sources.
func MassImportConfig() Config {
	return Config{
		DistanceWeight:       0.35,
		TitleWeight:          0.25,
		TagsWeight:           0.15,
		ArtistWeight:         0.25,
		DistanceCutoffMeters: 1000,
		WarningThreshold:     DefaultWarningThreshold,
		HighThreshold:        DefaultHighThreshold,
	}
}

// applyDefaults fills zero values with the interactive defaults.
// An all-zero weight set gets the full default weights; individual zero
// weights are respected since they disable a signal on purpose.
func (c Config) applyDefaults() Config {
	if c.DistanceWeight == 0 && c.TitleWeight == 0 && c.TagsWeight == 0 && c.ArtistWeight == 0 {
		d := DefaultConfig()
		c.DistanceWeight = d.DistanceWeight
		c.TitleWeight = d.TitleWeight
		c.TagsWeight = d.TagsWeight
		c.ArtistWeight = d.ArtistWeight
	}
	if c.DistanceCutoffMeters == 0 {
		c.DistanceCutoffMeters = DefaultSearchRadiusMeters
	}
	if c.WarningThreshold == 0 {
		c.WarningThreshold = DefaultWarningThreshold
	}
	if c.HighThreshold == 0 {
		c.HighThreshold = DefaultHighThreshold
	}
	return c
}

// Validate rejects configurations that would silently corrupt every
// subsequent score. Called at service construction time.
func (c Config) Validate() error {
	for _, w := range []struct {
		name  string
		value float64
	}{
		{"distance_weight", c.DistanceWeight},
		{"title_weight", c.TitleWeight},
		{"tags_weight", c.TagsWeight},
		{"artist_weight", c.ArtistWeight},
	} {
		if w.value < 0 || w.value > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v", w.name, w.value)
		}
	}
	if c.DistanceWeight+c.TitleWeight+c.TagsWeight+c.ArtistWeight <= 0 {
		return fmt.Errorf("at least one signal weight must be positive")
	}
	if c.DistanceCutoffMeters <= 0 {
		return fmt.Errorf("distance_cutoff_meters must be positive, got %v", c.DistanceCutoffMeters)
	}
	if c.WarningThreshold < 0 || c.WarningThreshold > 1 {
		return fmt.Errorf("warning_threshold must be in [0,1], got %v", c.WarningThreshold)
	}
	if c.HighThreshold < 0 || c.HighThreshold > 1 {
		return fmt.Errorf("high_threshold must be in [0,1], got %v", c.HighThreshold)
	}
	if c.WarningThreshold > c.HighThreshold {
		return fmt.Errorf("warning_threshold %v exceeds high_threshold %v", c.WarningThreshold, c.HighThreshold)
	}
	return nil
}
