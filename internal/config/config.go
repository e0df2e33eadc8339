// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

// Package config centralizes the platform's configuration: the defaults
// scattered across historical call sites (search radius, signal weights,
// classification thresholds) live here as one documented struct, loaded via
// koanf from defaults, an optional YAML file, and environment overrides.
package config

import (
	"fmt"
	"time"

	"github.com/funvill/cultural-archiver-sub013/internal/similarity"
)

// Config is the root configuration for the service.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Logging    LoggingConfig    `koanf:"logging"`
	Similarity SimilarityConfig `koanf:"similarity"`
	MassImport MassImportConfig `koanf:"mass_import"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	Environment     string        `koanf:"environment"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// DatabaseConfig holds DuckDB settings for the artwork store.
type DatabaseConfig struct {
	Path         string `koanf:"path"`
	MaxMemory    string `koanf:"max_memory"`
	Threads      int    `koanf:"threads"`
	SeedMockData bool   `koanf:"seed_mock_data"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SimilarityConfig holds the interactive-flow engine settings.
type SimilarityConfig struct {
	SearchRadiusMeters   float64 `koanf:"search_radius_meters"`
	CandidateLimit       int     `koanf:"candidate_limit"`
	DistanceWeight       float64 `koanf:"distance_weight"`
	TitleWeight          float64 `koanf:"title_weight"`
	TagsWeight           float64 `koanf:"tags_weight"`
	ArtistWeight         float64 `koanf:"artist_weight"`
	DistanceCutoffMeters float64 `koanf:"distance_cutoff_meters"`
	WarningThreshold     float64 `koanf:"warning_threshold"`
	HighThreshold        float64 `koanf:"high_threshold"`
	IncludeMetadata      bool    `koanf:"include_metadata"`
}

// MassImportConfig holds the stricter unattended-import engine settings.
// The import radius is wider than the interactive flow's because import
// sources often carry coordinate drift.
type MassImportConfig struct {
	SearchRadiusMeters float64 `koanf:"search_radius_meters"`
	CandidateLimit     int     `koanf:"candidate_limit"`
	DefaultThreshold   float64 `koanf:"default_threshold"`
	DistanceWeight     float64 `koanf:"distance_weight"`
	TitleWeight        float64 `koanf:"title_weight"`
	TagsWeight         float64 `koanf:"tags_weight"`
	ArtistWeight       float64 `koanf:"artist_weight"`
}

// defaultConfig returns the documented defaults, applied before config file
// and environment overrides.
func defaultConfig() *Config {
	interactive := similarity.DefaultConfig()
	batch := similarity.MassImportConfig()

	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8787,
			Timeout:         30 * time.Second,
			Environment:     "development",
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Database: DatabaseConfig{
			Path:         "/data/cultural-archiver.duckdb",
			MaxMemory:    "1GB",
			Threads:      0, // 0 = use runtime.NumCPU()
			SeedMockData: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Similarity: SimilarityConfig{
			SearchRadiusMeters:   similarity.DefaultSearchRadiusMeters,
			CandidateLimit:       20,
			DistanceWeight:       interactive.DistanceWeight,
			TitleWeight:          interactive.TitleWeight,
			TagsWeight:           interactive.TagsWeight,
			ArtistWeight:         interactive.ArtistWeight,
			DistanceCutoffMeters: interactive.DistanceCutoffMeters,
			WarningThreshold:     interactive.WarningThreshold,
			HighThreshold:        interactive.HighThreshold,
			IncludeMetadata:      false,
		},
		MassImport: MassImportConfig{
			SearchRadiusMeters: batch.DistanceCutoffMeters,
			CandidateLimit:     25,
			DefaultThreshold:   similarity.DefaultHighThreshold,
			DistanceWeight:     batch.DistanceWeight,
			TitleWeight:        batch.TitleWeight,
			TagsWeight:         batch.TagsWeight,
			ArtistWeight:       batch.ArtistWeight,
		},
	}
}

// EngineConfig converts the interactive similarity section into an engine
// configuration.
func (c SimilarityConfig) EngineConfig() similarity.Config {
	return similarity.Config{
		DistanceWeight:       c.DistanceWeight,
		TitleWeight:          c.TitleWeight,
		TagsWeight:           c.TagsWeight,
		ArtistWeight:         c.ArtistWeight,
		DistanceCutoffMeters: c.DistanceCutoffMeters,
		WarningThreshold:     c.WarningThreshold,
		HighThreshold:        c.HighThreshold,
		IncludeMetadata:      c.IncludeMetadata,
	}
}

// EngineConfig converts the mass-import section into an engine
// configuration. The distance cutoff follows the import search radius so a
// candidate at the edge of the import query scores zero on distance.
func (c MassImportConfig) EngineConfig() similarity.Config {
	return similarity.Config{
		DistanceWeight:       c.DistanceWeight,
		TitleWeight:          c.TitleWeight,
		TagsWeight:           c.TagsWeight,
		ArtistWeight:         c.ArtistWeight,
		DistanceCutoffMeters: c.SearchRadiusMeters,
		WarningThreshold:     similarity.DefaultWarningThreshold,
		HighThreshold:        c.DefaultThreshold,
		IncludeMetadata:      true, // import reports always carry the breakdown
	}
}

// Validate rejects configurations that would corrupt scoring or refuse to
// serve. Engine weight/threshold validation is delegated to the similarity
// package so both flows share one rulebook.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1,65535], got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Similarity.SearchRadiusMeters <= 0 {
		return fmt.Errorf("similarity.search_radius_meters must be positive")
	}
	if c.Similarity.CandidateLimit < 1 {
		return fmt.Errorf("similarity.candidate_limit must be at least 1")
	}
	if err := c.Similarity.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("similarity: %w", err)
	}
	if c.MassImport.SearchRadiusMeters <= 0 {
		return fmt.Errorf("mass_import.search_radius_meters must be positive")
	}
	if c.MassImport.CandidateLimit < 1 {
		return fmt.Errorf("mass_import.candidate_limit must be at least 1")
	}
	if c.MassImport.DefaultThreshold < 0 || c.MassImport.DefaultThreshold > 1 {
		return fmt.Errorf("mass_import.default_threshold must be in [0,1], got %v", c.MassImport.DefaultThreshold)
	}
	if err := c.MassImport.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("mass_import: %w", err)
	}
	return nil
}
