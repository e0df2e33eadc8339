// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package config

import (
	"testing"

	"github.com/funvill/cultural-archiver-sub013/internal/similarity"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() = %v, want nil", err)
	}
}

func TestDefaultValues(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8787 {
		t.Errorf("Server.Port = %d, want 8787", cfg.Server.Port)
	}
	if cfg.Similarity.SearchRadiusMeters != similarity.DefaultSearchRadiusMeters {
		t.Errorf("Similarity.SearchRadiusMeters = %v, want %v",
			cfg.Similarity.SearchRadiusMeters, similarity.DefaultSearchRadiusMeters)
	}
	if cfg.Similarity.WarningThreshold != similarity.DefaultWarningThreshold {
		t.Errorf("Similarity.WarningThreshold = %v, want %v",
			cfg.Similarity.WarningThreshold, similarity.DefaultWarningThreshold)
	}
	if cfg.MassImport.SearchRadiusMeters != 1000 {
		t.Errorf("MassImport.SearchRadiusMeters = %v, want 1000", cfg.MassImport.SearchRadiusMeters)
	}
	if cfg.MassImport.DefaultThreshold != similarity.DefaultHighThreshold {
		t.Errorf("MassImport.DefaultThreshold = %v, want %v",
			cfg.MassImport.DefaultThreshold, similarity.DefaultHighThreshold)
	}
	// The interactive flow has no artist signal; artist data is unreliable
	// on crowd submissions.
	if cfg.Similarity.ArtistWeight != 0 {
		t.Errorf("Similarity.ArtistWeight = %v, want 0", cfg.Similarity.ArtistWeight)
	}
	if cfg.MassImport.ArtistWeight == 0 {
		t.Error("MassImport.ArtistWeight = 0, want positive")
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "empty database path", mutate: func(c *Config) { c.Database.Path = "" }},
		{name: "zero search radius", mutate: func(c *Config) { c.Similarity.SearchRadiusMeters = 0 }},
		{name: "zero candidate limit", mutate: func(c *Config) { c.Similarity.CandidateLimit = 0 }},
		{name: "bad engine weights", mutate: func(c *Config) { c.Similarity.DistanceWeight = 2 }},
		{name: "import threshold out of range", mutate: func(c *Config) { c.MassImport.DefaultThreshold = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestMassImportEngineConfig(t *testing.T) {
	cfg := defaultConfig()
	engine := cfg.MassImport.EngineConfig()

	// The import cutoff tracks the import search radius so a candidate at
	// the edge of the query scores zero on distance.
	if engine.DistanceCutoffMeters != cfg.MassImport.SearchRadiusMeters {
		t.Errorf("DistanceCutoffMeters = %v, want %v",
			engine.DistanceCutoffMeters, cfg.MassImport.SearchRadiusMeters)
	}
	if engine.HighThreshold != cfg.MassImport.DefaultThreshold {
		t.Errorf("HighThreshold = %v, want %v", engine.HighThreshold, cfg.MassImport.DefaultThreshold)
	}
	if !engine.IncludeMetadata {
		t.Error("IncludeMetadata = false, want true for import reports")
	}
	if err := engine.Validate(); err != nil {
		t.Errorf("engine config invalid: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{env: "HTTP_PORT", want: "server.port"},
		{env: "DUCKDB_PATH", want: "database.path"},
		{env: "LOG_LEVEL", want: "logging.level"},
		{env: "SIMILARITY_SEARCH_RADIUS", want: "similarity.search_radius_meters"},
		{env: "SIMILARITY_HIGH_THRESHOLD", want: "similarity.high_threshold"},
		{env: "MASS_IMPORT_THRESHOLD", want: "mass_import.default_threshold"},
		{env: "PATH", want: ""},
		{env: "UNRELATED_VAR", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}
