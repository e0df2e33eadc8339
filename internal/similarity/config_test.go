// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package similarity

import "testing"

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:   "mass import defaults are valid",
			mutate: func(c *Config) { *c = MassImportConfig() },
		},
		{
			name:    "negative weight",
			mutate:  func(c *Config) { c.TitleWeight = -0.1 },
			wantErr: true,
		},
		{
			name:    "weight above one",
			mutate:  func(c *Config) { c.DistanceWeight = 1.5 },
			wantErr: true,
		},
		{
			name: "all weights zero",
			mutate: func(c *Config) {
				c.DistanceWeight = 0
				c.TitleWeight = 0
				c.TagsWeight = 0
				c.ArtistWeight = 0
			},
			wantErr: true,
		},
		{
			name:    "zero cutoff",
			mutate:  func(c *Config) { c.DistanceCutoffMeters = 0 },
			wantErr: true,
		},
		{
			name:    "warning above high",
			mutate:  func(c *Config) { c.WarningThreshold = 0.8 },
			wantErr: true,
		},
		{
			name:    "threshold above one",
			mutate:  func(c *Config) { c.HighThreshold = 1.2 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	svc, err := New(Config{})
	if err != nil {
		t.Fatalf("New(zero config): %v", err)
	}

	cfg := svc.Config()
	if cfg.DistanceWeight != 0.5 || cfg.TitleWeight != 0.3 || cfg.TagsWeight != 0.2 {
		t.Errorf("default weights not applied: %+v", cfg)
	}
	if cfg.DistanceCutoffMeters != DefaultSearchRadiusMeters {
		t.Errorf("DistanceCutoffMeters = %v, want %v", cfg.DistanceCutoffMeters, DefaultSearchRadiusMeters)
	}
	if cfg.WarningThreshold != DefaultWarningThreshold || cfg.HighThreshold != DefaultHighThreshold {
		t.Errorf("default thresholds not applied: %+v", cfg)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WarningThreshold = 0.9

	if _, err := New(cfg); err == nil {
		t.Error("New() accepted warning threshold above high threshold")
	}
}

func TestNewRespectsExplicitZeroWeight(t *testing.T) {
	// A partially-set weight vector is intentional signal disablement, not
	// a request for defaults.
	cfg := DefaultConfig()
	cfg.TitleWeight = 0

	svc, err := New(cfg)
	if err != nil {
		t.Fatalf("New(): %v", err)
	}
	if got := svc.Config().TitleWeight; got != 0 {
		t.Errorf("TitleWeight = %v, want 0", got)
	}
}
