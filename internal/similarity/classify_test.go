// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package similarity

import "testing"

func TestClassify(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		score float64
		want  Band
	}{
		{name: "zero", score: 0, want: BandNone},
		{name: "below warning", score: 0.39, want: BandNone},
		{name: "exactly warning threshold", score: 0.4, want: BandWarning},
		{name: "between bands", score: 0.55, want: BandWarning},
		{name: "just below high", score: 0.69999, want: BandWarning},
		{name: "exactly high threshold", score: 0.7, want: BandHighSimilarity},
		{name: "maximum", score: 1.0, want: BandHighSimilarity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.Classify(tt.score); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

func TestClassifyCustomThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WarningThreshold = 0.5
	cfg.HighThreshold = 0.9

	tests := []struct {
		score float64
		want  Band
	}{
		{score: 0.45, want: BandNone},
		{score: 0.5, want: BandWarning},
		{score: 0.85, want: BandWarning},
		{score: 0.9, want: BandHighSimilarity},
	}

	for _, tt := range tests {
		if got := cfg.Classify(tt.score); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
