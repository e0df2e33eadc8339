// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package similarity

import (
	"math"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercase", in: "Bronze Whale", want: "bronze whale"},
		{name: "trims and collapses", in: "  Bronze   Whale  ", want: "bronze whale"},
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "   \t ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeText(tt.in); got != tt.want {
				t.Errorf("normalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTextSimilarity(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		want   float64
		wantOK bool
	}{
		{
			name:   "exact match after normalization",
			a:      "Bronze Whale",
			b:      "  bronze   WHALE ",
			want:   1.0,
			wantOK: true,
		},
		{
			name:   "token reorder scores full overlap",
			a:      "Whale Bronze",
			b:      "Bronze Whale",
			want:   1.0,
			wantOK: true,
		},
		{
			name:   "partial overlap",
			a:      "Bronze Whale",
			b:      "Bronze Whale Sculpture",
			want:   2.0 / 3.0,
			wantOK: true,
		},
		{
			name:   "punctuation separates tokens",
			a:      "Whale Sculpture, Bronze",
			b:      "Bronze Whale Sculpture",
			want:   1.0,
			wantOK: true,
		},
		{
			name:   "no overlap",
			a:      "Digital Orca",
			b:      "Girl in a Wetsuit",
			want:   0.0,
			wantOK: true,
		},
		{
			name:   "empty query side excludes signal",
			a:      "",
			b:      "Bronze Whale",
			wantOK: false,
		},
		{
			name:   "empty candidate side excludes signal",
			a:      "Bronze Whale",
			b:      "   ",
			wantOK: false,
		},
		{
			name:   "punctuation-only side excludes signal",
			a:      "!!!",
			b:      "Bronze Whale",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := textSimilarity(tt.a, tt.b)
			if ok != tt.wantOK {
				t.Fatalf("textSimilarity(%q, %q) ok = %v, want %v", tt.a, tt.b, ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("textSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
