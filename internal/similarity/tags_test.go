// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package similarity

import (
	"math"
	"reflect"
	"testing"
)

func TestNewTagSet(t *testing.T) {
	tests := []struct {
		name    string
		in      interface{}
		want    []string
		wantErr bool
	}{
		{
			name: "key value map uses values",
			in:   map[string]string{"material": "Bronze", "type": "Sculpture"},
			want: []string{"bronze", "sculpture"},
		},
		{
			name: "interface map",
			in:   map[string]interface{}{"material": "bronze", "year": 1984},
			want: []string{"1984", "bronze"},
		},
		{
			name: "string slice",
			in:   []string{"Bronze", "sculpture", "  "},
			want: []string{"bronze", "sculpture"},
		},
		{
			name: "json object string",
			in:   `{"material": "bronze", "type": "statue"}`,
			want: []string{"bronze", "statue"},
		},
		{
			name: "json array string",
			in:   `["bronze", "statue"]`,
			want: []string{"bronze", "statue"},
		},
		{
			name: "nil yields empty",
			in:   nil,
			want: []string{},
		},
		{
			name: "blank string yields empty",
			in:   "  ",
			want: []string{},
		},
		{
			name:    "malformed json",
			in:      `{"material": `,
			wantErr: true,
		},
		{
			name:    "json scalar rejected",
			in:      `42`,
			wantErr: true,
		},
		{
			name:    "unsupported shape",
			in:      42,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewTagSet(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTagSet() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := set.Values(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewTagSet().Values() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTagOverlap(t *testing.T) {
	mustSet := func(in interface{}) TagSet {
		set, err := NewTagSet(in)
		if err != nil {
			t.Fatalf("NewTagSet(%v): %v", in, err)
		}
		return set
	}

	tests := []struct {
		name   string
		a, b   interface{}
		want   float64
		wantOK bool
	}{
		{
			name:   "identical sets",
			a:      []string{"bronze", "statue"},
			b:      []string{"statue", "bronze"},
			want:   1.0,
			wantOK: true,
		},
		{
			name:   "partial overlap",
			a:      []string{"bronze", "statue"},
			b:      []string{"bronze", "mural", "steel"},
			want:   0.25,
			wantOK: true,
		},
		{
			name:   "case insensitive across shapes",
			a:      map[string]string{"material": "Bronze"},
			b:      []string{"bronze"},
			want:   1.0,
			wantOK: true,
		},
		{
			name:   "empty query side excluded",
			a:      nil,
			b:      []string{"bronze"},
			wantOK: false,
		},
		{
			name:   "empty candidate side excluded",
			a:      []string{"bronze"},
			b:      nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tagOverlap(mustSet(tt.a), mustSet(tt.b))
			if ok != tt.wantOK {
				t.Fatalf("tagOverlap() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("tagOverlap() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeTagMaps(t *testing.T) {
	existing := map[string]string{"material": "bronze", "artist_note": "original"}
	incoming := map[string]string{"material": "steel", "year": "1984"}

	merged, changed := MergeTagMaps(existing, incoming)

	if !changed {
		t.Error("MergeTagMaps() changed = false, want true")
	}
	want := map[string]string{"material": "bronze", "artist_note": "original", "year": "1984"}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("MergeTagMaps() = %v, want %v", merged, want)
	}

	// Inputs must not be mutated.
	if existing["year"] != "" {
		t.Error("MergeTagMaps() mutated existing map")
	}
}

func TestMergeTagMapsIdempotent(t *testing.T) {
	existing := map[string]string{"material": "bronze"}
	incoming := map[string]string{"year": "1984", "material": "steel"}

	once, _ := MergeTagMaps(existing, incoming)
	twice, changed := MergeTagMaps(once, incoming)

	if changed {
		t.Error("second merge reported changed = true, want false")
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge not idempotent: %v then %v", once, twice)
	}
}

func TestMergeTagMapsNoNewKeys(t *testing.T) {
	existing := map[string]string{"material": "bronze"}

	merged, changed := MergeTagMaps(existing, map[string]string{"material": "steel"})

	if changed {
		t.Error("MergeTagMaps() changed = true, want false when all keys exist")
	}
	if merged["material"] != "bronze" {
		t.Errorf("MergeTagMaps() overwrote existing key: %v", merged["material"])
	}
}
