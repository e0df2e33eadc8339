// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package similarity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// TagSet is the canonical tag shape the scoring core works with: a set of
// lowercase string values. Values, not keys, because key naming is
// inconsistent across submission paths while values describe the artwork.
type TagSet map[string]struct{}

// NewTagSet normalizes the heterogeneous tag shapes found in upstream
// storage into a TagSet. Accepted shapes:
//
//   - map[string]string / map[string]interface{}: values are used
//   - []string / []interface{}: elements are used
//   - string / json.RawMessage: parsed as JSON, then handled as above
//   - nil or empty: returns nil
//
// Anything else is an input-shape error; callers exclude the tag signal and
// log a warning rather than failing the comparison.
func NewTagSet(raw interface{}) (TagSet, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case TagSet:
		return v, nil
	case map[string]string:
		set := make(TagSet, len(v))
		for _, val := range v {
			addTagValue(set, val)
		}
		return set, nil
	case map[string]interface{}:
		set := make(TagSet, len(v))
		for _, val := range v {
			addTagValue(set, fmt.Sprint(val))
		}
		return set, nil
	case []string:
		set := make(TagSet, len(v))
		for _, val := range v {
			addTagValue(set, val)
		}
		return set, nil
	case []interface{}:
		set := make(TagSet, len(v))
		for _, val := range v {
			addTagValue(set, fmt.Sprint(val))
		}
		return set, nil
	case json.RawMessage:
		return parseTagJSON([]byte(v))
	case []byte:
		return parseTagJSON(v)
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		return parseTagJSON([]byte(v))
	default:
		return nil, fmt.Errorf("unsupported tag shape %T", raw)
	}
}

// parseTagJSON decodes a JSON tag payload and normalizes the decoded shape.
func parseTagJSON(data []byte) (TagSet, error) {
	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("parse tags JSON: %w", err)
	}
	switch decoded.(type) {
	case map[string]interface{}, []interface{}, nil:
		return NewTagSet(decoded)
	default:
		return nil, fmt.Errorf("tags JSON must be an object or array, got %T", decoded)
	}
}

// addTagValue inserts a normalized value, skipping empties.
func addTagValue(set TagSet, val string) {
	val = strings.ToLower(strings.TrimSpace(val))
	if val != "" {
		set[val] = struct{}{}
	}
}

// Values returns the tag values in sorted order. Useful for deterministic
// logging and test fixtures.
func (t TagSet) Values() []string {
	values := make([]string, 0, len(t))
	for v := range t {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// tagOverlap scores two tag sets with Jaccard overlap. The second return
// value is false when either side has zero tags: absence of data is not
// dissimilarity.
func tagOverlap(a, b TagSet) (float64, bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}

	intersection := 0
	for v := range a {
		if _, ok := b[v]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection

	return clamp01(float64(intersection) / float64(union)), true
}

// MergeTagMaps performs the tag union merge used when a mass-import item
// matches an existing record: every key in incoming that is not already
// present on existing is added; existing keys are never overwritten. The
// input maps are not mutated.
//
// The merge is idempotent: merging the same incoming set twice produces the
// same result as merging once. The second return value reports whether the
// merge changed anything.
func MergeTagMaps(existing, incoming map[string]string) (map[string]string, bool) {
	merged := make(map[string]string, len(existing)+len(incoming))
	for k, v := range existing {
		merged[k] = v
	}

	changed := false
	for k, v := range incoming {
		if _, ok := merged[k]; ok {
			continue
		}
		merged[k] = v
		changed = true
	}

	return merged, changed
}
