// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package similarity

import (
	"strings"
	"unicode"
)

// normalizeText lowercases, trims and collapses internal whitespace.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// tokenSet splits normalized text into a set of alphanumeric tokens.
// Punctuation separates tokens, so "Whale Sculpture, Bronze" tokenizes the
// same as "Whale Sculpture Bronze".
func tokenSet(s string) map[string]struct{} {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// textSimilarity scores two free-text values with token-set Jaccard overlap.
// The second return value is false when either side is empty after
// normalization, meaning the signal must be excluded, not scored as zero.
//
// Identical normalized strings short-circuit to 1.0 regardless of token
// overlap; this guards against false negatives from over-aggressive
// tokenization. Token overlap in turn tolerates word reordering and partial
// matches ("Bronze Whale" vs "Whale Sculpture, Bronze") better than edit
// distance would.
func textSimilarity(a, b string) (float64, bool) {
	na := normalizeText(a)
	nb := normalizeText(b)
	if na == "" || nb == "" {
		return 0, false
	}
	if na == nb {
		return 1, true
	}

	ta := tokenSet(na)
	tb := tokenSet(nb)
	if len(ta) == 0 || len(tb) == 0 {
		// Non-empty strings with no alphanumeric content carry no
		// comparable tokens.
		return 0, false
	}

	intersection := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection

	return clamp01(float64(intersection) / float64(union)), true
}
