// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package similarity

// Band is the classifier's decision for one composite score.
type Band string

// Decision bands. None and Warning are terminal and never block a
// submission; HighSimilarity blocks automatic creation in the mass-import
// flow and surfaces a non-blocking warning in the interactive flow.
const (
	BandNone           Band = "none"
	BandWarning        Band = "warning"
	BandHighSimilarity Band = "high_similarity"
)

// Classify maps a composite score to a decision band using the configured
// thresholds. Pure function: a score exactly at a threshold lands in the
// higher band.
func (c Config) Classify(score float64) Band {
	switch {
	case score >= c.HighThreshold:
		return BandHighSimilarity
	case score >= c.WarningThreshold:
		return BandWarning
	default:
		return BandNone
	}
}
