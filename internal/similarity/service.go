// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package similarity

import (
	"context"
	"fmt"
	"sort"
)

// Service scores queries against candidate lists. It holds only immutable
// configuration, so one instance is safely shared across concurrent
// requests.
type Service struct {
	cfg Config
}

// New creates a scoring service. Zero config values receive the interactive
// defaults; an invalid configuration is rejected here rather than
// corrupting every subsequent score.
func New(cfg Config) (*Service, error) {
	cfg = cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid similarity config: %w", err)
	}
	return &Service{cfg: cfg}, nil
}

// Config returns the effective configuration after defaults were applied.
func (s *Service) Config() Config {
	return s.cfg
}

// CalculateSimilarityScores scores every candidate against the query and
// returns one result per candidate, in input order.
func (s *Service) CalculateSimilarityScores(ctx context.Context, q Query, candidates []Candidate) []Result {
	inputs := s.prepareQuery(ctx, q)
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, s.scoreCandidate(ctx, inputs, c))
	}
	return results
}

// CheckForDuplicates scores all candidates and partitions them into
// confidence bands. Zero candidates yields empty partitions and
// CandidatesChecked = 0 without error.
func (s *Service) CheckForDuplicates(ctx context.Context, q Query, candidates []Candidate) DuplicateCheckResult {
	result := DuplicateCheckResult{
		HighSimilarityMatches:    []Match{},
		WarningSimilarityMatches: []Match{},
		CandidatesChecked:        len(candidates),
	}

	for _, scored := range s.CalculateSimilarityScores(ctx, q, candidates) {
		match := Match{
			ArtworkID:   scored.ArtworkID,
			Score:       scored.OverallScore,
			Explanation: scored.Explanation,
		}
		switch s.cfg.Classify(scored.OverallScore) {
		case BandHighSimilarity:
			result.HighSimilarityMatches = append(result.HighSimilarityMatches, match)
		case BandWarning:
			result.WarningSimilarityMatches = append(result.WarningSimilarityMatches, match)
		case BandNone:
			// Terminal, no action.
		}
	}

	sortMatches(result.HighSimilarityMatches)
	sortMatches(result.WarningSimilarityMatches)

	return result
}

// EnhanceNearbyResults annotates candidates with their similarity score and
// sorts them descending, so visually-likely duplicates surface first when
// an interactive submission supplies title or tags. Candidates are trusted
// to be within the caller's search radius already; no re-filtering happens
// here.
func (s *Service) EnhanceNearbyResults(ctx context.Context, q Query, candidates []Candidate) []RankedCandidate {
	results := s.CalculateSimilarityScores(ctx, q, candidates)

	ranked := make([]RankedCandidate, len(candidates))
	for i, c := range candidates {
		ranked[i] = RankedCandidate{
			Candidate:       c,
			SimilarityScore: results[i].OverallScore,
			Explanation:     results[i].Explanation,
		}
	}

	// Stable sort keeps the store's distance ordering for equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SimilarityScore > ranked[j].SimilarityScore
	})

	return ranked
}

// sortMatches orders matches descending by score, then by ID for
// deterministic output on ties.
func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ArtworkID < matches[j].ArtworkID
	})
}
