// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package similarity

import (
	"context"
	"math"

	"github.com/funvill/cultural-archiver-sub013/internal/logging"
)

// queryInputs holds the query-side signal inputs, normalized once so a
// single query can be scored against many candidates without repeating the
// tag adapter work.
type queryInputs struct {
	coordinates Coordinate
	title       string
	artist      string
	tags        TagSet
}

// prepareQuery normalizes the query-side inputs. A malformed query tag
// payload degrades to "no tags" with a warning; input-shape errors are
// never fatal.
func (s *Service) prepareQuery(ctx context.Context, q Query) queryInputs {
	tags, err := NewTagSet(q.Tags)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Ignoring malformed query tags")
		tags = nil
	}
	return queryInputs{
		coordinates: q.Coordinates,
		title:       q.Title,
		artist:      q.Artist,
		tags:        tags,
	}
}

// scoreCandidate aggregates all available signals for one query/candidate
// pair into a Result.
//
// The distance signal is always computed since coordinates are mandatory on
// both sides. Title, tags and artist signals are computed only when both
// sides provide non-empty data and the signal's configured weight is
// positive; otherwise the signal is omitted and the remaining weights are
// renormalized. In the degenerate case where the included weights sum to
// zero the overall score falls back to the distance-only score.
func (s *Service) scoreCandidate(ctx context.Context, q queryInputs, c Candidate) Result {
	signals := make([]Signal, 0, 4)

	// Distance: trust a store-computed distance when present, otherwise
	// compute exactly. Bounding-box pre-filtering upstream is approximate,
	// so the exact value still matters for scoring precision.
	meters := 0.0
	if c.DistanceMeters != nil {
		meters = *c.DistanceMeters
	} else {
		meters = HaversineMeters(q.coordinates, c.Coordinates)
	}
	distSignal := Signal{
		Type:     SignalDistance,
		RawScore: distanceScore(meters, s.cfg.DistanceCutoffMeters),
		Weight:   s.cfg.DistanceWeight,
		Metadata: map[string]interface{}{
			"distance_meters": math.Round(meters*100) / 100,
			"cutoff_meters":   s.cfg.DistanceCutoffMeters,
		},
	}
	signals = append(signals, distSignal)

	if s.cfg.TitleWeight > 0 {
		if score, ok := textSimilarity(q.title, c.Title); ok {
			signals = append(signals, Signal{
				Type:     SignalTitle,
				RawScore: score,
				Weight:   s.cfg.TitleWeight,
				Metadata: map[string]interface{}{
					"query_title":     normalizeText(q.title),
					"candidate_title": normalizeText(c.Title),
				},
			})
		}
	}

	if s.cfg.TagsWeight > 0 {
		if candidateTags, err := NewTagSet(c.Tags); err != nil {
			// A malformed candidate must not abort the batch; its tag
			// signal is simply excluded for this comparison.
			logging.Ctx(ctx).Warn().Err(err).Str("artwork_id", c.ID).Msg("Ignoring malformed candidate tags")
		} else if score, ok := tagOverlap(q.tags, candidateTags); ok {
			signals = append(signals, Signal{
				Type:     SignalTags,
				RawScore: score,
				Weight:   s.cfg.TagsWeight,
				Metadata: map[string]interface{}{
					"query_tags":     q.tags.Values(),
					"candidate_tags": candidateTags.Values(),
				},
			})
		}
	}

	if s.cfg.ArtistWeight > 0 {
		if score, ok := textSimilarity(q.artist, c.Artist); ok {
			signals = append(signals, Signal{
				Type:     SignalArtist,
				RawScore: score,
				Weight:   s.cfg.ArtistWeight,
			})
		}
	}

	result := Result{
		ArtworkID:    c.ID,
		OverallScore: combineSignals(signals, distSignal.RawScore),
		Signals:      signals,
	}
	result.Explanation = Explain(result)

	if !s.cfg.IncludeMetadata {
		for i := range result.Signals {
			result.Signals[i].Metadata = nil
		}
	}

	return result
}

// combineSignals computes the renormalized weighted average. distanceRaw is
// the fallback when the included weights sum to zero, since the distance
// signal is always present even if configured with zero weight.
func combineSignals(signals []Signal, distanceRaw float64) float64 {
	var weightSum, weighted float64
	for _, sig := range signals {
		weightSum += sig.Weight
		weighted += sig.RawScore * sig.Weight
	}
	if weightSum <= 0 {
		return clamp01(distanceRaw)
	}
	return clamp01(weighted / weightSum)
}
