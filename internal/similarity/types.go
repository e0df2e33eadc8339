// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package similarity

// Coordinate is an immutable lat/lon pair in decimal degrees.
// Valid ranges (lat in [-90,90], lon in [-180,180]) are enforced by the
// validation layer at the API boundary, not here.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Query is the incoming record being checked against the catalogue.
// Title, Artist and Tags are optional; a signal whose data is missing on
// either side is excluded from scoring rather than scored as zero.
type Query struct {
	Coordinates Coordinate
	Title       string
	Artist      string

	// Tags accepts the heterogeneous shapes found across submission paths:
	// a key->value map, a flat list of values, or a JSON string needing a
	// parse step. NewTagSet normalizes all of them at the boundary.
	Tags interface{}
}

// Candidate is an existing catalogue record already known to be within the
// caller's search radius. DistanceMeters may be pre-computed by the storage
// layer; when nil the engine computes it from the coordinates.
type Candidate struct {
	ID          string
	Coordinates Coordinate
	Title       string
	Artist      string
	TypeName    string
	Tags        interface{}

	DistanceMeters *float64
}

// SignalType identifies one dimension of comparison.
type SignalType string

// Signal types, in explanation priority order.
const (
	SignalDistance SignalType = "distance"
	SignalTitle    SignalType = "title"
	SignalTags     SignalType = "tags"
	SignalArtist   SignalType = "artist"
)

// Signal is one scored dimension of a query/candidate comparison.
// RawScore and Weight are both in [0,1]. Metadata carries per-signal detail
// (e.g. exact distance in meters) and is stripped from results when the
// service was built with IncludeMetadata disabled.
type Signal struct {
	Type     SignalType             `json:"type"`
	RawScore float64                `json:"raw_score"`
	Weight   float64                `json:"weight"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Result is the outcome of scoring one candidate against one query.
//
// Invariant: OverallScore is the weighted average of the included signals
// with weights renormalized over only those signals, and is always in [0,1].
type Result struct {
	ArtworkID    string   `json:"artwork_id"`
	OverallScore float64  `json:"overall_score"`
	Signals      []Signal `json:"signals"`
	Explanation  string   `json:"explanation"`
}

// Match is one candidate that landed in a confidence band.
type Match struct {
	ArtworkID   string  `json:"artwork_id"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation,omitempty"`
}

// DuplicateCheckResult partitions scored candidates into confidence bands.
type DuplicateCheckResult struct {
	HighSimilarityMatches    []Match `json:"high_similarity_matches"`
	WarningSimilarityMatches []Match `json:"warning_similarity_matches"`
	CandidatesChecked        int     `json:"candidates_checked"`
}

// RankedCandidate is a candidate annotated with its similarity score, used
// to reorder "nearby artworks" results so likely duplicates surface first.
type RankedCandidate struct {
	Candidate
	SimilarityScore float64 `json:"similarity_score"`
	Explanation     string  `json:"explanation,omitempty"`
}
