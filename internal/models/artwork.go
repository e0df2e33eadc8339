// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package models

import "time"

// Artwork statuses. Only approved records are visible to visitors and to
// the duplicate-detection candidate queries.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusRemoved  = "removed"
)

// Artwork is a catalogue entry for one real-world public artwork.
// Tags are a free-form key->value map; keys follow the structured tag
// schema (material, artwork_type, ...) but arbitrary keys are allowed.
type Artwork struct {
	ID          string            `json:"id"`
	Lat         float64           `json:"lat"`
	Lon         float64           `json:"lon"`
	Title       string            `json:"title,omitempty"`
	Artist      string            `json:"artist,omitempty"`
	Description string            `json:"description,omitempty"`
	TypeName    string            `json:"type_name,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NearbyArtwork is an artwork returned by a radius query, annotated with
// its exact distance from the query point and, when the caller supplied
// title/tags for ranking, a similarity score and explanation.
type NearbyArtwork struct {
	Artwork
	DistanceMeters  float64  `json:"distance_meters"`
	SimilarityScore *float64 `json:"similarity_score,omitempty"`
	Explanation     string   `json:"explanation,omitempty"`
}
