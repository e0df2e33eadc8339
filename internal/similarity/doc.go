// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

// Package similarity implements the duplicate-detection engine used by the
// fast-submission flow and the mass-import pipeline.
//
// The engine compares an incoming record (coordinates, optional title, tags
// and artist) against a list of geographically pre-filtered catalogue entries
// and produces, per candidate, a weighted composite score built from up to
// four signals:
//
//   - distance: haversine great-circle distance mapped linearly to [0,1]
//   - title:    token-set Jaccard overlap of normalized titles
//   - tags:     Jaccard overlap of normalized tag value sets
//   - artist:   token-set overlap of artist names (mass-import flow)
//
// Signals are only computed when both sides carry data; the weights of the
// included signals are renormalized to sum to 1.0 so that missing data is
// never conflated with dissimilarity.
//
// All computation is pure, synchronous and CPU-bound. The engine performs no
// I/O; candidate retrieval is the storage layer's job and candidates are
// handed in as a slice. Scoring calls share no mutable state and are safe to
// run concurrently.
package similarity
