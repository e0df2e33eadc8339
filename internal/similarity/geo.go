// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package similarity

import "math"

// HaversineMeters calculates the great-circle distance between two points
// using the haversine formula with a 6371 km Earth radius. Symmetric, and
// zero for identical points. Out-of-range coordinates are a caller
// validation concern; the formula still returns a numeric result for them.
func HaversineMeters(a, b Coordinate) float64 {
	const earthRadiusMeters = 6371000.0

	lat1Rad := a.Lat * math.Pi / 180.0
	lon1Rad := a.Lon * math.Pi / 180.0
	lat2Rad := b.Lat * math.Pi / 180.0
	lon2Rad := b.Lon * math.Pi / 180.0

	dLat := lat2Rad - lat1Rad
	dLon := lon2Rad - lon1Rad

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// distanceScore maps a distance to [0,1]: 1.0 at zero distance, 0.0 at or
// beyond the cutoff, linear in between.
func distanceScore(meters, cutoffMeters float64) float64 {
	if cutoffMeters <= 0 {
		return 0
	}
	score := 1 - meters/cutoffMeters
	return clamp01(score)
}

// clamp01 clamps a score into [0,1] and maps NaN to 0.
func clamp01(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
