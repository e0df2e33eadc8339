// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package database

import (
	"context"
	"fmt"

	"github.com/funvill/cultural-archiver-sub013/internal/logging"
	"github.com/funvill/cultural-archiver-sub013/internal/models"
)

// SeedMockData inserts a small set of approved Vancouver artworks for
// development and manual testing. No-op when the table already has rows.
func (db *DB) SeedMockData(ctx context.Context) error {
	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT count(*) FROM artworks`).Scan(&count); err != nil {
		return fmt.Errorf("count artworks: %w", err)
	}
	if count > 0 {
		return nil
	}

	mock := []models.Artwork{
		{
			Lat: 49.2827, Lon: -123.1207,
			Title:    "Digital Orca",
			Artist:   "Douglas Coupland",
			TypeName: "sculpture",
			Tags:     map[string]string{"material": "aluminum", "artwork_type": "sculpture", "subject": "whale"},
			Status:   models.StatusApproved,
		},
		{
			Lat: 49.2734, Lon: -123.1044,
			Title:    "A-maze-ing Laughter",
			Artist:   "Yue Minjun",
			TypeName: "sculpture",
			Tags:     map[string]string{"material": "bronze", "artwork_type": "sculpture"},
			Status:   models.StatusApproved,
		},
		{
			Lat: 49.2606, Lon: -123.1139,
			Title:    "Gate to the Northwest Passage",
			Artist:   "Alan Chung Hung",
			TypeName: "sculpture",
			Tags:     map[string]string{"material": "corten steel", "artwork_type": "sculpture"},
			Status:   models.StatusApproved,
		},
		{
			Lat: 49.2844, Lon: -123.1089,
			Title:    "Girl in a Wetsuit",
			Artist:   "Elek Imredy",
			TypeName: "statue",
			Tags:     map[string]string{"material": "bronze", "artwork_type": "statue"},
			Status:   models.StatusApproved,
		},
	}

	for i := range mock {
		if err := db.InsertArtwork(ctx, &mock[i]); err != nil {
			return fmt.Errorf("seed artwork %q: %w", mock[i].Title, err)
		}
	}

	logging.Info().Int("count", len(mock)).Msg("Seeded mock artworks")
	return nil
}
