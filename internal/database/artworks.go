// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/funvill/cultural-archiver-sub013/internal/logging"
	"github.com/funvill/cultural-archiver-sub013/internal/models"
	"github.com/funvill/cultural-archiver-sub013/internal/similarity"
)

// ErrArtworkNotFound is returned when an artwork ID does not exist.
var ErrArtworkNotFound = errors.New("artwork not found")

// metersPerDegreeLat is the approximate north-south span of one degree of
// latitude, used to size the bounding box for the coarse pre-filter.
const metersPerDegreeLat = 111320.0

// FindNearbyArtworks returns approved artworks within radiusMeters of the
// given point, closest first, capped at limit. The query is a bounding-box
// pre-filter over the (lat, lon) index; the exact haversine distance is
// computed per row and rows beyond the radius are dropped, since the box is
// an approximation.
func (db *DB) FindNearbyArtworks(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]models.NearbyArtwork, error) {
	if limit < 1 {
		limit = 20
	}

	latDelta := radiusMeters / metersPerDegreeLat
	// Longitude degrees shrink toward the poles; clamp the cosine away
	// from zero so the box stays finite at extreme latitudes.
	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lonDelta := radiusMeters / (metersPerDegreeLat * cosLat)

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, lat, lon, title, artist, description, type_name, tags, status, created_at, updated_at
		FROM artworks
		WHERE status = ?
		  AND lat BETWEEN ? AND ?
		  AND lon BETWEEN ? AND ?`,
		models.StatusApproved,
		lat-latDelta, lat+latDelta,
		lon-lonDelta, lon+lonDelta,
	)
	if err != nil {
		return nil, fmt.Errorf("query nearby artworks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	origin := similarity.Coordinate{Lat: lat, Lon: lon}
	var nearby []models.NearbyArtwork
	for rows.Next() {
		artwork, err := scanArtwork(rows)
		if err != nil {
			return nil, err
		}
		meters := similarity.HaversineMeters(origin, similarity.Coordinate{Lat: artwork.Lat, Lon: artwork.Lon})
		if meters > radiusMeters {
			continue
		}
		nearby = append(nearby, models.NearbyArtwork{
			Artwork:        *artwork,
			DistanceMeters: meters,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nearby artworks: %w", err)
	}

	sort.Slice(nearby, func(i, j int) bool {
		return nearby[i].DistanceMeters < nearby[j].DistanceMeters
	})
	if len(nearby) > limit {
		nearby = nearby[:limit]
	}

	return nearby, nil
}

// GetArtwork fetches one artwork by ID.
func (db *DB) GetArtwork(ctx context.Context, id string) (*models.Artwork, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, lat, lon, title, artist, description, type_name, tags, status, created_at, updated_at
		FROM artworks WHERE id = ?`, id)

	artwork, err := scanArtwork(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtworkNotFound
	}
	if err != nil {
		return nil, err
	}
	return artwork, nil
}

// InsertArtwork stores a new artwork. A missing ID is generated; missing
// timestamps and status receive defaults.
func (db *DB) InsertArtwork(ctx context.Context, artwork *models.Artwork) error {
	if artwork.ID == "" {
		artwork.ID = uuid.New().String()
	}
	if artwork.Status == "" {
		artwork.Status = models.StatusPending
	}
	now := time.Now().UTC()
	if artwork.CreatedAt.IsZero() {
		artwork.CreatedAt = now
	}
	artwork.UpdatedAt = now

	tagsJSON, err := json.Marshal(artwork.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO artworks (id, lat, lon, title, artist, description, type_name, tags, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		artwork.ID, artwork.Lat, artwork.Lon,
		nullable(artwork.Title), nullable(artwork.Artist), nullable(artwork.Description), nullable(artwork.TypeName),
		string(tagsJSON), artwork.Status, artwork.CreatedAt, artwork.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert artwork: %w", err)
	}
	return nil
}

// MergeArtworkTags performs the idempotent tag union merge into an existing
// record: keys missing from the stored tags are added, existing keys are
// never overwritten. Returns the merged tag map and whether anything
// changed. Read-modify-write runs inside a transaction so concurrent merges
// cannot lose keys.
func (db *DB) MergeArtworkTags(ctx context.Context, id string, incoming map[string]string) (map[string]string, bool, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin merge transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var tagsJSON sql.NullString
	err = tx.QueryRowContext(ctx, `SELECT tags FROM artworks WHERE id = ?`, id).Scan(&tagsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, ErrArtworkNotFound
	}
	if err != nil {
		return nil, false, fmt.Errorf("read artwork tags: %w", err)
	}

	existing := map[string]string{}
	if tagsJSON.Valid && tagsJSON.String != "" && tagsJSON.String != "null" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &existing); err != nil {
			// Unreadable stored tags are replaced rather than lost; the
			// merge still only adds keys on top of what could be parsed.
			logging.Ctx(ctx).Warn().Err(err).Str("artwork_id", id).Msg("Replacing unparseable stored tags during merge")
			existing = map[string]string{}
		}
	}

	merged, changed := similarity.MergeTagMaps(existing, incoming)
	if !changed {
		return merged, false, nil
	}

	mergedJSON, err := json.Marshal(merged)
	if err != nil {
		return nil, false, fmt.Errorf("marshal merged tags: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE artworks SET tags = ?, updated_at = ? WHERE id = ?`,
		string(mergedJSON), time.Now().UTC(), id,
	); err != nil {
		return nil, false, fmt.Errorf("update artwork tags: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("commit merge transaction: %w", err)
	}
	return merged, true, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanArtwork maps one row onto a models.Artwork. Stored tags that fail to
// parse degrade to nil tags; the similarity engine treats that as an
// excluded signal, never a batch failure.
func scanArtwork(row rowScanner) (*models.Artwork, error) {
	var (
		artwork                          models.Artwork
		title, artist, desc, typ, tagsJS sql.NullString
	)
	err := row.Scan(
		&artwork.ID, &artwork.Lat, &artwork.Lon,
		&title, &artist, &desc, &typ, &tagsJS,
		&artwork.Status, &artwork.CreatedAt, &artwork.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan artwork: %w", err)
	}

	artwork.Title = title.String
	artwork.Artist = artist.String
	artwork.Description = desc.String
	artwork.TypeName = typ.String

	if tagsJS.Valid && tagsJS.String != "" && tagsJS.String != "null" {
		tags := map[string]string{}
		if err := json.Unmarshal([]byte(tagsJS.String), &tags); err != nil {
			logging.Warn().Err(err).Str("artwork_id", artwork.ID).Msg("Skipping unparseable stored tags")
		} else {
			artwork.Tags = tags
		}
	}

	return &artwork, nil
}

// nullable converts "" to NULL for optional text columns.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
