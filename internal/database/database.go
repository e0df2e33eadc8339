// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

// Package database implements the artwork store on DuckDB. It is the
// storage collaborator of the similarity engine: the engine never performs
// I/O itself, it scores candidate lists produced by FindNearbyArtworks.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/funvill/cultural-archiver-sub013/internal/config"
	"github.com/funvill/cultural-archiver-sub013/internal/logging"
)

// DB wraps the DuckDB connection and provides artwork data access.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New opens the database and initializes the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	// Ensure the parent directory exists so first startup does not fail
	// with "No such file or directory".
	dbDir := filepath.Dir(cfg.Path)
	if dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", dbDir, err)
		}
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		cfg.Path, numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db := &DB{conn: conn, cfg: cfg}
	if err := db.initSchema(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	logging.Info().Str("path", cfg.Path).Int("threads", numThreads).Msg("Database ready")
	return db, nil
}

// Conn exposes the underlying connection for health checks.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the artworks table and indexes if absent.
func (db *DB) initSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS artworks (
	id          VARCHAR PRIMARY KEY,
	lat         DOUBLE NOT NULL,
	lon         DOUBLE NOT NULL,
	title       VARCHAR,
	artist      VARCHAR,
	description VARCHAR,
	type_name   VARCHAR,
	tags        VARCHAR,
	status      VARCHAR NOT NULL DEFAULT 'pending',
	created_at  TIMESTAMP NOT NULL DEFAULT current_timestamp,
	updated_at  TIMESTAMP NOT NULL DEFAULT current_timestamp
);
CREATE INDEX IF NOT EXISTS idx_artworks_lat_lon ON artworks(lat, lon);
CREATE INDEX IF NOT EXISTS idx_artworks_status ON artworks(status);
`
	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create artworks schema: %w", err)
	}
	return nil
}
