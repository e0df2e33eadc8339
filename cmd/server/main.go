// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

// Package main is the entry point for the similarity service.
//
// The service powers duplicate detection for crowdsourced public art
// submissions: an interactive check that warns contributors when their
// submission looks like an existing artwork, a radius search that surfaces
// likely duplicates first, and a stricter mass-import resolver for bulk
// data sources.
//
// Startup order:
//
//  1. Configuration: Koanf v2 layered sources (defaults, config.yaml, env)
//  2. Logging: zerolog, structured JSON or console output
//  3. Database: DuckDB artwork store, optionally seeded with mock data
//  4. Engines: interactive similarity engine and mass-import resolver
//  5. HTTP server: Chi router under Suture supervision
//
// The server shuts down gracefully on SIGINT and SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/funvill/cultural-archiver-sub013/internal/api"
	"github.com/funvill/cultural-archiver-sub013/internal/config"
	"github.com/funvill/cultural-archiver-sub013/internal/database"
	"github.com/funvill/cultural-archiver-sub013/internal/logging"
	"github.com/funvill/cultural-archiver-sub013/internal/massimport"
	"github.com/funvill/cultural-archiver-sub013/internal/similarity"
	"github.com/funvill/cultural-archiver-sub013/internal/supervisor"
)

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("database", cfg.Database.Path).
		Msg("Starting cultural-archiver similarity service")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Warn().Err(err).Msg("Database close failed")
		}
	}()

	if cfg.Database.SeedMockData {
		if err := db.SeedMockData(context.Background()); err != nil {
			return fmt.Errorf("seed mock data: %w", err)
		}
	}

	engine, err := similarity.New(cfg.Similarity.EngineConfig())
	if err != nil {
		return fmt.Errorf("similarity engine: %w", err)
	}

	resolver, err := massimport.NewResolver(db, massimport.Config{
		SearchRadiusMeters: cfg.MassImport.SearchRadiusMeters,
		CandidateLimit:     cfg.MassImport.CandidateLimit,
		DefaultThreshold:   cfg.MassImport.DefaultThreshold,
		Engine:             cfg.MassImport.EngineConfig(),
	})
	if err != nil {
		return fmt.Errorf("mass-import resolver: %w", err)
	}

	handler := api.NewHandler(db, engine, resolver, cfg.Similarity.SearchRadiusMeters).
		WithReadiness(func(ctx context.Context) error {
			return db.Conn().PingContext(ctx)
		})

	mw := api.NewMiddleware(&api.MiddlewareConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		RateLimitRequests:  cfg.Server.RateLimitReqs,
		RateLimitWindow:    time.Minute,
	})
	router := api.NewRouter(handler, mw)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := api.NewServer(addr, router.Setup(), cfg.Server.Timeout)

	slogger := slog.New(logging.NewSlogHandler())
	tree := supervisor.NewTree(slogger, supervisor.DefaultTreeConfig())
	tree.AddAPIService(server)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}

	logging.Info().Msg("Shutdown complete")
	return nil
}
