// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

// Package api provides the HTTP surface of the similarity service using the
// Chi router.
//
// Endpoints:
//   - POST /api/v1/similarity/check  - duplicate check for the submission flow
//   - GET  /api/v1/artworks/nearby   - radius search with optional similarity ranking
//   - POST /api/v1/import/check      - mass-import duplicate resolution and tag merge
//   - GET  /api/v1/health            - liveness and readiness
//   - GET  /metrics                  - Prometheus metrics
//
// Handlers depend on small interfaces (ArtworkStore, DuplicateChecker) so
// tests can substitute fakes without a database.
package api
