// Cultural Archiver - Crowdsourced Public Art Cataloguing Platform
// Copyright 2026 Steven Smethurst (funvill)
// SPDX-License-Identifier: MIT
// https://github.com/funvill/cultural-archiver

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/funvill/cultural-archiver-sub013/internal/database"
	"github.com/funvill/cultural-archiver-sub013/internal/massimport"
	"github.com/funvill/cultural-archiver-sub013/internal/models"
	"github.com/funvill/cultural-archiver-sub013/internal/similarity"
)

// fakeArtworkStore implements ArtworkStore in memory.
type fakeArtworkStore struct {
	nearby    []models.NearbyArtwork
	nearbyErr error
	artworks  map[string]*models.Artwork
}

func (f *fakeArtworkStore) FindNearbyArtworks(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]models.NearbyArtwork, error) {
	if f.nearbyErr != nil {
		return nil, f.nearbyErr
	}
	return f.nearby, nil
}

func (f *fakeArtworkStore) GetArtwork(ctx context.Context, id string) (*models.Artwork, error) {
	if a, ok := f.artworks[id]; ok {
		return a, nil
	}
	return nil, database.ErrArtworkNotFound
}

// fakeResolver implements DuplicateChecker.
type fakeResolver struct {
	result   *massimport.Result
	checkErr error

	mergedInto string
	mergeErr   error
}

func (f *fakeResolver) CheckForDuplicates(ctx context.Context, req massimport.Request) (*massimport.Result, error) {
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	return f.result, nil
}

func (f *fakeResolver) MergeTags(ctx context.Context, artworkID string, incoming map[string]string) (map[string]string, bool, error) {
	if f.mergeErr != nil {
		return nil, false, f.mergeErr
	}
	f.mergedInto = artworkID
	return incoming, true, nil
}

func testNearby(id, title string, distance float64) models.NearbyArtwork {
	return models.NearbyArtwork{
		Artwork: models.Artwork{
			ID:    id,
			Lat:   49.2827,
			Lon:   -123.1207,
			Title: title,
		},
		DistanceMeters: distance,
	}
}

func newTestRouter(t *testing.T, store ArtworkStore, resolver DuplicateChecker) http.Handler {
	t.Helper()
	engine, err := similarity.New(similarity.DefaultConfig())
	if err != nil {
		t.Fatalf("similarity.New(): %v", err)
	}
	handler := NewHandler(store, engine, resolver, 500)
	return NewRouter(handler, NewMiddleware(nil)).Setup()
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, rec.Body.String())
	}
	return resp
}

func TestSimilarityCheckEndpoint(t *testing.T) {
	store := &fakeArtworkStore{
		nearby: []models.NearbyArtwork{
			testNearby("artwork-1", "Bronze Whale Sculpture", 0),
			testNearby("artwork-2", "Concrete Mural", 450),
		},
	}
	router := newTestRouter(t, store, &fakeResolver{})

	body := `{"lat": 49.2827, "lon": -123.1207, "title": "Bronze Whale"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/similarity/check", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if resp.Status != "success" {
		t.Errorf("status = %s, want success", resp.Status)
	}

	data, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("re-marshal data: %v", err)
	}
	var result similarity.DuplicateCheckResult
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}

	if result.CandidatesChecked != 2 {
		t.Errorf("CandidatesChecked = %d, want 2", result.CandidatesChecked)
	}
	if len(result.HighSimilarityMatches) != 1 || result.HighSimilarityMatches[0].ArtworkID != "artwork-1" {
		t.Errorf("HighSimilarityMatches = %+v, want [artwork-1]", result.HighSimilarityMatches)
	}
}

func TestSimilarityCheckValidation(t *testing.T) {
	router := newTestRouter(t, &fakeArtworkStore{}, &fakeResolver{})

	tests := []struct {
		name string
		body string
	}{
		{name: "latitude out of range", body: `{"lat": 95, "lon": 0}`},
		{name: "longitude out of range", body: `{"lat": 0, "lon": 200}`},
		{name: "malformed json", body: `{"lat": `},
		{name: "radius too large", body: `{"lat": 0, "lon": 0, "radius_meters": 50000}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/similarity/check", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
			resp := decodeResponse(t, rec)
			if resp.Error == nil {
				t.Fatal("missing error body")
			}
		})
	}
}

func TestSimilarityCheckStoreError(t *testing.T) {
	store := &fakeArtworkStore{nearbyErr: errors.New("database closed")}
	router := newTestRouter(t, store, &fakeResolver{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/similarity/check",
		strings.NewReader(`{"lat": 49.2827, "lon": -123.1207}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestArtworksNearbyEndpoint(t *testing.T) {
	store := &fakeArtworkStore{
		nearby: []models.NearbyArtwork{
			testNearby("close-unrelated", "Girl in a Wetsuit", 10),
			testNearby("far-match", "Digital Orca", 200),
		},
	}
	router := newTestRouter(t, store, &fakeResolver{})

	t.Run("plain search keeps store order", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/artworks/nearby?lat=49.2827&lon=-123.1207", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
		}
		resp := decodeResponse(t, rec)
		data := resp.Data.(map[string]interface{})
		artworks := data["artworks"].([]interface{})
		if len(artworks) != 2 {
			t.Fatalf("got %d artworks, want 2", len(artworks))
		}
		first := artworks[0].(map[string]interface{})
		if first["id"] != "close-unrelated" {
			t.Errorf("first = %v, want close-unrelated", first["id"])
		}
	})

	t.Run("title parameter reranks by similarity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/artworks/nearby?lat=49.2827&lon=-123.1207&title=Digital+Orca", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		resp := decodeResponse(t, rec)
		data := resp.Data.(map[string]interface{})
		artworks := data["artworks"].([]interface{})
		first := artworks[0].(map[string]interface{})
		if first["id"] != "far-match" {
			t.Errorf("first = %v, want far-match after reranking", first["id"])
		}
		if _, ok := first["similarity_score"]; !ok {
			t.Error("reranked result missing similarity_score")
		}
	})

	t.Run("missing coordinates rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/artworks/nearby?lat=49.2827", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestGetArtworkEndpoint(t *testing.T) {
	store := &fakeArtworkStore{
		artworks: map[string]*models.Artwork{
			"artwork-1": {ID: "artwork-1", Title: "Digital Orca"},
		},
	}
	router := newTestRouter(t, store, &fakeResolver{})

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/artworks/artwork-1", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/artworks/missing", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
		resp := decodeResponse(t, rec)
		if resp.Error == nil || resp.Error.Code != "NOT_FOUND" {
			t.Errorf("error = %+v, want NOT_FOUND", resp.Error)
		}
	})
}

func TestImportCheckEndpoint(t *testing.T) {
	resolver := &fakeResolver{
		result: &massimport.Result{
			IsDuplicate: true,
			DuplicateInfo: &massimport.DuplicateInfo{
				ExistingArtworkID: "artwork-1",
				Title:             "Digital Orca",
				ConfidenceScore:   0.92,
			},
			CandidatesChecked: 3,
		},
	}
	router := newTestRouter(t, &fakeArtworkStore{}, resolver)

	t.Run("duplicate without merge", func(t *testing.T) {
		body := `{"title": "Digital Orca", "lat": 49.2827, "lon": -123.1207}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/import/check", strings.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
		}
		if resolver.mergedInto != "" {
			t.Error("tags merged without merge_tags flag")
		}
	})

	t.Run("duplicate with merge", func(t *testing.T) {
		body := `{"title": "Digital Orca", "lat": 49.2827, "lon": -123.1207,
			"tags": {"material": "aluminium"}, "merge_tags": true}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/import/check", strings.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if resolver.mergedInto != "artwork-1" {
			t.Errorf("merged into %q, want artwork-1", resolver.mergedInto)
		}
	})

	t.Run("missing title rejected", func(t *testing.T) {
		body := `{"lat": 49.2827, "lon": -123.1207}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/import/check", strings.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("resolver error is 500", func(t *testing.T) {
		failing := &fakeResolver{checkErr: errors.New("store down")}
		failRouter := newTestRouter(t, &fakeArtworkStore{}, failing)

		body := `{"title": "Digital Orca", "lat": 49.2827, "lon": -123.1207}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/import/check", strings.NewReader(body))
		rec := httptest.NewRecorder()

		failRouter.ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
	})
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, &fakeArtworkStore{}, &fakeResolver{})

	for _, path := range []string{"/api/v1/health/live", "/api/v1/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, rec.Code)
		}
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t, &fakeArtworkStore{}, &fakeResolver{})

	t.Run("generated when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("X-Request-ID header not set")
		}
	})

	t.Run("preserved when supplied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
		req.Header.Set("X-Request-ID", "upstream-id")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		if got := rec.Header().Get("X-Request-ID"); got != "upstream-id" {
			t.Errorf("X-Request-ID = %q, want upstream-id", got)
		}
	})
}

func TestOversizedBodyRejected(t *testing.T) {
	router := newTestRouter(t, &fakeArtworkStore{}, &fakeResolver{})

	big := bytes.Repeat([]byte("a"), 2<<20)
	body := append([]byte(`{"title": "`), big...)
	body = append(body, []byte(`", "lat": 0, "lon": 0}`)...)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/similarity/check", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for oversized body", rec.Code)
	}
}
