// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/enrich"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/algorithms"
)

// posterEnricher gives every even id a poster.
type posterEnricher struct{}

func (posterEnricher) EnrichBatch(_ context.Context, ids []int) map[int]enrich.Result {
	out := make(map[int]enrich.Result, len(ids))
	for _, id := range ids {
		r := enrich.Result{ID: id, Overview: enrich.DefaultOverview}
		if id%2 == 0 {
			r.PosterURL = "https://img.test/poster.jpg"
		}
		out[id] = r
	}
	return out
}

// noPosterEnricher never finds a poster.
type noPosterEnricher struct{}

func (noPosterEnricher) EnrichBatch(_ context.Context, ids []int) map[int]enrich.Result {
	out := make(map[int]enrich.Result, len(ids))
	for _, id := range ids {
		out[id] = enrich.Sentinel(id)
	}
	return out
}

// newTestService builds a four item catalog with ids 10, 11, 12, 13.
func newTestService(t *testing.T) *recommend.Service {
	t.Helper()
	return newTestServiceWith(t, posterEnricher{})
}

func newTestServiceWith(t *testing.T, enricher recommend.Enricher) *recommend.Service {
	t.Helper()

	items := []recommend.Item{
		{ID: 10, Title: "Avatar"},
		{ID: 11, Title: "Alien"},
		{ID: 12, Title: "Aliens"},
		{ID: 13, Title: "Titanic"},
	}
	matrix := algorithms.SimilarityMatrix{
		{1, 0.6, 0.8, 0.1},
		{0.6, 1, 0.9, 0},
		{0.8, 0.9, 1, 0},
		{0.1, 0, 0, 1},
	}
	catalog, err := recommend.NewCatalog(items, matrix, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	engine, err := recommend.NewEngine(catalog, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return recommend.NewService(catalog, engine, enricher, nil, zerolog.Nop())
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func doRequest(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s response %q: %v", target, rec.Body.String(), err)
	}
	return rec, env
}
