// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/enrich"
	"github.com/tomtom215/reelmatch/internal/recommend/algorithms"
)

// newTestCatalog builds a catalog whose item i has id 100+i.
func newTestCatalog(t *testing.T, titles []string, rows [][]float32) *Catalog {
	t.Helper()

	items := make([]Item, len(titles))
	for i, title := range titles {
		items[i] = Item{ID: 100 + i, Title: title}
	}
	c, err := NewCatalog(items, algorithms.SimilarityMatrix(rows), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

func newTestEngine(t *testing.T, c *Catalog) *Engine {
	t.Helper()
	e, err := NewEngine(c, DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

// fakeEnricher returns canned results and records every batch.
type fakeEnricher struct {
	mu      sync.Mutex
	results map[int]enrich.Result
	batches [][]int
}

func (f *fakeEnricher) EnrichBatch(_ context.Context, ids []int) map[int]enrich.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, append([]int(nil), ids...))

	out := make(map[int]enrich.Result, len(ids))
	for _, id := range ids {
		if r, ok := f.results[id]; ok {
			out[id] = r
			continue
		}
		out[id] = enrich.Sentinel(id)
	}
	return out
}

func posterResult(id int, title string) enrich.Result {
	return enrich.Result{ID: id, Title: title, PosterURL: "https://img.test/p/" + title + ".jpg", Overview: "overview"}
}
