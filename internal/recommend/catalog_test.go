// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend/algorithms"
	"github.com/tomtom215/reelmatch/internal/recommend/storage"
)

func TestNewCatalog(t *testing.T) {
	rows := [][]float32{{1, 0.5}, {0.5, 1}}

	t.Run("lookups", func(t *testing.T) {
		c := newTestCatalog(t, []string{"Avatar", "Alien"}, rows)

		if c.Len() != 2 {
			t.Fatalf("Len() = %d, want 2", c.Len())
		}
		if i, ok := c.Lookup("Alien"); !ok || i != 1 {
			t.Errorf("Lookup(Alien) = %d, %v", i, ok)
		}
		if _, ok := c.Lookup("alien"); ok {
			t.Error("Lookup is exact, lowercase title should miss")
		}
		if i, ok := c.IndexOf(100); !ok || i != 0 {
			t.Errorf("IndexOf(100) = %d, %v", i, ok)
		}
		if got := c.Titles(); len(got) != 2 || got[0] != "Avatar" || got[1] != "Alien" {
			t.Errorf("Titles() = %v", got)
		}
		if got := testutil.ToFloat64(metrics.CatalogItems); got != 2 {
			t.Errorf("catalog_items = %v, want 2", got)
		}
	})

	t.Run("duplicate title keeps first", func(t *testing.T) {
		c := newTestCatalog(t, []string{"Heat", "Heat"}, rows)
		if i, _ := c.Lookup("Heat"); i != 0 {
			t.Errorf("Lookup(Heat) = %d, want 0", i)
		}
		if len(c.Titles()) != 2 {
			t.Errorf("Titles() should list both entries")
		}
	})

	failures := []struct {
		name   string
		items  []Item
		matrix algorithms.SimilarityMatrix
	}{
		{"row count", []Item{{ID: 1, Title: "A"}}, algorithms.SimilarityMatrix{{1}, {1}}},
		{"not square", []Item{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}, algorithms.SimilarityMatrix{{1, 0}, {0}}},
		{"duplicate id", []Item{{ID: 1, Title: "A"}, {ID: 1, Title: "B"}}, algorithms.SimilarityMatrix(rows)},
		{"empty title", []Item{{ID: 1, Title: "A"}, {ID: 2}}, algorithms.SimilarityMatrix(rows)},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCatalog(tt.items, tt.matrix, zerolog.Nop()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCatalogFromArtifacts(t *testing.T) {
	set := &storage.ArtifactSet{
		Version: 4,
		Items: storage.ItemsArtifact{Items: []storage.ItemRecord{
			{ID: 19995, Title: "Avatar", Tags: []string{"action"}},
			{ID: 285, Title: "Pirates", Tags: []string{"ocean"}},
		}},
		Similarity: storage.SimilarityArtifact{
			ItemIDs: []int{19995, 285},
			Rows:    [][]float32{{1, 0.2}, {0.2, 1}},
		},
	}

	c, err := CatalogFromArtifacts(set, zerolog.Nop())
	if err != nil {
		t.Fatalf("CatalogFromArtifacts: %v", err)
	}
	if c.Version() != 4 {
		t.Errorf("Version() = %d, want 4", c.Version())
	}
	if it := c.Item(1); it.ID != 285 || it.Tags[0] != "ocean" {
		t.Errorf("Item(1) = %+v", it)
	}

	set.Items.Items[1].ID = 19995
	_, err = CatalogFromArtifacts(set, zerolog.Nop())
	if !errors.Is(err, storage.ErrArtifactLoad) {
		t.Errorf("duplicate ids: err = %v, want ErrArtifactLoad", err)
	}
}
