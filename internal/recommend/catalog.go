// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend/algorithms"
	"github.com/tomtom215/reelmatch/internal/recommend/storage"
)

// Catalog is the immutable query-time view of the pipeline output.
// It is safe for concurrent use because nothing mutates it after NewCatalog.
type Catalog struct {
	items   []Item
	titles  []string
	matrix  algorithms.SimilarityMatrix
	byID    map[int]int
	byTitle map[string]int
	version int
}

// NewCatalog validates items against the matrix and builds the lookup maps.
// Duplicate titles resolve to the first occurrence.
func NewCatalog(items []Item, matrix algorithms.SimilarityMatrix, logger zerolog.Logger) (*Catalog, error) {
	n := len(items)
	if matrix.Len() != n {
		return nil, fmt.Errorf("similarity matrix has %d rows for %d items", matrix.Len(), n)
	}
	if err := matrix.Validate(); err != nil {
		return nil, fmt.Errorf("similarity matrix: %w", err)
	}

	c := &Catalog{
		items:   make([]Item, n),
		titles:  make([]string, n),
		matrix:  matrix,
		byID:    make(map[int]int, n),
		byTitle: make(map[string]int, n),
	}
	copy(c.items, items)

	dupTitles := 0
	for i, it := range c.items {
		if it.Title == "" {
			return nil, fmt.Errorf("item %d (id %d) has no title", i, it.ID)
		}
		if prev, ok := c.byID[it.ID]; ok {
			return nil, fmt.Errorf("duplicate item id %d at index %d and %d", it.ID, prev, i)
		}
		c.byID[it.ID] = i
		c.titles[i] = it.Title

		if prev, ok := c.byTitle[it.Title]; ok {
			dupTitles++
			logger.Debug().
				Str("title", it.Title).
				Int("kept_index", prev).
				Int("skipped_index", i).
				Msg("Duplicate title, lookup resolves to first occurrence")
			continue
		}
		c.byTitle[it.Title] = i
	}

	if dupTitles > 0 {
		logger.Warn().Int("duplicates", dupTitles).Msg("Catalog contains duplicate titles")
	}

	metrics.CatalogItems.Set(float64(n))
	return c, nil
}

// CatalogFromArtifacts builds a catalog from a loaded artifact set.
func CatalogFromArtifacts(set *storage.ArtifactSet, logger zerolog.Logger) (*Catalog, error) {
	items := make([]Item, len(set.Items.Items))
	for i, rec := range set.Items.Items {
		items[i] = Item{ID: rec.ID, Title: rec.Title, Tags: rec.Tags}
	}

	c, err := NewCatalog(items, algorithms.SimilarityMatrix(set.Similarity.Rows), logger)
	if err != nil {
		return nil, &storage.ArtifactLoadError{
			Artifact: storage.ItemsArtifactName,
			Path:     fmt.Sprintf("version %d", set.Version),
			Err:      err,
		}
	}
	c.version = set.Version
	return c, nil
}

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Version returns the artifact version the catalog was loaded from, 0 if built in memory.
func (c *Catalog) Version() int { return c.version }

// Titles returns the titles in catalog order. The slice must not be modified.
func (c *Catalog) Titles() []string { return c.titles }

// Lookup returns the index of title.
func (c *Catalog) Lookup(title string) (int, bool) {
	i, ok := c.byTitle[title]
	return i, ok
}

// IndexOf returns the index of the item with the given id.
func (c *Catalog) IndexOf(id int) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// Item returns the item at index i.
func (c *Catalog) Item(i int) Item { return c.items[i] }

// Row returns the similarity row of index i.
func (c *Catalog) Row(i int) []float32 { return c.matrix.Row(i) }
