// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// Engine ranks catalog neighbors of a query title.
type Engine struct {
	catalog *Catalog
	cfg     *Config
	logger  zerolog.Logger
}

// NewEngine creates an engine over catalog.
func NewEngine(catalog *Catalog, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		catalog: catalog,
		cfg:     cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// Config returns the engine's limits.
func (e *Engine) Config() *Config { return e.cfg }

// Recommend returns up to k neighbors of title, most similar first.
// The query item is never part of the result. k is clamped to
// [1, MaxOverFetch]; zero selects OverFetch.
func (e *Engine) Recommend(ctx context.Context, title string, k int) ([]Candidate, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q, ok := e.catalog.Lookup(title)
	if !ok {
		return nil, &ItemNotFoundError{Title: title}
	}

	k = e.clampK(k)
	row := e.catalog.Row(q)

	candidates := make([]Candidate, 0, len(row)-1)
	for j, score := range row {
		if j == q {
			continue
		}
		candidates = append(candidates, Candidate{Index: j, Score: float64(score)})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].Score != candidates[b].Score {
			return candidates[a].Score > candidates[b].Score
		}
		return candidates[a].Index < candidates[b].Index
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}
	for i := range candidates {
		it := e.catalog.Item(candidates[i].Index)
		candidates[i].ItemID = it.ID
		candidates[i].Title = it.Title
	}

	e.logger.Debug().
		Str("title", title).
		Int("k", k).
		Int("candidates", len(candidates)).
		Dur("duration", time.Since(start)).
		Msg("Ranked neighbors")

	return candidates, nil
}

func (e *Engine) clampK(k int) int {
	if k <= 0 {
		return e.cfg.OverFetch
	}
	if k > e.cfg.MaxOverFetch {
		return e.cfg.MaxOverFetch
	}
	return k
}
