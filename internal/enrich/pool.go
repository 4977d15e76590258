// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package enrich

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// EnrichBatch enriches ids concurrently with at most Concurrency calls in
// flight and returns one result per distinct id. Cached results are read in
// one batch before any worker starts.
func (c *Client) EnrichBatch(ctx context.Context, ids []int) map[int]Result {
	unique := dedupe(ids)
	out := make(map[int]Result, len(unique))
	if len(unique) == 0 {
		return out
	}

	pending := unique
	if c.cache != nil {
		for id, r := range c.cache.GetMany(ctx, unique) {
			out[id] = r
		}
		pending = make([]int, 0, len(unique))
		for _, id := range unique {
			if _, ok := out[id]; !ok {
				pending = append(pending, id)
			}
		}
	}
	if len(pending) == 0 {
		return out
	}

	limit := c.cfg.Concurrency
	if limit > len(pending) {
		limit = len(pending)
	}

	// Each worker writes only its own slot.
	slots := make([]Result, len(pending))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, id := range pending {
		g.Go(func() error {
			metrics.EnrichInFlight.Inc()
			defer metrics.EnrichInFlight.Dec()
			slots[i] = c.enrich(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	for i, id := range pending {
		out[id] = slots[i]
	}
	return out
}

func dedupe(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
