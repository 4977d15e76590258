// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/enrich"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Enricher resolves item ids to display metadata. *enrich.Client implements it.
type Enricher interface {
	EnrichBatch(ctx context.Context, ids []int) map[int]enrich.Result
}

// Service is the query interface consumed by the HTTP API.
type Service struct {
	catalog  *Catalog
	engine   *Engine
	enricher Enricher
	cfg      *Config
	logger   zerolog.Logger
}

// NewService composes a service. cfg nil selects the engine's config.
func NewService(catalog *Catalog, engine *Engine, enricher Enricher, cfg *Config, logger zerolog.Logger) *Service {
	if cfg == nil {
		cfg = engine.Config()
	}
	return &Service{
		catalog:  catalog,
		engine:   engine,
		enricher: enricher,
		cfg:      cfg,
		logger:   logger.With().Str("component", "recommend-service").Logger(),
	}
}

// Catalog returns the underlying catalog.
func (s *Service) Catalog() *Catalog { return s.catalog }

// Config returns the service limits.
func (s *Service) Config() *Config { return s.cfg }

// ListTitles returns every catalog title in catalog order.
func (s *Service) ListTitles() []string {
	return s.catalog.Titles()
}

// GetRecommendations returns up to count enriched neighbors of title.
// An unknown title yields *ItemNotFoundError. When no candidate has a poster
// the response is marked Insufficient instead of failing.
func (s *Service) GetRecommendations(ctx context.Context, title string, count int) (*RecommendationResponse, error) {
	start := time.Now()
	count = s.cfg.ClampCount(count)
	k := s.cfg.OverFetchFor(count)

	candidates, err := s.engine.Recommend(ctx, title, k)
	if err != nil {
		outcome := "error"
		var nf *ItemNotFoundError
		if errors.As(err, &nf) {
			outcome = "not_found"
			s.logger.Info().Str("title", title).Msg("Title not found")
		}
		metrics.RecordRecommendQuery(outcome, time.Since(start))
		return nil, err
	}

	ids := make([]int, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ItemID
	}
	results := s.enricher.EnrichBatch(ctx, ids)

	resp := &RecommendationResponse{
		Query:      title,
		Results:    Assemble(candidates, results, count),
		Requested:  count,
		Candidates: len(candidates),
	}
	if len(resp.Results) == 0 {
		resp.Insufficient = true
		resp.Message = MessageInsufficient
	}
	outcome := "ok"
	if resp.Insufficient {
		outcome = "insufficient"
	}
	metrics.RecordRecommendQuery(outcome, time.Since(start))

	s.logger.Debug().
		Str("title", title).
		Int("count", count).
		Int("over_fetch", k).
		Int("results", len(resp.Results)).
		Dur("duration", time.Since(start)).
		Msg("Recommendations assembled")

	return resp, nil
}

// GetFeatured enriches ids in the given order and keeps those with a poster.
// Ids not in the catalog are skipped.
func (s *Service) GetFeatured(ctx context.Context, ids []int) []EnrichedResult {
	candidates := make([]Candidate, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		idx, ok := s.catalog.IndexOf(id)
		if !ok {
			s.logger.Debug().Int("id", id).Msg("Featured id not in catalog")
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		candidates = append(candidates, Candidate{
			ItemID: id,
			Index:  idx,
			Title:  s.catalog.Item(idx).Title,
		})
	}
	if len(candidates) == 0 {
		return []EnrichedResult{}
	}

	lookup := make([]int, len(candidates))
	for i, c := range candidates {
		lookup[i] = c.ItemID
	}
	results := s.enricher.EnrichBatch(ctx, lookup)
	return Assemble(candidates, results, len(candidates))
}

// SampleFeatured draws n distinct catalog items with rng and enriches them.
// n <= 0 selects FeaturedSampleSize.
func (s *Service) SampleFeatured(ctx context.Context, n int, rng *rand.Rand) []EnrichedResult {
	return s.GetFeatured(ctx, s.SampleIDs(n, rng))
}

// SampleIDs draws n distinct catalog ids with rng.
func (s *Service) SampleIDs(n int, rng *rand.Rand) []int {
	if n <= 0 {
		n = s.cfg.FeaturedSampleSize
	}
	total := s.catalog.Len()
	if n > total {
		n = total
	}

	ids := make([]int, 0, n)
	for _, idx := range rng.Perm(total)[:n] {
		ids = append(ids, s.catalog.Item(idx).ID)
	}
	return ids
}
