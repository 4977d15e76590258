// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/enrich"
	"github.com/tomtom215/reelmatch/internal/middleware"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/storage"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

const (
	perfWindow        = 1000
	slowRequestCutoff = time.Second
)

// app holds the wired server components.
type app struct {
	catalog  *recommend.Catalog
	service  *recommend.Service
	client   *enrich.Client
	cache    *enrich.Cache
	featured *services.FeaturedService
	router   http.Handler
}

// newApp loads the latest artifacts and wires the query path. A missing or
// corrupt artifact set is returned as *storage.ArtifactLoadError.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	store, err := storage.NewStore(cfg.Artifacts.Dir)
	if err != nil {
		return nil, &storage.ArtifactLoadError{Artifact: "store", Path: cfg.Artifacts.Dir, Err: err}
	}
	set, err := store.LoadArtifacts(ctx)
	if err != nil {
		return nil, err
	}

	// The vocabulary is informational at query time; a missing file is not fatal.
	vocabularySize := 0
	if vocab, verr := store.LoadVocabulary(ctx, set.Version); verr != nil {
		logger.Warn().Err(verr).Int("version", set.Version).Msg("Vocabulary artifact unavailable")
	} else {
		vocabularySize = len(vocab.Terms)
	}
	logger.Info().
		Int("version", set.Version).
		Time("built_at", set.BuiltAt).
		Int("items", len(set.Items.Items)).
		Int("vocabulary", vocabularySize).
		Msg("Artifacts loaded")

	catalog, err := recommend.CatalogFromArtifacts(set, logger)
	if err != nil {
		return nil, err
	}

	rcfg := recommendConfig(cfg.Recommend)
	engine, err := recommend.NewEngine(catalog, rcfg, logger)
	if err != nil {
		return nil, err
	}

	cache, err := enrich.NewCacheFromConfig(ctx, enrich.CacheConfig{
		Backend: cfg.Enrich.CacheBackend,
		Size:    cfg.Enrich.CacheSize,
		TTL:     cfg.Enrich.CacheTTL,
		Path:    cfg.Enrich.CachePath,
		Redis: enrich.RedisOptions{
			Addr:     cfg.Enrich.RedisAddr,
			Password: cfg.Enrich.RedisPassword,
			DB:       cfg.Enrich.RedisDB,
		},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("enrichment cache: %w", err)
	}

	client, err := enrich.NewClient(enrichConfig(cfg.Enrich), enrich.WithCache(cache), enrich.WithLogger(logger))
	if err != nil {
		_ = cache.Close()
		return nil, fmt.Errorf("enrichment client: %w", err)
	}
	if cfg.Enrich.APIKey == "" {
		logger.Warn().Msg("TMDB_API_KEY is not set; posters will not resolve")
	}

	svc := recommend.NewService(catalog, engine, client, rcfg, logger)

	featured := services.NewFeaturedService(svc, services.FeaturedServiceConfig{
		SampleSize:      cfg.Recommend.FeaturedSampleSize,
		RefreshInterval: cfg.Recommend.FeaturedRefreshInterval,
	}, logger)

	perf := middleware.NewPerformanceMonitor(perfWindow, slowRequestCutoff, logger)

	handler := api.NewHandler(svc,
		api.WithFeaturedSource(featured),
		api.WithPerformanceMonitor(perf),
		api.WithQueryTimeout(cfg.Server.Timeout),
		api.WithLogger(logger),
		api.WithHealthInfo(func() api.HealthInfo {
			return api.HealthInfo{
				CatalogItems:    catalog.Len(),
				ArtifactVersion: catalog.Version(),
				VocabularySize:  vocabularySize,
				BreakerState:    client.BreakerState(),
			}
		}),
	)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security)))

	return &app{
		catalog:  catalog,
		service:  svc,
		client:   client,
		cache:    cache,
		featured: featured,
		router:   router,
	}, nil
}

// Close releases the enrichment cache.
func (a *app) Close() error {
	return a.cache.Close()
}

func recommendConfig(c config.RecommendConfig) *recommend.Config {
	return &recommend.Config{
		OverFetch:          c.OverFetch,
		TargetCount:        c.TargetCount,
		MaxOverFetch:       c.MaxOverFetch,
		MaxTargetCount:     c.MaxTargetCount,
		FeaturedSampleSize: c.FeaturedSampleSize,
	}
}

func enrichConfig(c config.EnrichConfig) enrich.Config {
	return enrich.Config{
		BaseURL:       c.BaseURL,
		APIKey:        c.APIKey,
		PosterBaseURL: c.PosterBaseURL,
		Timeout:       c.Timeout,
		MaxRetries:    c.MaxRetries,
		Backoff:       c.Backoff,
		Concurrency:   c.Concurrency,
		RateLimit:     c.RateLimit,
		RateBurst:     c.RateBurst,
	}
}
