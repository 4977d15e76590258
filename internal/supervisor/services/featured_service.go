// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// FeaturedSampler draws and enriches a random showcase from the catalog.
// *recommend.Service implements it.
type FeaturedSampler interface {
	SampleFeatured(ctx context.Context, n int, rng *rand.Rand) []recommend.EnrichedResult
}

// FeaturedServiceConfig holds configuration for the featured refresher.
type FeaturedServiceConfig struct {
	// SampleSize is how many titles each refresh samples. Zero defers to
	// the sampler's default.
	SampleSize int

	// RefreshInterval is how often the showcase is resampled.
	// Default: 1h
	RefreshInterval time.Duration

	// RefreshTimeout bounds one refresh, including enrichment.
	// Default: 2m
	RefreshTimeout time.Duration

	// Seed seeds the sampler. Zero seeds from the clock.
	Seed int64
}

// FeaturedService keeps a sampled showcase of posters warm for the landing
// page. The first sample is taken as soon as Serve starts.
type FeaturedService struct {
	sampler FeaturedSampler
	config  FeaturedServiceConfig
	logger  zerolog.Logger

	refreshMu sync.Mutex // guards rng
	rng       *rand.Rand

	mu        sync.RWMutex
	current   []recommend.EnrichedResult
	refreshed time.Time
}

// NewFeaturedService creates a featured refresher.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFeaturedService(sampler FeaturedSampler, cfg FeaturedServiceConfig, logger zerolog.Logger) *FeaturedService {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = time.Hour
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = 2 * time.Minute
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &FeaturedService{
		sampler: sampler,
		config:  cfg,
		logger:  logger.With().Str("service", "featured").Logger(),
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // showcase sampling
	}
}

// Serve implements suture.Service.
func (s *FeaturedService) Serve(ctx context.Context) error {
	s.logger.Info().
		Int("sample_size", s.config.SampleSize).
		Dur("refresh_interval", s.config.RefreshInterval).
		Msg("featured service starting")

	s.Refresh(ctx)

	ticker := time.NewTicker(s.config.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("featured service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Refresh resamples the showcase. An empty sample keeps the previous one.
func (s *FeaturedService) Refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, s.config.RefreshTimeout)
	defer cancel()

	start := time.Now()
	s.refreshMu.Lock()
	sample := s.sampler.SampleFeatured(refreshCtx, s.config.SampleSize, s.rng)
	s.refreshMu.Unlock()
	if len(sample) == 0 {
		s.logger.Warn().
			Dur("duration", time.Since(start)).
			Msg("featured sample had no posters; keeping previous showcase")
		return
	}

	s.mu.Lock()
	s.current = sample
	s.refreshed = time.Now()
	s.mu.Unlock()

	s.logger.Debug().
		Int("items", len(sample)).
		Dur("duration", time.Since(start)).
		Msg("featured showcase refreshed")
}

// Featured returns a copy of the current showcase, or nil before the first
// successful refresh.
func (s *FeaturedService) Featured() []recommend.EnrichedResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	out := make([]recommend.EnrichedResult, len(s.current))
	copy(out, s.current)
	return out
}

// RefreshedAt reports when the showcase last changed.
func (s *FeaturedService) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshed
}

// String returns the service name for logging.
func (s *FeaturedService) String() string {
	return "featured-service"
}
