// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package services

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/reelmatch/internal/recommend"
)

// fakeSampler returns its queued samples in order, then repeats the last.
type fakeSampler struct {
	mu      sync.Mutex
	samples [][]recommend.EnrichedResult
	calls   int
	sizes   []int
}

func (f *fakeSampler) SampleFeatured(_ context.Context, n int, _ *rand.Rand) []recommend.EnrichedResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sizes = append(f.sizes, n)
	idx := min(f.calls, len(f.samples)-1)
	f.calls++
	if idx < 0 {
		return nil
	}
	return f.samples[idx]
}

func (f *fakeSampler) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func showcase(ids ...int) []recommend.EnrichedResult {
	out := make([]recommend.EnrichedResult, len(ids))
	for i, id := range ids {
		out[i] = recommend.EnrichedResult{ID: id, PosterURL: "https://img.example/p.jpg", Rank: i + 1}
	}
	return out
}

func TestFeaturedService_Interface(t *testing.T) {
	var _ suture.Service = (*FeaturedService)(nil)
}

func TestNewFeaturedService_Defaults(t *testing.T) {
	svc := NewFeaturedService(&fakeSampler{}, FeaturedServiceConfig{}, zerolog.Nop())

	if svc.config.RefreshInterval != time.Hour {
		t.Errorf("RefreshInterval = %v, want 1h", svc.config.RefreshInterval)
	}
	if svc.config.RefreshTimeout != 2*time.Minute {
		t.Errorf("RefreshTimeout = %v, want 2m", svc.config.RefreshTimeout)
	}
	if svc.String() != "featured-service" {
		t.Errorf("String() = %q", svc.String())
	}
	if svc.Featured() != nil {
		t.Error("Featured() should be nil before the first refresh")
	}
}

func TestFeaturedService_Refresh(t *testing.T) {
	t.Run("stores sample and passes size", func(t *testing.T) {
		sampler := &fakeSampler{samples: [][]recommend.EnrichedResult{showcase(1, 2, 3)}}
		svc := NewFeaturedService(sampler, FeaturedServiceConfig{SampleSize: 12, Seed: 1}, zerolog.Nop())

		svc.Refresh(context.Background())

		got := svc.Featured()
		if len(got) != 3 || got[0].ID != 1 {
			t.Fatalf("Featured() = %+v", got)
		}
		if sampler.sizes[0] != 12 {
			t.Errorf("sample size = %d, want 12", sampler.sizes[0])
		}
		if svc.RefreshedAt().IsZero() {
			t.Error("RefreshedAt not set")
		}
	})

	t.Run("empty sample keeps previous showcase", func(t *testing.T) {
		sampler := &fakeSampler{samples: [][]recommend.EnrichedResult{showcase(7), {}}}
		svc := NewFeaturedService(sampler, FeaturedServiceConfig{Seed: 1}, zerolog.Nop())

		svc.Refresh(context.Background())
		first := svc.RefreshedAt()
		svc.Refresh(context.Background())

		got := svc.Featured()
		if len(got) != 1 || got[0].ID != 7 {
			t.Errorf("Featured() = %+v, want previous showcase", got)
		}
		if !svc.RefreshedAt().Equal(first) {
			t.Error("RefreshedAt changed on empty sample")
		}
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		sampler := &fakeSampler{samples: [][]recommend.EnrichedResult{showcase(1, 2)}}
		svc := NewFeaturedService(sampler, FeaturedServiceConfig{Seed: 1}, zerolog.Nop())
		svc.Refresh(context.Background())

		got := svc.Featured()
		got[0].ID = 99

		if svc.Featured()[0].ID != 1 {
			t.Error("caller mutation leaked into the showcase")
		}
	})
}

func TestFeaturedService_Serve(t *testing.T) {
	t.Run("samples on start and on each tick", func(t *testing.T) {
		sampler := &fakeSampler{samples: [][]recommend.EnrichedResult{showcase(1), showcase(2)}}
		svc := NewFeaturedService(sampler, FeaturedServiceConfig{
			RefreshInterval: 20 * time.Millisecond,
			Seed:            1,
		}, zerolog.Nop())

		ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
		defer cancel()

		err := svc.Serve(ctx)
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Serve() = %v, want deadline exceeded", err)
		}
		if sampler.Calls() < 2 {
			t.Errorf("sampler calls = %d, want at least 2", sampler.Calls())
		}
		if got := svc.Featured(); len(got) != 1 || got[0].ID != 2 {
			t.Errorf("Featured() = %+v, want the latest sample", got)
		}
	})

	t.Run("stops on cancel", func(t *testing.T) {
		svc := NewFeaturedService(&fakeSampler{}, FeaturedServiceConfig{Seed: 1}, zerolog.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want canceled", err)
			}
		case <-time.After(time.Second):
			t.Fatal("Serve did not return after cancel")
		}
	})
}
