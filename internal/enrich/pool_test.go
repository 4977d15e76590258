// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// concurrencyServer tracks the peak number of requests in flight.
type concurrencyServer struct {
	inFlight atomic.Int32
	peak     atomic.Int32
	hits     atomic.Int32
}

func (s *concurrencyServer) handler(delay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		n := s.inFlight.Add(1)
		defer s.inFlight.Add(-1)
		for {
			p := s.peak.Load()
			if n <= p || s.peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(delay)

		id := strings.TrimPrefix(r.URL.Path, "/movie/")
		poster := `"/` + id + `.jpg"`
		if id == "13" {
			poster = "null"
		}
		jsonHandler(http.StatusOK, `{"title": "Movie `+id+`", "overview": "x", "poster_path": `+poster+`}`)(w, r)
	}
}

func TestEnrichBatch_BoundedConcurrency(t *testing.T) {
	for _, limit := range []int{1, 3, 10} {
		t.Run("limit "+strconv.Itoa(limit), func(t *testing.T) {
			cs := &concurrencyServer{}
			srv := httptest.NewServer(cs.handler(15 * time.Millisecond))
			defer srv.Close()

			cfg := DefaultConfig()
			cfg.BaseURL = srv.URL
			cfg.RateLimit = 0
			cfg.Concurrency = limit
			c, err := NewClient(cfg, WithRetryPolicy(RetryPolicy{MaxRetries: 2, Clock: &fakeClock{}}))
			if err != nil {
				t.Fatal(err)
			}

			ids := make([]int, 0, 25)
			for i := 1; i <= 25; i++ {
				ids = append(ids, i)
			}
			results := c.EnrichBatch(context.Background(), ids)

			if peak := cs.peak.Load(); peak > int32(limit) {
				t.Errorf("peak in-flight = %d, exceeds limit %d", peak, limit)
			}
			if len(results) != 25 {
				t.Fatalf("len(results) = %d, want 25", len(results))
			}
			for _, id := range ids {
				r, ok := results[id]
				if !ok || r.ID != id {
					t.Errorf("result for %d = %+v, %v", id, r, ok)
				}
			}
			if results[13].HasPoster() {
				t.Error("id 13 should have no poster")
			}
			if !results[14].HasPoster() {
				t.Error("id 14 should have a poster")
			}
		})
	}
}

func TestEnrichBatch_DedupesAndUsesCache(t *testing.T) {
	cs := &concurrencyServer{}
	srv := httptest.NewServer(cs.handler(0))
	defer srv.Close()

	cache := NewCache(100, time.Hour, nil, testLogger())
	c := newTestClient(t, srv, &fakeClock{}, WithCache(cache))

	results := c.EnrichBatch(context.Background(), []int{5, 5, 6, 5, 6})
	if len(results) != 2 {
		t.Errorf("len(results) = %d, want 2", len(results))
	}
	if cs.hits.Load() != 2 {
		t.Errorf("hits = %d, want 2", cs.hits.Load())
	}

	c.EnrichBatch(context.Background(), []int{5, 6, 7})
	if cs.hits.Load() != 3 {
		t.Errorf("hits after cached batch = %d, want 3", cs.hits.Load())
	}
}

// countingStore is an always-empty Store that counts lookups.
type countingStore struct {
	gets atomic.Int32
}

func (s *countingStore) GetMany(context.Context, []int) (map[int]Result, error) {
	s.gets.Add(1)
	return map[int]Result{}, nil
}
func (s *countingStore) SetMany(context.Context, []Result) error { return nil }
func (s *countingStore) Name() string                            { return "counting" }
func (s *countingStore) Close() error                            { return nil }

func TestEnrichBatch_ReadsCacheOnce(t *testing.T) {
	cs := &concurrencyServer{}
	srv := httptest.NewServer(cs.handler(0))
	defer srv.Close()

	store := &countingStore{}
	cache := NewCache(100, time.Hour, store, testLogger())
	c := newTestClient(t, srv, &fakeClock{}, WithCache(cache))

	l1Before := testutil.ToFloat64(metrics.EnrichCache.WithLabelValues("l1", "miss"))
	l2Before := testutil.ToFloat64(metrics.EnrichCache.WithLabelValues("counting", "miss"))

	results := c.EnrichBatch(context.Background(), []int{11, 12, 13})
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	if got := store.gets.Load(); got != 1 {
		t.Errorf("store lookups = %d, want 1", got)
	}
	if d := testutil.ToFloat64(metrics.EnrichCache.WithLabelValues("l1", "miss")) - l1Before; d != 3 {
		t.Errorf("l1 miss delta = %v, want 3", d)
	}
	if d := testutil.ToFloat64(metrics.EnrichCache.WithLabelValues("counting", "miss")) - l2Before; d != 3 {
		t.Errorf("l2 miss delta = %v, want 3", d)
	}
}

func TestEnrichBatch_Empty(t *testing.T) {
	c, err := NewClient(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	got := c.EnrichBatch(context.Background(), nil)
	if got == nil || len(got) != 0 {
		t.Errorf("EnrichBatch(nil) = %#v, want empty map", got)
	}
}
