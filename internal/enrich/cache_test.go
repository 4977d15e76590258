// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package enrich

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

func openMemoryBadger(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// failingStore errors on every call.
type failingStore struct{}

func (failingStore) GetMany(context.Context, []int) (map[int]Result, error) {
	return nil, errors.New("store down")
}
func (failingStore) SetMany(context.Context, []Result) error { return errors.New("store down") }
func (failingStore) Name() string                            { return "failing" }
func (failingStore) Close() error                            { return nil }

func TestCache_L1(t *testing.T) {
	ctx := context.Background()
	c := NewCache(10, time.Hour, nil, testLogger())

	before := testutil.ToFloat64(metrics.EnrichCache.WithLabelValues("l1", "hit"))

	c.Set(ctx, Result{ID: 1, Title: "Alien", PosterURL: "p"})
	c.Set(ctx, Sentinel(2))

	if r, ok := c.Get(ctx, 1); !ok || r.Title != "Alien" {
		t.Errorf("Get(1) = %+v, %v", r, ok)
	}
	if _, ok := c.Get(ctx, 2); ok {
		t.Error("sentinel must not be cached")
	}
	if after := testutil.ToFloat64(metrics.EnrichCache.WithLabelValues("l1", "hit")); after-before != 1 {
		t.Errorf("l1 hit delta = %v, want 1", after-before)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestBadgerStore(t *testing.T) {
	ctx := context.Background()
	store := NewBadgerStore(openMemoryBadger(t), time.Hour)

	if err := store.SetMany(ctx, []Result{
		{ID: 1, Title: "Alien", PosterURL: "https://img/1.jpg", Overview: "o"},
		{ID: 2, Title: "Aliens", PosterURL: "https://img/2.jpg"},
	}); err != nil {
		t.Fatalf("SetMany() error = %v", err)
	}

	got, err := store.GetMany(ctx, []int{1, 2, 3})
	if err != nil {
		t.Fatalf("GetMany() error = %v", err)
	}
	if len(got) != 2 || got[1].Title != "Alien" || got[2].PosterURL != "https://img/2.jpg" {
		t.Errorf("GetMany() = %+v", got)
	}
	if _, ok := got[3]; ok {
		t.Error("id 3 should be a miss")
	}
}

func TestCache_PromotesFromL2(t *testing.T) {
	ctx := context.Background()
	store := NewBadgerStore(openMemoryBadger(t), time.Hour)

	writer := NewCache(10, time.Hour, store, testLogger())
	writer.Set(ctx, Result{ID: 7, Title: "Heat", PosterURL: "p"})

	// A second process shares only the L2 store.
	reader := NewCache(10, time.Hour, store, testLogger())
	if reader.Len() != 0 {
		t.Fatalf("reader L1 not empty")
	}
	got := reader.GetMany(ctx, []int{7, 8})
	if len(got) != 1 || got[7].Title != "Heat" {
		t.Errorf("GetMany() = %+v", got)
	}
	if reader.Len() != 1 {
		t.Errorf("L2 hit not promoted: Len() = %d", reader.Len())
	}
}

func TestCache_StoreErrorsAreMisses(t *testing.T) {
	ctx := context.Background()
	c := NewCache(10, time.Hour, failingStore{}, testLogger())

	c.Set(ctx, Result{ID: 1, PosterURL: "p"})
	if _, ok := c.Get(ctx, 1); !ok {
		t.Error("L1 should still serve after L2 write failure")
	}
	if _, ok := c.Get(ctx, 99); ok {
		t.Error("L2 read failure should be a miss")
	}
}

func TestNewCacheFromConfig(t *testing.T) {
	ctx := context.Background()

	c, err := NewCacheFromConfig(ctx, CacheConfig{Backend: BackendNone, Size: 10, TTL: time.Minute}, testLogger())
	if err != nil || c == nil {
		t.Fatalf("none backend: %v", err)
	}

	c, err = NewCacheFromConfig(ctx, CacheConfig{Backend: BackendBadger, Size: 10, TTL: time.Minute, Path: t.TempDir()}, testLogger())
	if err != nil {
		t.Fatalf("badger backend: %v", err)
	}
	c.Set(ctx, Result{ID: 1, PosterURL: "p"})
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if _, err := NewCacheFromConfig(ctx, CacheConfig{Backend: "memcached"}, testLogger()); err == nil {
		t.Error("unknown backend should fail")
	}
}
