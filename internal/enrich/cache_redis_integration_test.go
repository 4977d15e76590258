// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

//go:build integration

package enrich

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"

	"github.com/tomtom215/reelmatch/internal/testinfra"
)

func TestRedisStore_Integration(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testinfra.NewRedisContainer(ctx)
	testcontainers.CleanupContainer(t, container)
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}

	cache, err := NewCacheFromConfig(ctx, CacheConfig{
		Backend: BackendRedis,
		Size:    10,
		TTL:     time.Minute,
		Redis:   RedisOptions{Addr: container.Addr, Timeout: 5 * time.Second},
	}, testLogger())
	if err != nil {
		t.Fatalf("NewCacheFromConfig() error = %v", err)
	}
	defer cache.Close()

	cache.Set(ctx, Result{ID: 19995, Title: "Avatar", PosterURL: "https://img/avatar.jpg"})
	cache.Set(ctx, Sentinel(1))

	client, err := NewRedisClient(ctx, RedisOptions{Addr: container.Addr})
	if err != nil {
		t.Fatal(err)
	}
	store := NewRedisStore(client, time.Minute)
	defer store.Close()

	got, err := store.GetMany(ctx, []int{19995, 1, 2})
	if err != nil {
		t.Fatalf("GetMany() error = %v", err)
	}
	if len(got) != 1 || got[19995].Title != "Avatar" {
		t.Errorf("GetMany() = %+v", got)
	}

	ttl, err := client.TTL(ctx, cacheKey(19995)).Result()
	if err != nil {
		t.Fatal(err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("TTL = %v, want (0, 1m]", ttl)
	}
}
