// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"sync"
	"testing"
	"time"
)

// fakeNow lets a test move the cache clock forward.
type fakeNow struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeNow) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeNow) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func TestLRU_BasicOperations(t *testing.T) {
	c := NewLRU[int, string](3, time.Minute)

	c.Add(19995, "Avatar")
	c.Add(285, "Pirates of the Caribbean: At World's End")

	if v, ok := c.Get(19995); !ok || v != "Avatar" {
		t.Errorf("Get(19995) = %q, %v; want Avatar, true", v, ok)
	}
	if _, ok := c.Get(1); ok {
		t.Error("Get(1) should miss")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	hits, misses, size := c.Stats()
	if hits != 1 || misses != 1 || size != 2 {
		t.Errorf("Stats() = %d, %d, %d; want 1, 1, 2", hits, misses, size)
	}
}

func TestLRU_Eviction(t *testing.T) {
	c := NewLRU[string, int](3, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)
	c.Get("a") // a becomes most recently used
	c.Add("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to be evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("expected %s to be present", k)
		}
	}
}

func TestLRU_TTLExpiration(t *testing.T) {
	clock := &fakeNow{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU[int, int](10, time.Minute)
	c.now = clock.Now

	c.Add(1, 100)
	c.Add(2, 200)

	clock.Advance(30 * time.Second)
	if _, ok := c.Get(1); !ok {
		t.Fatal("entry expired too early")
	}

	clock.Advance(31 * time.Second)
	if _, ok := c.Get(1); ok {
		t.Error("entry 1 should have expired")
	}
	if removed := c.CleanupExpired(); removed != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", removed)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestLRU_UpdateRefreshesTTL(t *testing.T) {
	clock := &fakeNow{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU[int, int](10, time.Minute)
	c.now = clock.Now

	c.Add(1, 100)
	clock.Advance(50 * time.Second)
	c.Add(1, 101)
	clock.Advance(50 * time.Second)

	v, ok := c.Get(1)
	if !ok || v != 101 {
		t.Errorf("Get(1) = %d, %v; want 101, true", v, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRU_RemoveAndClear(t *testing.T) {
	c := NewLRU[int, int](5, time.Minute)
	c.Add(1, 1)
	c.Add(2, 2)

	if !c.Remove(1) {
		t.Error("Remove(1) = false, want true")
	}
	if c.Remove(1) {
		t.Error("second Remove(1) = true, want false")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	c.Add(3, 3)
	if _, ok := c.Get(3); !ok {
		t.Error("cache unusable after Clear")
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int, int](100, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				c.Add(g*1000+i, i)
				c.Get(g*1000 + i/2)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len() = %d, exceeds capacity 100", c.Len())
	}
}
