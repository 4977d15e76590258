// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package enrich

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Cache backends.
const (
	BackendNone   = "none"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

const keyPrefix = "reelmatch:enrich:"

func cacheKey(id int) string { return keyPrefix + strconv.Itoa(id) }

// Store is a shared or persistent second cache tier.
type Store interface {
	// GetMany returns the cached results among ids. Missing ids are absent.
	GetMany(ctx context.Context, ids []int) (map[int]Result, error)
	SetMany(ctx context.Context, results []Result) error
	Name() string
	Close() error
}

// Cache is a two-tier result cache: an in-process LRU in front of an
// optional Store. Store errors are logged and treated as misses.
type Cache struct {
	l1     *cache.LRU[int, Result]
	l2     Store
	logger zerolog.Logger
}

// NewCache builds a cache with an LRU of size entries and the given TTL.
// l2 may be nil.
func NewCache(size int, ttl time.Duration, l2 Store, logger zerolog.Logger) *Cache {
	return &Cache{
		l1:     cache.NewLRU[int, Result](size, ttl),
		l2:     l2,
		logger: logger.With().Str("component", "enrich-cache").Logger(),
	}
}

// Get returns the cached result for id.
func (c *Cache) Get(ctx context.Context, id int) (Result, bool) {
	found := c.GetMany(ctx, []int{id})
	r, ok := found[id]
	return r, ok
}

// GetMany returns every cached result among ids, promoting L2 hits into L1.
func (c *Cache) GetMany(ctx context.Context, ids []int) map[int]Result {
	out := make(map[int]Result, len(ids))
	var missed []int
	for _, id := range ids {
		if r, ok := c.l1.Get(id); ok {
			out[id] = r
			metrics.RecordEnrichCache("l1", "hit")
			continue
		}
		metrics.RecordEnrichCache("l1", "miss")
		missed = append(missed, id)
	}
	if c.l2 == nil || len(missed) == 0 {
		return out
	}

	found, err := c.l2.GetMany(ctx, missed)
	if err != nil {
		c.logger.Warn().Err(err).Str("backend", c.l2.Name()).Msg("Cache read failed")
		metrics.RecordEnrichCache(c.l2.Name(), "error")
		return out
	}
	for _, id := range missed {
		r, ok := found[id]
		if !ok || r.Sentinel || r.ID != id {
			metrics.RecordEnrichCache(c.l2.Name(), "miss")
			continue
		}
		metrics.RecordEnrichCache(c.l2.Name(), "hit")
		c.l1.Add(id, r)
		out[id] = r
	}
	return out
}

// Set stores r in both tiers. Sentinel results are never cached.
func (c *Cache) Set(ctx context.Context, r Result) {
	if r.Sentinel {
		return
	}
	c.l1.Add(r.ID, r)
	if c.l2 == nil {
		return
	}
	if err := c.l2.SetMany(ctx, []Result{r}); err != nil {
		c.logger.Warn().Err(err).Str("backend", c.l2.Name()).Int("movie_id", r.ID).Msg("Cache write failed")
		metrics.RecordEnrichCache(c.l2.Name(), "error")
	}
}

// Len returns the number of L1 entries.
func (c *Cache) Len() int { return c.l1.Len() }

// Close releases the L2 store.
func (c *Cache) Close() error {
	if c.l2 == nil {
		return nil
	}
	return c.l2.Close()
}

// BadgerStore persists results in BadgerDB with a per-entry TTL.
type BadgerStore struct {
	db     *badger.DB
	ttl    time.Duration
	ownsDB bool
}

// OpenBadgerStore opens (or creates) a BadgerDB at path.
func OpenBadgerStore(path string, ttl time.Duration) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for enrichment cache: %w", err)
	}
	s := NewBadgerStore(db, ttl)
	s.ownsDB = true
	return s, nil
}

// NewBadgerStore wraps an open database. Close does not close db.
func NewBadgerStore(db *badger.DB, ttl time.Duration) *BadgerStore {
	return &BadgerStore{db: db, ttl: ttl}
}

func (s *BadgerStore) Name() string { return BackendBadger }

func (s *BadgerStore) GetMany(ctx context.Context, ids []int) (map[int]Result, error) {
	out := make(map[int]Result, len(ids))
	err := s.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := txn.Get([]byte(cacheKey(id)))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return fmt.Errorf("get %d: %w", id, err)
			}
			var r Result
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				// Unreadable entries are misses.
				continue
			}
			out[id] = r
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BadgerStore) SetMany(ctx context.Context, results []Result) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, r := range results {
			data, err := json.Marshal(r)
			if err != nil {
				return fmt.Errorf("marshal %d: %w", r.ID, err)
			}
			e := badger.NewEntry([]byte(cacheKey(r.ID)), data)
			if s.ttl > 0 {
				e = e.WithTTL(s.ttl)
			}
			if err := txn.SetEntry(e); err != nil {
				return fmt.Errorf("set %d: %w", r.ID, err)
			}
		}
		return nil
	})
}

func (s *BadgerStore) Close() error {
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}

// RedisStore shares results between replicas through Redis.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOptions configures NewRedisClient.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// NewRedisClient creates a go-redis client and pings it.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		ReadTimeout:  opts.Timeout,
		WriteTimeout: opts.Timeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

// NewRedisStore wraps client. Close closes the client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Name() string { return BackendRedis }

func (s *RedisStore) GetMany(ctx context.Context, ids []int) (map[int]Result, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}

	out := make(map[int]Result, len(values))
	for i, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var r Result
		if err := json.Unmarshal([]byte(str), &r); err != nil {
			continue
		}
		out[ids[i]] = r
	}
	return out, nil
}

func (s *RedisStore) SetMany(ctx context.Context, results []Result) error {
	pipe := s.client.Pipeline()
	for _, r := range results {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("marshal %d: %w", r.ID, err)
		}
		pipe.Set(ctx, cacheKey(r.ID), data, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

// CacheConfig selects and configures the cache tiers.
type CacheConfig struct {
	Backend string
	Size    int
	TTL     time.Duration

	// Path is the BadgerDB directory.
	Path  string
	Redis RedisOptions
}

// NewCacheFromConfig builds the L1 cache and the configured L2 store.
func NewCacheFromConfig(ctx context.Context, cfg CacheConfig, logger zerolog.Logger) (*Cache, error) {
	var l2 Store
	switch cfg.Backend {
	case "", BackendNone:
	case BackendBadger:
		s, err := OpenBadgerStore(cfg.Path, cfg.TTL)
		if err != nil {
			return nil, err
		}
		l2 = s
	case BackendRedis:
		client, err := NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		l2 = NewRedisStore(client, cfg.TTL)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
	return NewCache(cfg.Size, cfg.TTL, l2, logger), nil
}
