// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package enrich fetches poster, title and overview metadata for catalog
// items from the TMDb HTTP API.
//
// Enrichment never fails a query. Transient failures are retried with a
// fixed backoff and end in a sentinel result; malformed or non-retryable
// responses degrade field by field.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

// DefaultOverview replaces a missing overview.
const DefaultOverview = "No overview available."

const (
	maxBodySize      = 1 << 20
	maxErrorBodySize = 4 << 10
)

// Config configures a Client.
type Config struct {
	BaseURL       string
	APIKey        string
	PosterBaseURL string

	// Timeout bounds a single attempt.
	Timeout     time.Duration
	MaxRetries  int
	Backoff     time.Duration
	Concurrency int

	// RateLimit is requests per second; <= 0 disables limiting.
	RateLimit float64
	RateBurst int
}

// DefaultConfig returns the public TMDb endpoints and the default limits.
func DefaultConfig() Config {
	return Config{
		BaseURL:       "https://api.themoviedb.org/3",
		PosterBaseURL: "https://image.tmdb.org/t/p/w500/",
		Timeout:       10 * time.Second,
		MaxRetries:    MinRetries,
		Backoff:       500 * time.Millisecond,
		Concurrency:   10,
		RateLimit:     40,
		RateBurst:     10,
	}
}

// Result is the enrichment of one item. An empty PosterURL means no usable
// poster. Sentinel marks the placeholder returned after retries ran out.
type Result struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	PosterURL string `json:"poster_url"`
	Overview  string `json:"overview"`
	Sentinel  bool   `json:"sentinel,omitempty"`
}

// HasPoster reports whether the result carries a usable poster.
func (r Result) HasPoster() bool {
	return !r.Sentinel && r.PosterURL != ""
}

// Sentinel is the placeholder for an item whose fetch was exhausted.
func Sentinel(id int) Result {
	return Result{ID: id, Sentinel: true}
}

// degraded is the result for a non-retryable failure.
func degraded(id int) Result {
	return Result{ID: id, Overview: DefaultOverview}
}

// tmdbMovie holds the fields read from /movie/{id}. Pointers distinguish a
// missing field from an empty one.
type tmdbMovie struct {
	Title      *string `json:"title"`
	Overview   *string `json:"overview"`
	PosterPath *string `json:"poster_path"`
}

// Client talks to TMDb. It is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	retry      RetryPolicy
	limiter    *rate.Limiter
	breaker    *breaker
	cache      *Cache
	logger     zerolog.Logger

	breakerSettings BreakerSettings
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the shared HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryPolicy replaces the retry policy derived from Config.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// WithCache enables result caching.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithRateLimiter replaces the limiter derived from Config.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithBreakerSettings replaces the default circuit breaker settings.
func WithBreakerSettings(s BreakerSettings) Option {
	return func(c *Client) { c.breakerSettings = s }
}

// NewClient validates cfg and builds a client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 10
	}

	c := &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: cfg.Concurrency,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		retry:           RetryPolicy{MaxRetries: cfg.MaxRetries, Backoff: cfg.Backoff, Clock: realClock{}},
		logger:          zerolog.Nop(),
		breakerSettings: DefaultBreakerSettings(),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	for _, opt := range opts {
		opt(c)
	}
	if err := c.retry.Validate(); err != nil {
		return nil, err
	}

	c.logger = c.logger.With().Str("component", "enrich").Logger()
	c.breaker = newBreaker(c.breakerSettings, c.logger)
	return c, nil
}

// Concurrency returns the batch worker limit.
func (c *Client) Concurrency() int { return c.cfg.Concurrency }

// BreakerState returns the circuit breaker state name.
func (c *Client) BreakerState() string { return c.breaker.State() }

// Enrich fetches metadata for one item. It never returns an error: retry
// exhaustion yields Sentinel(id) and non-retryable failures yield a result
// without a poster.
func (c *Client) Enrich(ctx context.Context, id int) Result {
	if c.cache != nil {
		if r, ok := c.cache.Get(ctx, id); ok {
			return r
		}
	}
	return c.enrich(ctx, id)
}

// enrich fetches id from TMDb and stores a successful result. It does not
// read the cache; callers have already looked.
func (c *Client) enrich(ctx context.Context, id int) Result {
	start := time.Now()
	var movie *tmdbMovie
	attempts, err := c.retry.Do(ctx, func(ctx context.Context) error {
		m, err := c.fetch(ctx, id)
		if err == nil {
			movie = m
		}
		return err
	})
	metrics.EnrichAttempts.Add(float64(attempts))

	var (
		result  Result
		outcome string
		mre     *MalformedResponseError
		se      *StatusError
	)
	switch {
	case err == nil:
		result = c.toResult(id, movie)
		outcome = "ok"
		if result.PosterURL == "" {
			outcome = "no_poster"
		}
		if c.cache != nil {
			c.cache.Set(ctx, result)
		}
	case errors.As(err, &mre):
		result = degraded(id)
		outcome = "malformed"
		c.logger.Warn().Err(err).Int("movie_id", id).Msg("Malformed TMDb response")
	case errors.As(err, &se):
		result = degraded(id)
		outcome = "not_found"
		if se.StatusCode != http.StatusNotFound {
			outcome = "client_error"
			c.logger.Warn().Int("movie_id", id).Int("status", se.StatusCode).Str("body", se.Body).Msg("TMDb rejected request")
		}
	default:
		result = Sentinel(id)
		outcome = "exhausted"
		c.logger.Warn().Err(err).Int("movie_id", id).Int("attempts", attempts).Msg("Enrichment retries exhausted")
	}

	metrics.RecordEnrich(outcome, time.Since(start))
	return result
}

// fetch performs one rate-limited, breaker-guarded attempt.
func (c *Client) fetch(ctx context.Context, id int) (*tmdbMovie, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return c.breaker.execute(id, func() (*tmdbMovie, error) {
		return c.doRequest(ctx, id)
	})
}

func (c *Client) doRequest(ctx context.Context, id int) (*tmdbMovie, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.movieURL(id), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransientFetchError{ID: id, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &TransientFetchError{ID: id, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &StatusError{ID: id, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var movie tmdbMovie
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&movie); err != nil {
		// A body cut short by the attempt deadline is a timeout, not a bad payload.
		if ctx.Err() != nil {
			return nil, &TransientFetchError{ID: id, Err: err}
		}
		return nil, &MalformedResponseError{ID: id, Err: err}
	}
	return &movie, nil
}

func (c *Client) movieURL(id int) string {
	q := url.Values{}
	q.Set("api_key", c.cfg.APIKey)
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/movie/" + strconv.Itoa(id) + "?" + q.Encode()
}

// toResult applies per-field degradation to a decoded movie.
func (c *Client) toResult(id int, m *tmdbMovie) Result {
	r := Result{ID: id, Overview: DefaultOverview}
	if m == nil {
		return r
	}
	if m.Title != nil {
		r.Title = *m.Title
	}
	if m.Overview != nil && strings.TrimSpace(*m.Overview) != "" {
		r.Overview = *m.Overview
	}
	if m.PosterPath != nil && *m.PosterPath != "" {
		r.PosterURL = JoinPosterURL(c.cfg.PosterBaseURL, *m.PosterPath)
	}
	return r
}

// JoinPosterURL joins base and path with exactly one slash.
func JoinPosterURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
