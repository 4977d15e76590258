// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"net/url"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// Validate checks that the configuration is usable and returns the first problem.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateFeatures(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateEnrich(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("server.environment must be development, staging or production, got %q", c.Server.Environment)
	}
	if !c.Security.RateLimitDisabled && c.Security.RateLimitReqs <= 0 {
		return fmt.Errorf("security.rate_limit_reqs must be positive when rate limiting is enabled")
	}
	return nil
}

func (c *Config) validateFeatures() error {
	if c.Features.MaxFeatures < 0 {
		return fmt.Errorf("features.max_features must be >= 0")
	}
	switch c.Features.StopWords {
	case "english", "none":
	default:
		return fmt.Errorf("features.stop_words must be english or none, got %q", c.Features.StopWords)
	}
	if c.Features.TopCast < 1 {
		return fmt.Errorf("features.top_cast must be >= 1")
	}
	if c.Artifacts.Dir == "" {
		return fmt.Errorf("artifacts.dir is required")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.TargetCount < 1 {
		return fmt.Errorf("recommend.target_count must be >= 1")
	}
	if r.OverFetch <= r.TargetCount {
		return fmt.Errorf("recommend.over_fetch (%d) must exceed recommend.target_count (%d)", r.OverFetch, r.TargetCount)
	}
	if r.MaxOverFetch < r.OverFetch {
		return fmt.Errorf("recommend.max_over_fetch (%d) must be >= recommend.over_fetch (%d)", r.MaxOverFetch, r.OverFetch)
	}
	if r.MaxTargetCount < r.TargetCount {
		return fmt.Errorf("recommend.max_target_count (%d) must be >= recommend.target_count (%d)", r.MaxTargetCount, r.TargetCount)
	}
	if r.FeaturedSampleSize < 0 {
		return fmt.Errorf("recommend.featured_sample_size must be >= 0")
	}
	return nil
}

func (c *Config) validateEnrich() error {
	e := c.Enrich
	if err := validateHTTPURL(e.BaseURL, "enrich.base_url"); err != nil {
		return err
	}
	if err := validateHTTPURL(e.PosterBaseURL, "enrich.poster_base_url"); err != nil {
		return err
	}
	if e.MaxRetries < 2 {
		return fmt.Errorf("enrich.max_retries must be >= 2, got %d", e.MaxRetries)
	}
	if e.Backoff < 0 {
		return fmt.Errorf("enrich.backoff must not be negative")
	}
	if e.Timeout <= 0 {
		return fmt.Errorf("enrich.timeout must be positive")
	}
	if e.Concurrency < 1 {
		return fmt.Errorf("enrich.concurrency must be >= 1")
	}
	if e.RateLimit < 0 {
		return fmt.Errorf("enrich.rate_limit must not be negative")
	}
	switch e.CacheBackend {
	case "none", "":
	case "badger":
		if e.CachePath == "" {
			return fmt.Errorf("enrich.cache_path is required when enrich.cache_backend=badger")
		}
	case "redis":
		if e.RedisAddr == "" {
			return fmt.Errorf("enrich.redis_addr is required when enrich.cache_backend=redis")
		}
	default:
		return fmt.Errorf("enrich.cache_backend must be none, badger or redis, got %q", e.CacheBackend)
	}
	if c.IsProduction() && e.APIKey == "" {
		return fmt.Errorf("TMDB_API_KEY is required in production")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level must be trace, debug, info, warn, error, fatal or disabled, got %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateHTTPURL checks for an absolute http(s) URL without query parameters.
func validateHTTPURL(rawURL, field string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", field, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got %q", field, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s host is required", field)
	}
	if parsed.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters", field)
	}
	return nil
}
