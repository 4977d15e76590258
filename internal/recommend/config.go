// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"fmt"
)

// Config holds the query limits.
type Config struct {
	// OverFetch is the default number of neighbors enriched per query.
	// It must exceed TargetCount so that items without posters can be dropped.
	OverFetch int `json:"over_fetch"`

	// TargetCount is the default number of results returned.
	TargetCount int `json:"target_count"`

	// MaxOverFetch caps neighbors enriched per query.
	MaxOverFetch int `json:"max_over_fetch"`

	// MaxTargetCount caps the count a caller may request.
	MaxTargetCount int `json:"max_target_count"`

	// FeaturedSampleSize is how many random items the showcase samples.
	FeaturedSampleSize int `json:"featured_sample_size"`
}

// DefaultConfig returns an over-fetch of 15 for 5 results.
func DefaultConfig() *Config {
	return &Config{
		OverFetch:          15,
		TargetCount:        5,
		MaxOverFetch:       30,
		MaxTargetCount:     20,
		FeaturedSampleSize: 12,
	}
}

// Validate checks limits for consistency.
func (c *Config) Validate() error {
	var errs []error
	if c.TargetCount < 1 {
		errs = append(errs, fmt.Errorf("target_count must be >= 1, got %d", c.TargetCount))
	}
	if c.OverFetch <= c.TargetCount {
		errs = append(errs, fmt.Errorf("over_fetch (%d) must exceed target_count (%d)", c.OverFetch, c.TargetCount))
	}
	if c.MaxOverFetch < c.OverFetch {
		errs = append(errs, fmt.Errorf("max_over_fetch (%d) must be >= over_fetch (%d)", c.MaxOverFetch, c.OverFetch))
	}
	if c.MaxTargetCount < c.TargetCount {
		errs = append(errs, fmt.Errorf("max_target_count (%d) must be >= target_count (%d)", c.MaxTargetCount, c.TargetCount))
	}
	if c.FeaturedSampleSize < 0 {
		errs = append(errs, fmt.Errorf("featured_sample_size must not be negative, got %d", c.FeaturedSampleSize))
	}
	return errors.Join(errs...)
}

// ClampCount maps a requested result count into [1, MaxTargetCount];
// zero or negative selects TargetCount.
func (c *Config) ClampCount(n int) int {
	if n <= 0 {
		return c.TargetCount
	}
	if n > c.MaxTargetCount {
		return c.MaxTargetCount
	}
	return n
}

// OverFetchFor returns how many neighbors to enrich for count results:
// max(OverFetch, 3*count) capped at MaxOverFetch.
func (c *Config) OverFetchFor(count int) int {
	k := c.OverFetch
	if 3*count > k {
		k = 3 * count
	}
	if k > c.MaxOverFetch {
		k = c.MaxOverFetch
	}
	return k
}
