// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package config loads ReelMatch configuration with Koanf v2.
//
// Sources are layered, highest priority last:
//  1. Defaults: defaultConfig()
//  2. Config file: optional YAML (CONFIG_PATH, config.yaml, /etc/reelmatch/config.yaml)
//  3. Environment variables: mapped explicitly in envTransformFunc
//
// Both binaries share this package. cmd/build reads the dataset, features and
// artifacts sections; cmd/server reads everything else plus artifacts.
package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Dataset   DatasetConfig   `koanf:"dataset"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Features  FeaturesConfig  `koanf:"features"`
	Recommend RecommendConfig `koanf:"recommend"`
	Enrich    EnrichConfig    `koanf:"enrich"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// DatasetConfig points at the two TMDb 5000 CSV exports joined by the build.
type DatasetConfig struct {
	MoviesPath  string `koanf:"movies_path"`
	CreditsPath string `koanf:"credits_path"`
}

// ArtifactsConfig controls where versioned build artifacts live.
type ArtifactsConfig struct {
	Dir string `koanf:"dir"`

	// KeepVersions is how many versions of each artifact survive a prune.
	// Default: 3
	KeepVersions int `koanf:"keep_versions"`
}

// FeaturesConfig controls tag synthesis and vectorization.
type FeaturesConfig struct {
	// MaxFeatures bounds the vocabulary. 0 means unbounded.
	// Default: 5000
	MaxFeatures int `koanf:"max_features"`

	// StopWords is "english" or "none".
	// Default: english
	StopWords string `koanf:"stop_words"`

	// Stem applies Porter stemming to every tag token.
	// Default: true
	Stem bool `koanf:"stem"`

	// TopCast is how many leading cast members become tags.
	// Default: 3
	TopCast int `koanf:"top_cast"`

	// Workers bounds the goroutines computing similarity rows. 0 means NumCPU.
	Workers int `koanf:"workers"`
}

// RecommendConfig controls the query path.
type RecommendConfig struct {
	// OverFetch is how many ranked candidates are enriched per query.
	// Default: 15
	OverFetch int `koanf:"over_fetch"`

	// TargetCount is the default number of results returned.
	// Default: 5
	TargetCount int `koanf:"target_count"`

	// MaxOverFetch caps the over-fetch window.
	// Default: 30
	MaxOverFetch int `koanf:"max_over_fetch"`

	// MaxTargetCount caps the count a caller may request.
	// Default: 20
	MaxTargetCount int `koanf:"max_target_count"`

	// FeaturedSampleSize is how many random titles the showcase samples.
	// Default: 12
	FeaturedSampleSize int `koanf:"featured_sample_size"`

	// FeaturedRefreshInterval is how often the showcase is resampled.
	// Default: 1h
	FeaturedRefreshInterval time.Duration `koanf:"featured_refresh_interval"`
}

// EnrichConfig configures the TMDb client, its retry policy and its cache.
type EnrichConfig struct {
	BaseURL       string        `koanf:"base_url"`
	APIKey        string        `koanf:"api_key"`
	PosterBaseURL string        `koanf:"poster_base_url"`
	Timeout       time.Duration `koanf:"timeout"`
	MaxRetries    int           `koanf:"max_retries"`
	Backoff       time.Duration `koanf:"backoff"`
	Concurrency   int           `koanf:"concurrency"`
	RateLimit     float64       `koanf:"rate_limit"` // requests per second, 0 disables
	RateBurst     int           `koanf:"rate_burst"`

	// CacheBackend selects the second cache tier: none, badger or redis.
	// Default: none
	CacheBackend  string        `koanf:"cache_backend"`
	CacheSize     int           `koanf:"cache_size"`
	CacheTTL      time.Duration `koanf:"cache_ttl"`
	CachePath     string        `koanf:"cache_path"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
}

// SecurityConfig holds HTTP rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// IsProduction reports whether the server runs with environment=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
