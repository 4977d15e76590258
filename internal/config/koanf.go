// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/reelmatch/config.yaml",
	"/etc/reelmatch/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8501,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Dataset: DatasetConfig{
			MoviesPath:  "data/tmdb_5000_movies.csv",
			CreditsPath: "data/tmdb_5000_credits.csv",
		},
		Artifacts: ArtifactsConfig{
			Dir:          "/data/artifacts",
			KeepVersions: 3,
		},
		Features: FeaturesConfig{
			MaxFeatures: 5000,
			StopWords:   "english",
			Stem:        true,
			TopCast:     3,
			Workers:     0, // 0 = runtime.NumCPU()
		},
		Recommend: RecommendConfig{
			OverFetch:               15,
			TargetCount:             5,
			MaxOverFetch:            30,
			MaxTargetCount:          20,
			FeaturedSampleSize:      12,
			FeaturedRefreshInterval: time.Hour,
		},
		Enrich: EnrichConfig{
			BaseURL:       "https://api.themoviedb.org/3",
			PosterBaseURL: "https://image.tmdb.org/t/p/w500/",
			Timeout:       10 * time.Second,
			MaxRetries:    2,
			Backoff:       500 * time.Millisecond,
			Concurrency:   10,
			RateLimit:     40,
			RateBurst:     10,
			CacheBackend:  "none",
			CacheSize:     10000,
			CacheTTL:      24 * time.Hour,
			CachePath:     "/data/enrich-cache",
			RedisAddr:     "localhost:6379",
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration with Koanf v2: defaults, then the config
// file when one exists, then environment variables. The result is validated.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// TMDB_API_KEY -> enrich.api_key, HTTP_PORT -> server.port, ...
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	"movies_csv":  "dataset.movies_path",
	"credits_csv": "dataset.credits_path",

	"artifact_dir":           "artifacts.dir",
	"artifact_keep_versions": "artifacts.keep_versions",

	"max_features":       "features.max_features",
	"stop_words":         "features.stop_words",
	"stem_tags":          "features.stem",
	"top_cast":           "features.top_cast",
	"similarity_workers": "features.workers",

	"recommend_over_fetch":       "recommend.over_fetch",
	"recommend_target_count":     "recommend.target_count",
	"recommend_max_over_fetch":   "recommend.max_over_fetch",
	"recommend_max_target_count": "recommend.max_target_count",
	"featured_sample_size":       "recommend.featured_sample_size",
	"featured_refresh_interval":  "recommend.featured_refresh_interval",

	"tmdb_base_url":        "enrich.base_url",
	"tmdb_api_key":         "enrich.api_key",
	"tmdb_poster_base_url": "enrich.poster_base_url",
	"enrich_timeout":       "enrich.timeout",
	"enrich_max_retries":   "enrich.max_retries",
	"enrich_backoff":       "enrich.backoff",
	"enrich_concurrency":   "enrich.concurrency",
	"enrich_rate_limit":    "enrich.rate_limit",
	"enrich_rate_burst":    "enrich.rate_burst",
	"enrich_cache_backend": "enrich.cache_backend",
	"enrich_cache_size":    "enrich.cache_size",
	"enrich_cache_ttl":     "enrich.cache_ttl",
	"enrich_cache_path":    "enrich.cache_path",
	"redis_addr":           "enrich.redis_addr",
	"redis_password":       "enrich.redis_password",
	"redis_db":             "enrich.redis_db",

	"rate_limit_reqs":    "security.rate_limit_reqs",
	"rate_limit_window":  "security.rate_limit_window",
	"disable_rate_limit": "security.rate_limit_disabled",
	"cors_origins":       "security.cors_origins",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Returning "" makes koanf skip the variable.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
