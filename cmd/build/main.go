// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Command build runs the offline pipeline: it joins the TMDb movies and
// credits exports, synthesizes tags, fits the vocabulary, computes the
// similarity matrix and writes a new artifact version for the server.
//
//	build -movies data/tmdb_5000_movies.csv -credits data/tmdb_5000_credits.csv -out /data/artifacts
//
// Flags override the matching configuration values. The command exits
// non-zero when any stage fails.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	movies := flag.String("movies", cfg.Dataset.MoviesPath, "path to tmdb_5000_movies.csv")
	credits := flag.String("credits", cfg.Dataset.CreditsPath, "path to tmdb_5000_credits.csv")
	out := flag.String("out", cfg.Artifacts.Dir, "artifacts directory")
	keep := flag.Int("keep", cfg.Artifacts.KeepVersions, "artifact versions to keep after the build")
	flag.Parse()

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	pcfg := pipeline.FromConfig(cfg)
	pcfg.MoviesPath = *movies
	pcfg.CreditsPath = *credits
	pcfg.ArtifactsDir = *out
	pcfg.KeepVersions = *keep

	p, err := pipeline.New(pcfg, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid build configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := p.Run(ctx)
	if err != nil {
		stop()
		logging.Fatal().Err(err).Msg("Build failed")
	}

	logging.Info().
		Int("version", stats.Version).
		Int("items", stats.Items).
		Int("vocabulary", stats.Vocabulary).
		Int("empty_vectors", stats.EmptyVectors).
		Int("dropped", stats.Dataset.Dropped).
		Int("pruned", stats.Pruned).
		Dur("duration", stats.Duration()).
		Str("artifacts_dir", pcfg.ArtifactsDir).
		Msg("Build complete")
}
