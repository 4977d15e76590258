// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/recommend/algorithms"
	"github.com/tomtom215/reelmatch/internal/recommend/features"
	"github.com/tomtom215/reelmatch/internal/recommend/storage"
)

// ErrDuplicateItemID is returned when two records share an id. The server
// refuses such a catalog, so the build fails before saving it.
var ErrDuplicateItemID = errors.New("duplicate item id")

// Config holds the build inputs and feature settings.
type Config struct {
	MoviesPath   string
	CreditsPath  string
	ArtifactsDir string
	KeepVersions int

	MaxFeatures int
	StopWords   string
	Stem        bool
	TopCast     int
	Workers     int
}

// FromConfig extracts the build settings from the application config.
func FromConfig(cfg *config.Config) Config {
	return Config{
		MoviesPath:   cfg.Dataset.MoviesPath,
		CreditsPath:  cfg.Dataset.CreditsPath,
		ArtifactsDir: cfg.Artifacts.Dir,
		KeepVersions: cfg.Artifacts.KeepVersions,
		MaxFeatures:  cfg.Features.MaxFeatures,
		StopWords:    cfg.Features.StopWords,
		Stem:         cfg.Features.Stem,
		TopCast:      cfg.Features.TopCast,
		Workers:      cfg.Features.Workers,
	}
}

// Pipeline runs the offline build.
type Pipeline struct {
	cfg       Config
	stopWords features.StopWords
	logger    zerolog.Logger
}

// New validates cfg and creates a pipeline.
func New(cfg Config, logger zerolog.Logger) (*Pipeline, error) {
	stopWords, ok := features.StopWordsByName(cfg.StopWords)
	if !ok {
		return nil, fmt.Errorf("unknown stop word list %q", cfg.StopWords)
	}
	if cfg.MaxFeatures < 0 {
		return nil, fmt.Errorf("max features must not be negative, got %d", cfg.MaxFeatures)
	}
	if cfg.TopCast <= 0 {
		cfg.TopCast = dataset.DefaultTopCast
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.KeepVersions <= 0 {
		cfg.KeepVersions = storage.DefaultKeepVersions
	}

	return &Pipeline{
		cfg:       cfg,
		stopWords: stopWords,
		logger:    logger.With().Str("component", "pipeline").Logger(),
	}, nil
}

// Run loads the dataset, builds the artifacts and saves them as a new version.
func (p *Pipeline) Run(ctx context.Context) (*BuildStats, error) {
	stats := &BuildStats{StartTime: time.Now(), Stages: make(map[string]time.Duration)}
	defer func() { stats.EndTime = time.Now() }()

	p.logger.Info().
		Str("movies", p.cfg.MoviesPath).
		Str("credits", p.cfg.CreditsPath).
		Str("artifacts", p.cfg.ArtifactsDir).
		Msg("Starting build")

	var ds *dataset.Dataset
	err := p.stage(stats, StageLoad, func() error {
		var err error
		ds, err = dataset.Load(ctx, p.cfg.MoviesPath, p.cfg.CreditsPath,
			dataset.WithTopCast(p.cfg.TopCast),
			dataset.WithLogger(p.logger))
		return err
	})
	if err != nil {
		return stats, err
	}
	stats.Dataset = ds.Stats
	metrics.RecordPipelineRecords("read", ds.Stats.Read)
	metrics.RecordPipelineRecords("joined", ds.Stats.Joined)
	metrics.RecordPipelineRecords("dropped", ds.Stats.Dropped)
	metrics.RecordPipelineRecords("malformed", ds.Stats.Malformed)
	metrics.RecordPipelineRecords("duplicates", ds.Stats.Duplicates)
	metrics.RecordPipelineRecords("kept", len(ds.Records))

	set, err := p.build(ctx, stats, ds.Records)
	if err != nil {
		return stats, err
	}

	store, err := storage.NewStore(p.cfg.ArtifactsDir)
	if err != nil {
		return stats, fmt.Errorf("open artifact store: %w", err)
	}

	err = p.stage(stats, StageSave, func() error {
		version, serr := store.SaveArtifacts(ctx, set, time.Since(stats.StartTime))
		stats.Version = version
		return serr
	})
	if err != nil {
		return stats, err
	}

	err = p.stage(stats, StagePrune, func() error {
		pruned, perr := store.PruneArtifacts(ctx, p.cfg.KeepVersions)
		stats.Pruned = pruned
		return perr
	})
	if err != nil {
		// The new version is already saved.
		p.logger.Warn().Err(err).Msg("Pruning old artifacts failed")
	}

	p.logger.Info().
		Int("version", stats.Version).
		Int("items", stats.Items).
		Int("vocabulary", stats.Vocabulary).
		Int("empty_vectors", stats.EmptyVectors).
		Int("pruned", stats.Pruned).
		Dur("duration", time.Since(stats.StartTime)).
		Msg("Build completed")

	return stats, nil
}

// Build turns normalized records into an artifact set without touching disk.
func (p *Pipeline) Build(ctx context.Context, records []dataset.Record) (*storage.ArtifactSet, error) {
	stats := &BuildStats{StartTime: time.Now(), Stages: make(map[string]time.Duration)}
	return p.build(ctx, stats, records)
}

func (p *Pipeline) build(ctx context.Context, stats *BuildStats, records []dataset.Record) (*storage.ArtifactSet, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no records survived normalization")
	}
	if err := checkUniqueIDs(records); err != nil {
		return nil, err
	}

	items := make([]storage.ItemRecord, len(records))
	docs := make([]string, len(records))
	_ = p.stage(stats, StageSynthesize, func() error {
		opts := features.TagOptions{Stem: p.cfg.Stem}
		for i, rec := range records {
			tags := features.SynthesizeTags(rec, opts)
			items[i] = storage.ItemRecord{ID: rec.ID, Title: rec.Title, Tags: tags}
			docs[i] = features.Document(tags)
		}
		return nil
	})
	stats.Items = len(items)

	var (
		vocab   *features.Vocabulary
		vectors []features.Vector
	)
	_ = p.stage(stats, StageVectorize, func() error {
		vocab = features.Fit(docs, p.cfg.MaxFeatures, p.stopWords)
		vectors = vocab.TransformAll(docs)
		return nil
	})
	stats.Vocabulary = vocab.Len()
	for _, v := range vectors {
		if isZero(v) {
			stats.EmptyVectors++
		}
	}
	if stats.EmptyVectors > 0 {
		p.logger.Warn().Int("items", stats.EmptyVectors).Msg("Items with no vocabulary terms have zero similarity to all items")
	}

	var matrix algorithms.SimilarityMatrix
	err := p.stage(stats, StageSimilarity, func() error {
		var err error
		matrix, err = algorithms.ComputeSimilarity(ctx, vectors, p.cfg.Workers)
		return err
	})
	if err != nil {
		return nil, err
	}

	ids := make([]int, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	return &storage.ArtifactSet{
		BuiltAt:    time.Now().UTC(),
		Items:      storage.ItemsArtifact{Items: items},
		Similarity: storage.SimilarityArtifact{ItemIDs: ids, Rows: matrix},
		Vocabulary: storage.VocabularyArtifact{Terms: vocab.Terms},
	}, nil
}

// stage times fn, records the metric and wraps any error with the stage name.
func (p *Pipeline) stage(stats *BuildStats, name string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)

	stats.Stages[name] = elapsed
	metrics.RecordPipelineStage(name, elapsed)

	if err != nil {
		p.logger.Error().Err(err).Str("stage", name).Msg("Build stage failed")
		return fmt.Errorf("%s: %w", name, err)
	}
	p.logger.Debug().Str("stage", name).Dur("duration", elapsed).Msg("Build stage finished")
	return nil
}

func checkUniqueIDs(records []dataset.Record) error {
	seen := make(map[int]int, len(records))
	for i, rec := range records {
		if j, ok := seen[rec.ID]; ok {
			return fmt.Errorf("%w %d: %q at index %d and %q at index %d",
				ErrDuplicateItemID, rec.ID, records[j].Title, j, rec.Title, i)
		}
		seen[rec.ID] = i
	}
	return nil
}

func isZero(v features.Vector) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
