// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/recommend/storage"
)

func abcRecords() []dataset.Record {
	shared := dataset.Record{
		Overview: []string{"rebels", "fight", "galactic", "empire"},
		Genres:   []string{"ScienceFiction"},
		Keywords: []string{"spaceopera"},
		Cast:     []string{"MarkHamill"},
		Director: []string{"GeorgeLucas"},
	}
	a, b := shared, shared
	a.ID, a.Title = 1, "A"
	b.ID, b.Title = 2, "B"
	c := dataset.Record{
		ID:       3,
		Title:    "C",
		Overview: []string{"lovers", "meet", "paris"},
		Genres:   []string{"Romance"},
		Keywords: []string{"cafe"},
		Cast:     []string{"JulietteBinoche"},
		Director: []string{"LouisMalle"},
	}
	return []dataset.Record{a, b, c}
}

func newTestPipeline(t *testing.T, cfg Config) *Pipeline {
	t.Helper()
	if cfg.StopWords == "" {
		cfg.StopWords = "english"
	}
	p, err := New(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestBuild_EndToEnd(t *testing.T) {
	p := newTestPipeline(t, Config{Stem: true, Workers: 2})

	set, err := p.Build(context.Background(), abcRecords())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	for _, it := range set.Items.Items {
		for _, tag := range it.Tags {
			if strings.ContainsAny(tag, " \t\n") {
				t.Errorf("item %s tag %q contains whitespace", it.Title, tag)
			}
		}
	}

	items := make([]recommend.Item, len(set.Items.Items))
	for i, it := range set.Items.Items {
		items[i] = recommend.Item{ID: it.ID, Title: it.Title, Tags: it.Tags}
	}
	catalog, err := recommend.NewCatalog(items, set.Similarity.Rows, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	engine, err := recommend.NewEngine(catalog, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	got, err := engine.Recommend(context.Background(), "A", 2)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 2 || got[0].Title != "B" || got[1].Title != "C" {
		t.Fatalf("Recommend(A, 2) = %+v, want [B C]", got)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("score(B) = %v not above score(C) = %v", got[0].Score, got[1].Score)
	}
	if got[1].Score != 0 {
		t.Errorf("score(C) = %v, want 0 for disjoint tags", got[1].Score)
	}
}

func TestBuild_NoRecords(t *testing.T) {
	p := newTestPipeline(t, Config{})
	if _, err := p.Build(context.Background(), nil); err == nil {
		t.Error("expected error for empty record set")
	}
}

func TestBuild_DuplicateIDs(t *testing.T) {
	p := newTestPipeline(t, Config{Workers: 1})
	records := abcRecords()
	records[2].ID = records[0].ID

	_, err := p.Build(context.Background(), records)
	if !errors.Is(err, ErrDuplicateItemID) {
		t.Fatalf("Build() err = %v, want ErrDuplicateItemID", err)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{StopWords: "klingon"}, zerolog.Nop()); err == nil {
		t.Error("unknown stop word list should fail")
	}
	if _, err := New(Config{MaxFeatures: -1}, zerolog.Nop()); err == nil {
		t.Error("negative max features should fail")
	}
}

func writeTable(t *testing.T, path string, rows [][]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeDataset(t *testing.T, dir string) (movies, credits string) {
	t.Helper()
	movies = filepath.Join(dir, "tmdb_5000_movies.csv")
	credits = filepath.Join(dir, "tmdb_5000_credits.csv")

	writeTable(t, movies, [][]string{
		{"genres", "id", "keywords", "overview", "title"},
		{`[{"id": 28, "name": "Action"}]`, "19995", `[{"id": 1, "name": "space war"}]`, "Marines land on Pandora.", "Avatar"},
		{`[{"id": 12, "name": "Adventure"}]`, "285", `[{"id": 2, "name": "ocean"}]`, "Pirates sail the ocean.", "Pirates"},
		{`[{"id": 18, "name": "Drama"}]`, "1", `[]`, "", "Empty"},
	})
	writeTable(t, credits, [][]string{
		{"movie_id", "title", "cast", "crew"},
		{"19995", "Avatar", `[{"name": "Sam Worthington"}]`, `[{"job": "Director", "name": "James Cameron"}]`},
		{"285", "Pirates", `[{"name": "Johnny Depp"}]`, `[{"job": "Director", "name": "Gore Verbinski"}]`},
		{"1", "Empty", `[{"name": "Nobody"}]`, `[]`},
	})
	return movies, credits
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	movies, credits := writeDataset(t, dir)
	artifacts := filepath.Join(dir, "artifacts")

	p := newTestPipeline(t, Config{
		MoviesPath:   movies,
		CreditsPath:  credits,
		ArtifactsDir: artifacts,
		KeepVersions: 2,
		Stem:         true,
	})

	var last *BuildStats
	for i := 0; i < 3; i++ {
		stats, err := p.Run(context.Background())
		if err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
		last = stats
	}

	if last.Version != 3 {
		t.Errorf("Version = %d, want 3", last.Version)
	}
	if last.Items != 2 {
		t.Errorf("Items = %d, want 2", last.Items)
	}
	if last.Dataset.Read != 3 || last.Dataset.Dropped != 1 {
		t.Errorf("Dataset stats = %+v", last.Dataset)
	}
	for _, stage := range []string{StageLoad, StageSynthesize, StageVectorize, StageSimilarity, StageSave, StagePrune} {
		if _, ok := last.Stages[stage]; !ok {
			t.Errorf("stage %s not timed", stage)
		}
	}
	if last.Duration() <= 0 {
		t.Error("Duration() should be positive")
	}

	set, err := storage.LoadArtifacts(context.Background(), artifacts)
	if err != nil {
		t.Fatalf("LoadArtifacts: %v", err)
	}
	if set.Version != 3 || len(set.Items.Items) != 2 {
		t.Errorf("loaded version %d with %d items", set.Version, len(set.Items.Items))
	}

	store, err := storage.NewStore(artifacts)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, err := store.Load(context.Background(), storage.ItemsArtifactName, 1, &storage.ItemsArtifact{}); !errors.Is(err, storage.ErrNoArtifact) {
		t.Errorf("version 1 should be pruned, got err = %v", err)
	}
}

func TestRun_SameTitledMoviesLoadInServer(t *testing.T) {
	dir := t.TempDir()
	movies := filepath.Join(dir, "movies.csv")
	credits := filepath.Join(dir, "credits.csv")
	artifacts := filepath.Join(dir, "artifacts")

	writeTable(t, movies, [][]string{
		{"genres", "id", "keywords", "overview", "title"},
		{`[{"id": 28, "name": "Action"}]`, "268", `[{"id": 1, "name": "vigilante"}]`, "Gotham needs a hero.", "Batman"},
		{`[{"id": 28, "name": "Action"}]`, "2661", `[{"id": 2, "name": "camp"}]`, "The caped crusader returns.", "Batman"},
		{`[{"id": 18, "name": "Drama"}]`, "5", `[]`, "Something else entirely.", "Other"},
	})
	writeTable(t, credits, [][]string{
		{"movie_id", "title", "cast", "crew"},
		{"268", "Batman", `[{"name": "Michael Keaton"}]`, `[{"job": "Director", "name": "Tim Burton"}]`},
		{"2661", "Batman", `[{"name": "Adam West"}]`, `[]`},
		{"5", "Other", `[{"name": "Someone"}]`, `[]`},
	})

	p := newTestPipeline(t, Config{MoviesPath: movies, CreditsPath: credits, ArtifactsDir: artifacts, Stem: true})
	stats, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Items != 3 {
		t.Errorf("Items = %d, want 3", stats.Items)
	}

	set, err := storage.LoadArtifacts(context.Background(), artifacts)
	if err != nil {
		t.Fatalf("LoadArtifacts: %v", err)
	}
	catalog, err := recommend.CatalogFromArtifacts(set, zerolog.Nop())
	if err != nil {
		t.Fatalf("CatalogFromArtifacts: %v", err)
	}
	for _, id := range []int{268, 2661, 5} {
		if _, ok := catalog.IndexOf(id); !ok {
			t.Errorf("catalog missing id %d", id)
		}
	}
}

func TestRun_MissingInput(t *testing.T) {
	p := newTestPipeline(t, Config{
		MoviesPath:   filepath.Join(t.TempDir(), "missing.csv"),
		CreditsPath:  filepath.Join(t.TempDir(), "missing.csv"),
		ArtifactsDir: t.TempDir(),
	})

	stats, err := p.Run(context.Background())
	if err == nil || !strings.HasPrefix(err.Error(), StageLoad) {
		t.Fatalf("err = %v, want load stage error", err)
	}
	if stats.Version != 0 {
		t.Errorf("Version = %d, want 0", stats.Version)
	}
}
