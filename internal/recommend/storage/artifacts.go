// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// Artifact names.
const (
	ItemsArtifactName      = "items"
	SimilarityArtifactName = "similarity"
	VocabularyArtifactName = "vocabulary"
)

// DefaultKeepVersions is how many artifact versions Prune keeps.
const DefaultKeepVersions = 3

// ErrArtifactLoad is matched by every *ArtifactLoadError.
var ErrArtifactLoad = errors.New("artifact load failed")

// ArtifactLoadError reports an artifact that is missing, corrupt or
// inconsistent with its siblings.
type ArtifactLoadError struct {
	Artifact string
	Path     string
	Err      error
}

func (e *ArtifactLoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("load %s artifact (%s): %v", e.Artifact, e.Path, e.Err)
	}
	return fmt.Sprintf("load %s artifact: %v", e.Artifact, e.Err)
}

func (e *ArtifactLoadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrArtifactLoad) true for any ArtifactLoadError.
func (e *ArtifactLoadError) Is(target error) bool { return target == ErrArtifactLoad }

// ItemRecord is one catalog entry.
type ItemRecord struct {
	ID    int
	Title string
	Tags  []string
}

// ItemsArtifact holds the catalog in canonical order.
type ItemsArtifact struct {
	Items []ItemRecord
}

// SimilarityArtifact holds the dense similarity rows. ItemIDs repeats the
// item order so a mismatched pair of files is detected on load.
type SimilarityArtifact struct {
	ItemIDs []int
	Rows    [][]float32
}

// VocabularyArtifact holds the vectorizer terms in column order.
type VocabularyArtifact struct {
	Terms []string
}

// ArtifactSet is everything one pipeline run produces.
type ArtifactSet struct {
	Version    int
	BuiltAt    time.Time
	Items      ItemsArtifact
	Similarity SimilarityArtifact
	Vocabulary VocabularyArtifact
}

// SaveArtifacts writes the set under the next free version number and
// returns that version. On failure the files already written for that
// version are removed.
func (s *Store) SaveArtifacts(ctx context.Context, set *ArtifactSet, buildDuration time.Duration) (int, error) {
	if err := checkAligned(set.Items, set.Similarity); err != nil {
		return 0, err
	}

	version := s.NextVersion()
	meta := ArtifactMetadata{
		BuiltAt:         set.BuiltAt,
		ItemCount:       len(set.Items.Items),
		BuildDurationMS: buildDuration.Milliseconds(),
	}

	var written []string
	for _, a := range []struct {
		name string
		data any
	}{
		{VocabularyArtifactName, set.Vocabulary},
		{SimilarityArtifactName, set.Similarity},
		// items last: its presence marks a complete set
		{ItemsArtifactName, set.Items},
	} {
		if err := s.Save(ctx, a.name, version, a.data, meta); err != nil {
			for _, name := range written {
				_ = s.Delete(ctx, name, version)
			}
			return 0, err
		}
		written = append(written, a.name)
	}
	set.Version = version
	return version, nil
}

// PruneArtifacts keeps the newest keep versions of every artifact.
func (s *Store) PruneArtifacts(ctx context.Context, keep int) (int, error) {
	total := 0
	for _, name := range []string{ItemsArtifactName, SimilarityArtifactName, VocabularyArtifactName} {
		n, err := s.Prune(ctx, name, keep)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// LoadArtifacts opens the store at dir and loads the latest items artifact
// together with the similarity artifact of the same version.
func LoadArtifacts(ctx context.Context, dir string) (*ArtifactSet, error) {
	s, err := NewStore(dir)
	if err != nil {
		return nil, &ArtifactLoadError{Artifact: "store", Path: dir, Err: err}
	}
	return s.LoadArtifacts(ctx)
}

// LoadArtifacts loads the latest complete artifact set. The vocabulary is
// not needed at query time and is left empty.
func (s *Store) LoadArtifacts(ctx context.Context) (*ArtifactSet, error) {
	version, ok := s.LatestVersion(ItemsArtifactName)
	if !ok {
		return nil, &ArtifactLoadError{
			Artifact: ItemsArtifactName,
			Path:     s.baseDir,
			Err:      ErrNoArtifact,
		}
	}

	set := &ArtifactSet{Version: version}

	meta, err := s.Load(ctx, ItemsArtifactName, version, &set.Items)
	if err != nil {
		return nil, &ArtifactLoadError{Artifact: ItemsArtifactName, Path: s.path(ItemsArtifactName, version), Err: err}
	}
	set.BuiltAt = meta.BuiltAt

	if _, err := s.Load(ctx, SimilarityArtifactName, version, &set.Similarity); err != nil {
		return nil, &ArtifactLoadError{Artifact: SimilarityArtifactName, Path: s.path(SimilarityArtifactName, version), Err: err}
	}

	if err := checkAligned(set.Items, set.Similarity); err != nil {
		return nil, &ArtifactLoadError{Artifact: SimilarityArtifactName, Path: filepath.Clean(s.baseDir), Err: err}
	}
	return set, nil
}

// LoadVocabulary loads the vocabulary of the given version, 0 for latest.
func (s *Store) LoadVocabulary(ctx context.Context, version int) (*VocabularyArtifact, error) {
	var v VocabularyArtifact
	if _, err := s.Load(ctx, VocabularyArtifactName, version, &v); err != nil {
		return nil, &ArtifactLoadError{Artifact: VocabularyArtifactName, Path: s.baseDir, Err: err}
	}
	return &v, nil
}

func checkAligned(items ItemsArtifact, sim SimilarityArtifact) error {
	n := len(items.Items)
	if len(sim.ItemIDs) != n || len(sim.Rows) != n {
		return fmt.Errorf("similarity has %d ids and %d rows for %d items", len(sim.ItemIDs), len(sim.Rows), n)
	}
	for i, it := range items.Items {
		if sim.ItemIDs[i] != it.ID {
			return fmt.Errorf("item %d: similarity id %d does not match item id %d", i, sim.ItemIDs[i], it.ID)
		}
		if len(sim.Rows[i]) != n {
			return fmt.Errorf("similarity row %d has %d columns, want %d", i, len(sim.Rows[i]), n)
		}
	}
	return nil
}
