// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package pipeline

import (
	"time"

	"github.com/tomtom215/reelmatch/internal/dataset"
)

// Stage names used in metrics and logs.
const (
	StageLoad       = "load"
	StageSynthesize = "synthesize"
	StageVectorize  = "vectorize"
	StageSimilarity = "similarity"
	StageSave       = "save"
	StagePrune      = "prune"
)

// BuildStats reports one pipeline run.
type BuildStats struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Dataset   dataset.Stats `json:"dataset"`

	Items      int `json:"items"`
	Vocabulary int `json:"vocabulary"`

	// EmptyVectors counts items with no in-vocabulary term.
	EmptyVectors int `json:"empty_vectors"`

	// Version is the artifact version written, 0 when nothing was saved.
	Version int `json:"version"`
	Pruned  int `json:"pruned"`

	Stages map[string]time.Duration `json:"stages"`
}

// Duration returns the total build time.
func (s *BuildStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}
