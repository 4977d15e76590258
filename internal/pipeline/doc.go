// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package pipeline runs the offline build that turns the TMDb CSV exports
// into the artifacts served by cmd/server.
//
// Stages, in order:
//
//  1. load: join and normalize the movies and credits tables
//  2. synthesize: build each item's tag list
//  3. vectorize: fit the vocabulary and count term occurrences
//  4. similarity: compute the item-item cosine matrix
//  5. save: write a new artifact version
//  6. prune: drop old artifact versions
//
// Each stage is timed into reelmatch_pipeline_stage_duration_seconds and
// logged with its record counts. A failure in any stage aborts the build;
// bad individual records are dropped during load instead.
package pipeline
