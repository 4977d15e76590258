// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package storage persists the artifacts produced by the offline pipeline.
//
// Each artifact is written as a gob-encoded envelope holding metadata and a
// gzip-compressed gob payload. The metadata carries a SHA-256 checksum of the
// uncompressed payload, verified on every load.
//
// # Storage Format
//
//	filename: {artifact}_v{version}.gob.gz
//
//	structure:
//	  - Metadata (ArtifactMetadata)
//	  - CompressedData (gzip-compressed gob-encoded artifact)
//
// # Artifacts
//
// One pipeline run writes three artifacts under the same version number:
//
//	/data/artifacts/
//	  items_v3.gob.gz        item ids, titles and tags in catalog order
//	  similarity_v3.gob.gz   dense similarity rows aligned with items
//	  vocabulary_v3.gob.gz   vectorizer terms, kept for inspection
//
// LoadArtifacts reads the latest items and similarity pair and checks that
// they agree on item order. Any failure is reported as *ArtifactLoadError.
//
// # Thread Safety
//
// Store methods are safe for concurrent use. Saves take a write lock and loads
// share a read lock.
package storage
