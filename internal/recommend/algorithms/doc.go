// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package algorithms computes item-item cosine similarity over bag-of-words
// vectors.
//
// # Similarity
//
// ComputeSimilarity produces the full symmetric matrix. Only the upper
// triangle is computed; each row is handled by a bounded errgroup worker and
// mirrored after all workers finish. A zero-norm vector has similarity 0 to
// every item, itself included.
//
// Scores are stored as float32 to halve the size of the persisted matrix.
//
// # Thread Safety
//
// A SimilarityMatrix is read-only after construction and may be shared freely.
package algorithms
