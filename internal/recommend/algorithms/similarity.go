// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package algorithms

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/reelmatch/internal/recommend/features"
)

// SimilarityMatrix is a square, symmetric matrix of pairwise cosine
// similarities. Row i is aligned with catalog item i.
type SimilarityMatrix [][]float32

// Len returns the number of rows.
func (m SimilarityMatrix) Len() int { return len(m) }

// Row returns row i.
func (m SimilarityMatrix) Row(i int) []float32 { return m[i] }

// Validate checks that the matrix is square.
func (m SimilarityMatrix) Validate() error {
	for i, row := range m {
		if len(row) != len(m) {
			return fmt.Errorf("similarity row %d has %d columns, want %d", i, len(row), len(m))
		}
	}
	return nil
}

// ComputeSimilarity builds the full pairwise similarity matrix. The upper
// triangle is computed and mirrored, so the result is symmetric exactly.
// The diagonal is 1 for non-zero vectors and 0 for zero vectors.
// workers <= 0 uses GOMAXPROCS.
func ComputeSimilarity(ctx context.Context, vectors []features.Vector, workers int) (SimilarityMatrix, error) {
	n := len(vectors)
	norms := make([]float64, n)
	for i, v := range vectors {
		var s float64
		for _, x := range v {
			s += x * x
		}
		norms[i] = math.Sqrt(s)
	}

	m := make(SimilarityMatrix, n)
	for i := range m {
		m[i] = make([]float32, n)
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Each row i writes only m[i][j] for j >= i; the mirror pass runs after Wait.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := m[i]
			if norms[i] != 0 {
				row[i] = 1
			}
			for j := i + 1; j < n; j++ {
				if norms[i] == 0 || norms[j] == 0 {
					continue
				}
				row[j] = float32(dot(vectors[i], vectors[j]) / (norms[i] * norms[j]))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compute similarity: %w", err)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m[j][i] = m[i][j]
		}
	}
	return m, nil
}

func dot(a, b features.Vector) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var s float64
	for i := 0; i < n; i++ {
		s += a[i] * b[i]
	}
	return s
}
