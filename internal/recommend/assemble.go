// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "github.com/tomtom215/reelmatch/internal/enrich"

// Assemble joins ranked candidates with their enrichment results and keeps
// the first target entries that have a poster. Relative rank order is kept.
func Assemble(candidates []Candidate, results map[int]enrich.Result, target int) []EnrichedResult {
	out := make([]EnrichedResult, 0, min(len(candidates), max(target, 0)))
	if target <= 0 {
		return out
	}

	for rank, c := range candidates {
		r, ok := results[c.ItemID]
		if !ok || r.Sentinel || !r.HasPoster() {
			continue
		}

		title := r.Title
		if title == "" {
			title = c.Title
		}
		out = append(out, EnrichedResult{
			ID:        c.ItemID,
			Title:     title,
			PosterURL: r.PosterURL,
			Overview:  r.Overview,
			Score:     c.Score,
			Rank:      rank + 1,
		})
		if len(out) == target {
			break
		}
	}
	return out
}
