// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

// Item is one catalog entry.
type Item struct {
	// ID is the TMDb movie id.
	ID int `json:"id"`

	Title string `json:"title"`

	// Tags is the synthesized token sequence the item was vectorized from.
	Tags []string `json:"tags,omitempty"`
}

// Candidate is a ranked neighbor of the query item.
type Candidate struct {
	ItemID int     `json:"item_id"`
	Index  int     `json:"index"`
	Title  string  `json:"title"`
	Score  float64 `json:"score"`
}

// EnrichedResult is a candidate that survived enrichment.
type EnrichedResult struct {
	ID        int     `json:"id"`
	Title     string  `json:"title"`
	PosterURL string  `json:"poster_url"`
	Overview  string  `json:"overview"`
	Score     float64 `json:"score"`

	// Rank is the 1-based position of the candidate before filtering.
	Rank int `json:"rank"`
}

// User-facing messages.
const (
	MessageNotFound     = "Movie not found in the dataset."
	MessageInsufficient = "Could not find enough recommendations with available posters."
)

// RecommendationResponse is the result of GetRecommendations.
type RecommendationResponse struct {
	Query   string           `json:"query"`
	Results []EnrichedResult `json:"results"`

	// Requested is the clamped result count.
	Requested int `json:"requested"`

	// Candidates is the number of neighbors that were enriched.
	Candidates int `json:"candidates"`

	// Insufficient is set when no candidate had a poster.
	Insufficient bool   `json:"insufficient"`
	Message      string `json:"message,omitempty"`
}
