// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// maxFeaturedIDs bounds the ids accepted by /featured.
const maxFeaturedIDs = 50

// RecommendationsRequest holds the /recommendations query parameters.
// Count is clamped by the service; zero selects the default.
type RecommendationsRequest struct {
	Title string `query:"title" validate:"required,notblank,max=300,title"`
	Count int    `query:"count" validate:"min=0,max=1000"`
}

// FeaturedRequest holds the /featured query parameters.
type FeaturedRequest struct {
	IDs []int `query:"ids" validate:"max=50,dive,gt=0"`
}

// paramError reports a query parameter that could not be parsed.
type paramError struct {
	Field string
	Value string
	Want  string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("%s must be %s", e.Field, e.Want)
}

func (e *paramError) details() map[string]interface{} {
	return map[string]interface{}{"field": e.Field, "value": e.Value}
}

func parseRecommendationsRequest(q url.Values) (*RecommendationsRequest, error) {
	req := &RecommendationsRequest{Title: q.Get("title")}
	if raw := q.Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &paramError{Field: "count", Value: raw, Want: "an integer"}
		}
		req.Count = n
	}
	return req, nil
}

// parseFeaturedRequest accepts ids=1,2,3 and repeated ids=1&ids=2.
func parseFeaturedRequest(q url.Values) (*FeaturedRequest, error) {
	req := &FeaturedRequest{}
	for _, raw := range q["ids"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil {
				return nil, &paramError{Field: "ids", Value: part, Want: "a comma-separated list of integers"}
			}
			req.IDs = append(req.IDs, id)
			if len(req.IDs) > maxFeaturedIDs {
				return nil, &paramError{Field: "ids", Value: raw, Want: fmt.Sprintf("at most %d ids", maxFeaturedIDs)}
			}
		}
	}
	return req, nil
}
