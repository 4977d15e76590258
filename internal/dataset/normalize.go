// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package dataset

import (
	"errors"
	"strings"
	"unicode"

	"github.com/goccy/go-json"
)

// DefaultTopCast is the number of billed cast members kept per movie.
const DefaultTopCast = 3

// namedEntry is the shape shared by the genres, keywords, cast and crew columns.
type namedEntry struct {
	Name *string `json:"name"`
	Job  string  `json:"job,omitempty"`
}

var errMissingName = errors.New("entry has no name")

func parseEntries(field, raw string) ([]namedEntry, error) {
	var entries []namedEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, &MalformedRecordError{Field: field, Err: err}
	}
	return entries, nil
}

// ExtractNames returns the name of every entry in a serialized list, in order.
func ExtractNames(field string) ([]string, error) {
	return extractNames("names", field, -1)
}

// ExtractTopCast returns the names of the first limit cast entries.
// A non-positive limit selects DefaultTopCast.
func ExtractTopCast(field string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultTopCast
	}
	return extractNames("cast", field, limit)
}

func extractNames(kind, raw string, limit int) ([]string, error) {
	entries, err := parseEntries(kind, raw)
	if err != nil {
		return nil, err
	}
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name == nil {
			return nil, &MalformedRecordError{Field: kind, Err: errMissingName}
		}
		names = append(names, *e.Name)
	}
	return names, nil
}

// ExtractDirector returns the first crew member whose job is Director as a
// single-element list, or an empty list when the crew has no director.
func ExtractDirector(field string) ([]string, error) {
	entries, err := parseEntries("crew", field)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Job != "Director" {
			continue
		}
		if e.Name == nil {
			return nil, &MalformedRecordError{Field: "crew", Err: errMissingName}
		}
		return []string{*e.Name}, nil
	}
	return []string{}, nil
}

// TokenizeOverview splits free text on whitespace.
func TokenizeOverview(text string) []string {
	return strings.Fields(text)
}

// StripInternalSpaces removes every whitespace rune from each token so that
// multi-word names such as "Science Fiction" become one token.
func StripInternalSpaces(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, tok)
	}
	return out
}
