// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package features turns normalized movie records into tag documents and
// bag-of-words count vectors.
package features

import (
	"strings"

	porterstemmer "github.com/reiver/go-porterstemmer"

	"github.com/tomtom215/reelmatch/internal/dataset"
)

// TagOptions controls tag synthesis.
type TagOptions struct {
	// Stem applies the Porter stemmer to every token.
	Stem bool
}

// SynthesizeTags concatenates overview, genres, keywords, cast and director
// tokens in that order and lowercases them. Empty tokens are skipped.
func SynthesizeTags(rec dataset.Record, opts TagOptions) []string {
	n := len(rec.Overview) + len(rec.Genres) + len(rec.Keywords) + len(rec.Cast) + len(rec.Director)
	tags := make([]string, 0, n)

	for _, group := range [][]string{rec.Overview, rec.Genres, rec.Keywords, rec.Cast, rec.Director} {
		for _, tok := range dataset.StripInternalSpaces(group) {
			if tok == "" {
				continue
			}
			tok = strings.ToLower(tok)
			if opts.Stem {
				tok = stem(tok)
			}
			if tok != "" {
				tags = append(tags, tok)
			}
		}
	}
	return tags
}

// stem returns the Porter stem of tok, or tok itself when the stemmer fails.
// porterstemmer indexes out of range on a few short inputs such as "eed".
func stem(tok string) (out string) {
	defer func() {
		if recover() != nil {
			out = tok
		}
	}()
	return porterstemmer.StemString(tok)
}

// Document joins tags into the space-separated text the vectorizer consumes.
func Document(tags []string) string {
	return strings.Join(tags, " ")
}
