// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package features

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultMaxFeatures bounds the vocabulary size.
const DefaultMaxFeatures = 5000

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lowercases document and extracts its word tokens.
func Tokenize(document string) []string {
	return tokenPattern.FindAllString(strings.ToLower(document), -1)
}

// Vector is a row of raw term counts aligned with a Vocabulary.
type Vector []float64

// Vocabulary is an ordered term list. A term's position is its vector column.
type Vocabulary struct {
	Terms []string
	index map[string]int
}

// NewVocabulary builds a vocabulary from terms already in column order.
func NewVocabulary(terms []string) *Vocabulary {
	v := &Vocabulary{Terms: terms, index: make(map[string]int, len(terms))}
	for i, t := range terms {
		v.index[t] = i
	}
	return v
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int { return len(v.Terms) }

// Index returns the column for term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Fit counts term frequencies across documents and keeps the maxFeatures most
// frequent terms not in stopWords. Frequency ties go to the lexicographically
// smaller term. The resulting vocabulary is sorted lexicographically.
// maxFeatures <= 0 keeps every term.
func Fit(documents []string, maxFeatures int, stopWords StopWords) *Vocabulary {
	counts := make(map[string]int)
	for _, doc := range documents {
		for _, tok := range Tokenize(doc) {
			if stopWords.Contains(tok) {
				continue
			}
			counts[tok]++
		}
	}

	terms := make([]string, 0, len(counts))
	for t := range counts {
		terms = append(terms, t)
	}

	if maxFeatures > 0 && len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			ci, cj := counts[terms[i]], counts[terms[j]]
			if ci != cj {
				return ci > cj
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}

	sort.Strings(terms)
	return NewVocabulary(terms)
}

// Transform returns the count vector of document. Out-of-vocabulary tokens are ignored.
func (v *Vocabulary) Transform(document string) Vector {
	vec := make(Vector, len(v.Terms))
	for _, tok := range Tokenize(document) {
		if i, ok := v.index[tok]; ok {
			vec[i]++
		}
	}
	return vec
}

// TransformAll vectorizes each document in order.
func (v *Vocabulary) TransformAll(documents []string) []Vector {
	out := make([]Vector, len(documents))
	for i, doc := range documents {
		out[i] = v.Transform(doc)
	}
	return out
}
