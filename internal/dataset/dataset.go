// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package dataset reads the TMDb 5000 movies and credits tables, joins them
// on movie id (title when a movie has no id) and normalizes every list column into whitespace-free tokens.
//
// Malformed rows are dropped and counted; they never abort a load.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Record is one normalized movie. Every list holds tokens without internal
// whitespace except Overview, which holds whitespace-split words.
type Record struct {
	ID       int
	Title    string
	Overview []string
	Genres   []string
	Keywords []string
	Cast     []string
	Director []string
}

// Stats summarizes a load.
type Stats struct {
	Read      int `json:"read"`
	Joined    int `json:"joined"`
	Dropped   int `json:"dropped"`
	Malformed int `json:"malformed"`

	// Duplicates counts records dropped because their id was already taken.
	Duplicates int `json:"duplicates"`
}

// Dataset is the output of Load.
type Dataset struct {
	Records []Record
	Stats   Stats
}

type options struct {
	topCast int
	logger  zerolog.Logger
}

// Option configures Load and Read.
type Option func(*options)

// WithTopCast sets how many billed cast members are kept.
func WithTopCast(n int) Option {
	return func(o *options) { o.topCast = n }
}

// WithLogger sets the logger used for dropped-record warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Load opens both CSV files and calls Read.
func Load(ctx context.Context, moviesPath, creditsPath string, opts ...Option) (*Dataset, error) {
	movies, err := os.Open(moviesPath)
	if err != nil {
		return nil, fmt.Errorf("open movies: %w", err)
	}
	defer movies.Close()

	credits, err := os.Open(creditsPath)
	if err != nil {
		return nil, fmt.Errorf("open credits: %w", err)
	}
	defer credits.Close()

	return Read(ctx, movies, credits, opts...)
}

// movieRow and creditRow hold the raw columns before normalization.
type movieRow struct {
	id, title, overview, genres, keywords string
}

type creditRow struct {
	movieID, title, cast, crew string
}

// Read joins the movies and credits tables and normalizes the result. Credits
// are matched on movie_id; the title is used only for movies without an id.
// The first record per id wins. Only I/O and header errors are returned; bad
// rows are dropped.
func Read(ctx context.Context, movies, credits io.Reader, opts ...Option) (*Dataset, error) {
	o := options{topCast: DefaultTopCast, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.With().Str("component", "dataset").Logger()

	movieRows, err := readTable(movies, []string{"id", "title", "overview", "genres", "keywords"})
	if err != nil {
		return nil, fmt.Errorf("read movies: %w", err)
	}
	creditRows, err := readTable(credits, []string{"movie_id", "title", "cast", "crew"})
	if err != nil {
		return nil, fmt.Errorf("read credits: %w", err)
	}

	// First occurrence of an id or a title in credits wins.
	byID := make(map[string]creditRow, len(creditRows))
	byTitle := make(map[string]creditRow, len(creditRows))
	for _, r := range creditRows {
		c := creditRow{movieID: strings.TrimSpace(r[0]), title: r[1], cast: r[2], crew: r[3]}
		if _, ok := byID[c.movieID]; !ok && c.movieID != "" {
			byID[c.movieID] = c
		}
		if _, ok := byTitle[c.title]; !ok {
			byTitle[c.title] = c
		}
	}
	seen := make(map[int]string, len(movieRows))

	ds := &Dataset{Records: make([]Record, 0, len(movieRows))}
	ds.Stats.Read = len(movieRows)

	for i, r := range movieRows {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		m := movieRow{id: strings.TrimSpace(r[0]), title: r[1], overview: r[2], genres: r[3], keywords: r[4]}
		c, ok := lookupCredits(m, byID, byTitle)
		if !ok {
			continue
		}
		ds.Stats.Joined++

		rec, err := normalize(m, c, o.topCast)
		if err != nil {
			var mre *MalformedRecordError
			if errors.As(err, &mre) {
				mre.Title = m.title
				ds.Stats.Malformed++
			}
			ds.Stats.Dropped++
			logger.Warn().Err(err).Str("title", m.title).Msg("Dropping record")
			continue
		}
		if first, dup := seen[rec.ID]; dup {
			ds.Stats.Dropped++
			ds.Stats.Duplicates++
			logger.Warn().
				Int("id", rec.ID).
				Str("title", m.title).
				Str("kept", first).
				Msg("Dropping record with duplicate id")
			continue
		}
		seen[rec.ID] = m.title
		ds.Records = append(ds.Records, rec)
	}

	logger.Info().
		Int("read", ds.Stats.Read).
		Int("joined", ds.Stats.Joined).
		Int("dropped", ds.Stats.Dropped).
		Int("malformed", ds.Stats.Malformed).
		Int("duplicates", ds.Stats.Duplicates).
		Int("records", len(ds.Records)).
		Msg("Dataset loaded")

	return ds, nil
}

var errMissingValue = errors.New("missing value")

// lookupCredits finds the credits row of m. A movie with an id never falls
// back to its title, so same-titled movies cannot share cast and crew.
func lookupCredits(m movieRow, byID, byTitle map[string]creditRow) (creditRow, bool) {
	if m.id != "" {
		c, ok := byID[m.id]
		return c, ok
	}
	c, ok := byTitle[m.title]
	return c, ok
}

func normalize(m movieRow, c creditRow, topCast int) (Record, error) {
	for _, f := range []struct{ name, value string }{
		{"title", m.title}, {"overview", m.overview}, {"genres", m.genres},
		{"keywords", m.keywords}, {"cast", c.cast}, {"crew", c.crew},
	} {
		if strings.TrimSpace(f.value) == "" {
			return Record{}, fmt.Errorf("%s: %w", f.name, errMissingValue)
		}
	}

	id, err := parseID(m.id, c.movieID)
	if err != nil {
		return Record{}, err
	}

	genres, err := extractNames("genres", m.genres, -1)
	if err != nil {
		return Record{}, err
	}
	keywords, err := extractNames("keywords", m.keywords, -1)
	if err != nil {
		return Record{}, err
	}
	cast, err := ExtractTopCast(c.cast, topCast)
	if err != nil {
		return Record{}, err
	}
	director, err := ExtractDirector(c.crew)
	if err != nil {
		return Record{}, err
	}

	return Record{
		ID:       id,
		Title:    m.title,
		Overview: TokenizeOverview(m.overview),
		Genres:   StripInternalSpaces(genres),
		Keywords: StripInternalSpaces(keywords),
		Cast:     StripInternalSpaces(cast),
		Director: StripInternalSpaces(director),
	}, nil
}

// parseID returns the first non-empty candidate as an integer id.
func parseID(candidates ...string) (int, error) {
	for _, s := range candidates {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		id, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("id %q: %w", s, err)
		}
		return id, nil
	}
	return 0, fmt.Errorf("id: %w", errMissingValue)
}

// readTable returns the rows of r projected onto columns, located by header name.
func readTable(r io.Reader, columns []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	idx := make([]int, len(columns))
	for i, col := range columns {
		p, ok := pos[col]
		if !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
		idx[i] = p
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]string, len(columns))
		for i, p := range idx {
			if p < len(rec) {
				row[i] = rec[p]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
