// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package testinfra

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
)

// MockMovie is one entry served by MockTMDbServer. An empty PosterPath is
// served as null.
type MockMovie struct {
	ID         int
	Title      string
	Overview   string
	PosterPath string
}

// TMDbCapture is a recorded request.
type TMDbCapture struct {
	Path   string
	ID     int
	APIKey string
}

// MockTMDbServer fakes the TMDb /movie/{id} endpoint.
type MockTMDbServer struct {
	Server *httptest.Server

	mu       sync.Mutex
	movies   map[int]MockMovie
	failures map[int]int
	captures []TMDbCapture
}

// NewMockTMDbServer starts a server that is closed when t finishes.
func NewMockTMDbServer(t *testing.T) *MockTMDbServer {
	t.Helper()

	m := &MockTMDbServer{
		movies:   make(map[int]MockMovie),
		failures: make(map[int]int),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.Server.Close)
	return m
}

func (m *MockTMDbServer) handle(w http.ResponseWriter, r *http.Request) {
	idStr, ok := strings.CutPrefix(r.URL.Path, "/movie/")
	id, err := strconv.Atoi(idStr)
	if !ok || err != nil {
		http.NotFound(w, r)
		return
	}

	m.mu.Lock()
	m.captures = append(m.captures, TMDbCapture{Path: r.URL.Path, ID: id, APIKey: r.URL.Query().Get("api_key")})
	status, failing := m.failures[id]
	movie, found := m.movies[id]
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case failing:
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"status_code": 11, "status_message": "Internal error."}`))
		return
	case !found:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code": 34, "status_message": "The resource you requested could not be found."}`))
		return
	}

	body := map[string]any{
		"id":          movie.ID,
		"title":       movie.Title,
		"overview":    movie.Overview,
		"poster_path": nil,
	}
	if movie.PosterPath != "" {
		body["poster_path"] = movie.PosterPath
	}
	_ = json.NewEncoder(w).Encode(body)
}

// URL returns the base URL to use as the TMDb API root.
func (m *MockTMDbServer) URL() string {
	return m.Server.URL
}

// AddMovie registers movies to serve.
func (m *MockTMDbServer) AddMovie(movies ...MockMovie) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mv := range movies {
		m.movies[mv.ID] = mv
	}
}

// FailWith makes every request for id answer with status.
func (m *MockTMDbServer) FailWith(id, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[id] = status
}

// Captures returns a copy of the recorded requests.
func (m *MockTMDbServer) Captures() []TMDbCapture {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TMDbCapture, len(m.captures))
	copy(out, m.captures)
	return out
}

// RequestCount returns how many requests were made for id.
func (m *MockTMDbServer) RequestCount(id int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.captures {
		if c.ID == id {
			n++
		}
	}
	return n
}
