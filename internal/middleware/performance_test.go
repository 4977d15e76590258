// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/logging"
)

func TestPerformanceMonitor_Window(t *testing.T) {
	pm := NewPerformanceMonitor(5, 0, zerolog.Nop())

	for i := 0; i < 8; i++ {
		pm.Record(RequestSample{Route: "/r", Method: "GET", DurationMS: int64(i), StatusCode: 200})
	}

	recent := pm.Recent(100)
	if len(recent) != 5 {
		t.Fatalf("Recent() returned %d samples, want 5", len(recent))
	}
	for i, s := range recent {
		if s.DurationMS != int64(i+3) {
			t.Errorf("sample %d duration = %d, want %d", i, s.DurationMS, i+3)
		}
	}
	if got := pm.Recent(2); len(got) != 2 || got[1].DurationMS != 7 {
		t.Errorf("Recent(2) = %+v", got)
	}
}

func TestPerformanceMonitor_Stats(t *testing.T) {
	pm := NewPerformanceMonitor(100, 0, zerolog.Nop())

	for i := 1; i <= 10; i++ {
		pm.Record(RequestSample{Route: "/a", Method: "GET", DurationMS: int64(i * 10), StatusCode: 200})
	}
	pm.Record(RequestSample{Route: "/b", Method: "GET", DurationMS: 5, StatusCode: 500})

	stats := pm.Stats()
	if len(stats) != 2 {
		t.Fatalf("got %d endpoints, want 2", len(stats))
	}

	a := stats[0]
	if a.Endpoint != "GET /a" || a.RequestCount != 10 {
		t.Errorf("first endpoint = %+v", a)
	}
	if a.AvgDuration != 55 || a.P50Duration != 50 || a.MaxDuration != 100 {
		t.Errorf("aggregates = avg %v p50 %d max %d", a.AvgDuration, a.P50Duration, a.MaxDuration)
	}
	if stats[1].ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", stats[1].ErrorCount)
	}
}

func TestPerformanceMonitor_Middleware(t *testing.T) {
	var buf bytes.Buffer
	pm := NewPerformanceMonitor(10, time.Nanosecond, logging.NewTestLogger(&buf))

	handler := pm.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(time.Millisecond)
		w.WriteHeader(http.StatusNotFound)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/slow", nil))

	recent := pm.Recent(1)
	if len(recent) != 1 || recent[0].StatusCode != http.StatusNotFound || recent[0].Route != "/slow" {
		t.Fatalf("recorded = %+v", recent)
	}
	if !strings.Contains(buf.String(), "Slow request") {
		t.Errorf("expected slow request warning, log = %s", buf.String())
	}
}
