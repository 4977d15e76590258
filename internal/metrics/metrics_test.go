// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordPipelineRecords(t *testing.T) {
	before := testutil.ToFloat64(PipelineRecords.WithLabelValues("dropped"))

	RecordPipelineRecords("dropped", 3)
	RecordPipelineRecords("dropped", 0)

	if got := testutil.ToFloat64(PipelineRecords.WithLabelValues("dropped")) - before; got != 3 {
		t.Errorf("dropped delta = %v, want 3", got)
	}
}

func TestRecordRecommendQuery(t *testing.T) {
	before := testutil.ToFloat64(RecommendQueries.WithLabelValues("not_found"))

	RecordRecommendQuery("not_found", 2*time.Millisecond)

	if got := testutil.ToFloat64(RecommendQueries.WithLabelValues("not_found")) - before; got != 1 {
		t.Errorf("not_found delta = %v, want 1", got)
	}
}

func TestRecordEnrichCache(t *testing.T) {
	tests := []struct {
		tier   string
		result string
	}{
		{"memory", "hit"},
		{"badger", "miss"},
		{"redis", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.tier+"_"+tt.result, func(t *testing.T) {
			c := EnrichCache.WithLabelValues(tt.tier, tt.result)
			before := testutil.ToFloat64(c)
			RecordEnrichCache(tt.tier, tt.result)
			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("delta = %v, want 1", got)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("GET", "/api/v1/titles", "200")
	before := testutil.ToFloat64(c)

	RecordAPIRequest("GET", "/api/v1/titles", "200", 5*time.Millisecond)

	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("delta = %v, want 1", got)
	}
}
