// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package middleware provides the HTTP middleware used by the query API.

Components:

  - RequestID: accepts or generates an X-Request-ID and stores it in the
    request context for logging
  - PrometheusMetrics: request count, duration and in-flight gauge, labeled
    by chi route pattern so path parameters do not explode cardinality
  - PerformanceMonitor: sliding window of recent request latencies with
    per-route percentiles, served from /api/v1/stats/performance

All middleware has the chi signature func(http.Handler) http.Handler.

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perf.Middleware)
*/
package middleware
