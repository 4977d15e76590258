// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package api serves the read-only recommendation query API over chi.
//
// Endpoints:
//
//	GET /api/v1/titles                         every catalog title
//	GET /api/v1/recommendations?title=&count=  enriched neighbors of a title
//	GET /api/v1/featured[?ids=1,2,3]           showcase, sampled or by id
//	GET /api/v1/stats/performance              per-route latency window
//	GET /health/live, /health/ready            probes
//	GET /metrics                               Prometheus
//	GET /swagger/*                             API docs
//
// Every JSON response uses the APIResponse envelope. Failures carry one of
// the ErrCode constants; an unknown title is 404 NOT_FOUND with the message
// "Movie not found in the dataset.".
package api
