// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// @title ReelMatch API
// @version 1.0
// @description Content-based movie recommendations over the TMDb 5000 catalog.
// @description
// @description Pick a title from `/api/v1/titles` and ask `/api/v1/recommendations`
// @description for the most similar movies. Only results with a TMDb poster are returned.
// @description
// @description ## Rate Limiting
// @description
// @description Default rate limit: 100 requests per minute per IP address on /api/v1.
// @description
// @description ## Error Responses
// @description
// @description ```json
// @description {
// @description   "success": false,
// @description   "error": {"code": "NOT_FOUND", "message": "Movie not found in the dataset."},
// @description   "meta": {"timestamp": "2026-01-01T00:00:00Z", "query_time_ms": 0}
// @description }
// @description ```
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/reelmatch/issues
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /
// @schemes http https
//
// @tag.name Recommendations
// @tag.description Title listing, similarity queries and the featured showcase
//
// @tag.name Health
// @tag.description Liveness and readiness probes
//
// @tag.name Observability
// @tag.description Request latency statistics
package main
