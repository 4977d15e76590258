// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Command server serves movie recommendations from artifacts produced by
cmd/build.

Startup loads the latest artifact version from the artifacts directory and
exits with a clear message when none is usable. Nothing is recomputed at
startup: the catalog and similarity matrix are read as-is.

	reelmatch
	├── catalog-layer
	│   └── featured-service
	└── api-layer
	    └── http-server

# Configuration

Settings come from defaults, an optional config.yaml and the environment.
The most common variables:

	ARTIFACT_DIR=/data/artifacts
	TMDB_API_KEY=...
	ENRICH_CACHE_BACKEND=badger   # none, badger or redis
	HTTP_PORT=8501
	LOG_LEVEL=debug

# Endpoints

	GET /api/v1/titles
	GET /api/v1/recommendations?title=Avatar&count=5
	GET /api/v1/featured[?ids=19995,285]
	GET /api/v1/stats/performance
	GET /health/live
	GET /health/ready
	GET /metrics
	GET /swagger/index.html

SIGINT and SIGTERM stop the supervisor tree, which shuts the HTTP server
down gracefully.
*/
package main
