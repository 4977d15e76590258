// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package testinfra provides shared test infrastructure.
//
// # TMDb Fake
//
// MockTMDbServer is an httptest server that answers GET /movie/{id} from an
// in-memory table. It records every request and can be told to fail specific
// ids, which lets enrichment, service and API tests run without network
// access:
//
//	tmdb := testinfra.NewMockTMDbServer(t)
//	tmdb.AddMovie(testinfra.MockMovie{ID: 19995, Title: "Avatar", PosterPath: "/avatar.jpg"})
//	tmdb.FailWith(13, http.StatusServiceUnavailable)
//
// # Containers
//
// Files behind the integration build tag start real dependencies with
// testcontainers-go. Tests skip when no container provider is healthy:
//
//	func TestRedisCache(t *testing.T) {
//	    testcontainers.SkipIfProviderIsNotHealthy(t)
//	    redis, err := testinfra.NewRedisContainer(ctx)
//	    ...
//	}
package testinfra
