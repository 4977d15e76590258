// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package services adapts server components to suture.Service.
//
// HTTPServerService translates http.Server's ListenAndServe/Shutdown pair
// into a context-driven Serve. FeaturedService resamples the landing-page
// showcase on an interval and exposes the latest sample to the API.
package services
