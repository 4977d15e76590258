// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend answers "movies like this one" queries from a precomputed
// similarity matrix and joins the ranked candidates with TMDb metadata.
//
// # Architecture
//
// A query flows through three stages:
//
//   - Engine: title lookup and ranking of one similarity row
//   - Enricher: concurrent metadata fetch for an over-fetched candidate set
//   - Assemble: join in rank order, drop items without a poster, truncate
//
// Service composes the stages behind the three query operations used by the
// HTTP API: ListTitles, GetRecommendations and GetFeatured.
//
// # Catalog
//
// The Catalog is built once from the pipeline artifacts and never mutated.
// It is shared by every request without locking.
//
// # Determinism
//
// Candidates are ordered by score descending with ties broken by ascending
// catalog index, so the same query always yields the same ranking.
//
// # Usage
//
//	set, err := storage.LoadArtifacts(ctx, dir)
//	catalog, err := recommend.CatalogFromArtifacts(set, logger)
//	engine, err := recommend.NewEngine(catalog, recommend.DefaultConfig(), logger)
//	svc := recommend.NewService(catalog, engine, enrichClient, cfg, logger)
//
//	resp, err := svc.GetRecommendations(ctx, "Avatar", 5)
package recommend
