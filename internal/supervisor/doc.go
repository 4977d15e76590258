// ReelMatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package supervisor runs the recommendation server's long-lived services
under a suture v4 tree.

	reelmatch
	├── catalog-layer
	│   └── FeaturedService (periodic showcase resampling)
	└── api-layer
	    └── HTTPServerService

The catalog and similarity matrix are loaded once before the tree starts
and are not supervised: they are immutable for the life of the process.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddCatalogService(featured)
	tree.AddAPIService(services.NewHTTPServerService(server, addr, 10*time.Second, logger))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

# Failure Handling

Each failure increments a counter that decays over FailureDecay seconds.
Past FailureThreshold the supervisor waits FailureBackoff before the next
restart. Services return suture.ErrDoNotRestart to finish for good.

Suture events are logged through sutureslog on the slog bridge provided
by the logging package.
*/
package supervisor
