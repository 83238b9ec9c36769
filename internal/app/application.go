package app

import (
	"log/slog"

	"routekit.transitlab.org/internal/appconf"
	"routekit.transitlab.org/internal/clock"
	"routekit.transitlab.org/internal/feed"
	"routekit.transitlab.org/internal/metrics"
	"routekit.transitlab.org/internal/tripstats"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config      appconf.Config
	Logger      *slog.Logger
	FeedManager *feed.Manager
	// TripStats is precomputed once per feed load; every aggregation
	// endpoint reads from it.
	TripStats []tripstats.TripStats
	Clock     clock.Clock
	Metrics   *metrics.Metrics
}
