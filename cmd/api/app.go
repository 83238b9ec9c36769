package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"routekit.transitlab.org/internal/app"
	"routekit.transitlab.org/internal/appconf"
	"routekit.transitlab.org/internal/clock"
	"routekit.transitlab.org/internal/feed"
	"routekit.transitlab.org/internal/logging"
	"routekit.transitlab.org/internal/metrics"
	"routekit.transitlab.org/internal/restapi"
	"routekit.transitlab.org/internal/tripstats"
	"routekit.transitlab.org/internal/webui"
)

// ParseAPIKeys splits a comma-separated key list, trimming whitespace and
// dropping empty entries.
func ParseAPIKeys(raw string) []string {
	keys := []string{}
	for _, key := range strings.Split(raw, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// BuildApplication loads the GTFS feed named by the config, precomputes the
// per-trip statistics every aggregation reads from, and assembles the
// application dependencies.
func BuildApplication(cfg appconf.Config) (*app.Application, error) {
	logger := logging.NewLogger(cfg.Verbose, cfg.JSONLogs)

	if cfg.FeedPath == "" {
		return nil, fmt.Errorf("no GTFS feed configured (set GTFS_FEED_PATH or feed_path)")
	}

	start := time.Now()
	f, err := feed.Load(cfg.FeedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load GTFS feed: %w", err)
	}
	ts := tripstats.Compute(f)

	logging.LogOperation(logger, "feed_loaded",
		slog.String("source", cfg.FeedPath),
		slog.Int("routes", len(f.Routes)),
		slog.Int("trips", len(f.Trips)),
		slog.Duration("duration", time.Since(start)))

	m := metrics.New()
	m.SetFeedSizes(len(f.Routes), len(f.Trips), len(f.Stops))

	return &app.Application{
		Config:      cfg,
		Logger:      logger,
		FeedManager: feed.NewManager(f),
		TripStats:   ts,
		Clock:       clock.RealClock{},
		Metrics:     m,
	}, nil
}

// CreateServer builds the HTTP server with the full middleware chain. The
// returned rate limiter must be stopped on shutdown.
func CreateServer(coreApp *app.Application, cfg appconf.Config) (*http.Server, *restapi.RateLimitMiddleware) {
	api := restapi.NewRestAPI(coreApp)
	ui := webui.NewWebUI(coreApp)

	mux := http.NewServeMux()
	api.SetRoutes(mux)
	ui.SetWebUIRoutes(mux)

	rateLimiter := restapi.NewRateLimitMiddleware(cfg.RateLimit, time.Second, nil, coreApp.Clock)

	var handler http.Handler = mux
	handler = api.APIKeyMiddleware(handler)
	handler = rateLimiter.Handler()(handler)
	handler = restapi.CompressionMiddleware(handler)
	handler = restapi.MetricsHandler(coreApp.Metrics)(handler)
	handler = restapi.NewRequestLoggingMiddleware(coreApp.Logger)(handler)
	handler = restapi.RequestIDMiddleware(handler)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return srv, rateLimiter
}
