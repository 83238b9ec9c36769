// Package metrics provides Prometheus metrics for the routekit application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Registry is the Prometheus registry for this metrics instance
	Registry *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Computation metrics
	ComputationsTotal   *prometheus.CounterVec
	ComputationDuration *prometheus.HistogramVec

	// Feed metrics
	FeedRoutes prometheus.Gauge
	FeedTrips  prometheus.Gauge
	FeedStops  prometheus.Gauge
}

// New creates and registers all application metrics with a new registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routekit_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "routekit_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	computationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "routekit_computations_total",
			Help: "Total number of statistic computations by product",
		},
		[]string{"product"},
	)

	computationDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "routekit_computation_duration_seconds",
			Help:    "Statistic computation latency distribution by product",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"product"},
	)

	feedRoutes := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "routekit_feed_routes",
		Help: "Number of routes in the loaded feed",
	})

	feedTrips := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "routekit_feed_trips",
		Help: "Number of trips in the loaded feed",
	})

	feedStops := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "routekit_feed_stops",
		Help: "Number of stops in the loaded feed",
	})

	// Register all metrics with the custom registry
	registry.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		computationsTotal,
		computationDuration,
		feedRoutes,
		feedTrips,
		feedStops,
	)

	return &Metrics{
		Registry:            registry,
		HTTPRequestsTotal:   httpRequestsTotal,
		HTTPRequestDuration: httpRequestDuration,
		ComputationsTotal:   computationsTotal,
		ComputationDuration: computationDuration,
		FeedRoutes:          feedRoutes,
		FeedTrips:           feedTrips,
		FeedStops:           feedStops,
	}
}

// ObserveComputation records one computation of the named product.
func (m *Metrics) ObserveComputation(product string, seconds float64) {
	if m == nil {
		return
	}
	m.ComputationsTotal.WithLabelValues(product).Inc()
	m.ComputationDuration.WithLabelValues(product).Observe(seconds)
}

// SetFeedSizes updates the feed table gauges after a load.
func (m *Metrics) SetFeedSizes(routes, trips, stops int) {
	if m == nil {
		return
	}
	m.FeedRoutes.Set(float64(routes))
	m.FeedTrips.Set(float64(trips))
	m.FeedStops.Set(float64(stops))
}
