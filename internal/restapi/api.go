// Package restapi exposes the route statistics, timetable, geometry, and
// export operations over HTTP as JSON envelope responses.
package restapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"routekit.transitlab.org/internal/app"
)

// RestAPI wires the application dependencies into the HTTP handlers.
type RestAPI struct {
	*app.Application
}

func NewRestAPI(application *app.Application) *RestAPI {
	return &RestAPI{Application: application}
}

// SetRoutes registers the API surface on mux. Cache lifetimes follow the
// data: feed-derived responses are stable until the feed is reloaded, so
// they get a long public max-age; health and metrics are never cached.
func (api *RestAPI) SetRoutes(mux *http.ServeMux) {
	cached := func(h http.HandlerFunc) http.Handler {
		return CacheControlMiddleware(3600, h)
	}
	uncached := func(h http.HandlerFunc) http.Handler {
		return CacheControlMiddleware(0, h)
	}

	mux.Handle("GET /api/routes.json", cached(api.routesHandler))
	mux.Handle("GET /api/routes/stats.json", cached(api.routeStatsHandler))
	mux.Handle("GET /api/routes/timeseries.json", cached(api.timeSeriesHandler))
	mux.Handle("GET /api/routes/active.json", cached(api.activeRoutesHandler))
	mux.Handle("GET /api/routes/geometries.json", cached(api.geometriesHandler))
	mux.Handle("GET /api/routes.geojson", cached(api.geoJSONHandler))
	mux.Handle("GET /api/routes/map.html", cached(api.mapHandler))
	mux.Handle("GET /api/routes/{id}/timetable.json", cached(api.timetableHandler))
	mux.Handle("GET /api/routes-for-location.json", cached(api.routesForLocationHandler))

	mux.Handle("GET /api/health.json", uncached(api.healthHandler))
	if api.Metrics != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(api.Metrics.Registry, promhttp.HandlerOpts{}))
	}
}
