package restapi

import (
	"errors"
	"net/http"
	"time"

	"routekit.transitlab.org/internal/models"
	"routekit.transitlab.org/internal/routestats"
)

// routeStatsHandler returns aggregated per-route statistics. With a dates
// parameter the rows are computed per date from the trips active on it;
// without one they cover every trip in the feed.
func (api *RestAPI) routeStatsHandler(w http.ResponseWriter, r *http.Request) {
	opts, fieldErrors := api.statsOptions(r)
	if fieldErrors != nil {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}
	dates, err := datesParam(r, "dates")
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"dates": {err.Error()}})
		return
	}

	api.FeedManager.RLock()
	defer api.FeedManager.RUnlock()

	start := time.Now()
	var rows []routestats.RouteStats
	if dates == nil {
		rows, err = routestats.ComputeStatsBase(api.TripStats, opts)
	} else {
		rows, err = routestats.ComputeStats(api.FeedManager.Feed(), api.TripStats, dates, opts)
	}
	if err != nil {
		if errors.Is(err, routestats.ErrMissingDirections) {
			api.validationErrorResponse(w, r, map[string][]string{"split_directions": {err.Error()}})
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}
	if api.Metrics != nil {
		api.Metrics.ObserveComputation("route_stats", time.Since(start).Seconds())
	}

	api.sendOK(w, r, map[string]interface{}{
		"list": models.NewRouteStatsEntries(rows),
	})
}
