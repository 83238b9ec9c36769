package restapi

import (
	"net/http"

	"routekit.transitlab.org/internal/feed"
	"routekit.transitlab.org/internal/models"
	"routekit.transitlab.org/internal/routestats"
)

// activeRoutesHandler returns the routes with service on a date, optionally
// narrowed to those with a trip in motion at a time of day.
func (api *RestAPI) activeRoutesHandler(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		api.validationErrorResponse(w, r, map[string][]string{"date": {"is required"}})
		return
	}
	if _, err := feed.ParseDate(date); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"date": {"must be a YYYYMMDD date"}})
		return
	}
	timeOfDay := r.URL.Query().Get("time")

	api.FeedManager.RLock()
	defer api.FeedManager.RUnlock()

	routes, err := routestats.ActiveRoutes(api.FeedManager.Feed(), date, timeOfDay)
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"time": {err.Error()}})
		return
	}

	api.sendOK(w, r, map[string]interface{}{
		"date": date,
		"list": models.NewRouteEntries(routes),
	})
}
