package restapi

import (
	"net/http"

	"routekit.transitlab.org/internal/models"
	"routekit.transitlab.org/internal/routestats"
	"routekit.transitlab.org/internal/utils"
)

// timetableHandler returns the (date, trip, stop) rows of one route's
// timetable over the requested dates, defaulting to the feed's whole
// calendar span.
func (api *RestAPI) timetableHandler(w http.ResponseWriter, r *http.Request) {
	routeID := utils.ExtractIDFromParams(r)
	if err := utils.ValidateID(routeID); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}
	dates, err := datesParam(r, "dates")
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"dates": {err.Error()}})
		return
	}

	api.FeedManager.RLock()
	defer api.FeedManager.RUnlock()

	f := api.FeedManager.Feed()
	route, ok := f.RouteByID(routeID)
	if !ok {
		api.sendNotFound(w, r)
		return
	}
	if dates == nil {
		dates = f.ValidDates()
	}

	rows := routestats.BuildTimetable(f, routeID, dates)
	api.sendOK(w, r, map[string]interface{}{
		"route": models.NewRouteEntry(route),
		"list":  models.NewTimetableEntries(rows),
	})
}
