package restapi

import (
	"errors"
	"net/http"

	"routekit.transitlab.org/internal/export"
	"routekit.transitlab.org/internal/geom"
)

// mapHandler renders a self-contained Leaflet page with the requested
// routes drawn as colored lines.
func (api *RestAPI) mapHandler(w http.ResponseWriter, r *http.Request) {
	includeStops, err := boolParam(r, "include_stops", false)
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"include_stops": {err.Error()}})
		return
	}
	ids := idsParam(r, "ids")

	api.FeedManager.RLock()
	defer api.FeedManager.RUnlock()

	page, err := export.MapRoutes(api.FeedManager.Feed(), ids, includeStops)
	if err != nil {
		switch {
		case errors.Is(err, export.ErrUnknownRoute):
			api.validationErrorResponse(w, r, map[string][]string{"ids": {err.Error()}})
		case errors.Is(err, geom.ErrNoGeometry):
			api.sendError(w, r, http.StatusUnprocessableEntity, err.Error())
		default:
			api.serverErrorResponse(w, r, err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(page); err != nil {
		api.serverErrorResponse(w, r, err)
	}
}
