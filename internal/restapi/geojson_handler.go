package restapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"routekit.transitlab.org/internal/export"
	"routekit.transitlab.org/internal/geom"
)

// geoJSONHandler returns a FeatureCollection of route lines and, when
// include_stops is set, the distinct stops those routes serve. The body is
// plain GeoJSON rather than the envelope so map clients can load the URL
// directly.
func (api *RestAPI) geoJSONHandler(w http.ResponseWriter, r *http.Request) {
	includeStops, err := boolParam(r, "include_stops", true)
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"include_stops": {err.Error()}})
		return
	}
	ids := idsParam(r, "ids")

	api.FeedManager.RLock()
	defer api.FeedManager.RUnlock()

	fc, err := export.RoutesToGeoJSON(api.FeedManager.Feed(), ids, includeStops)
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

	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(fc); err != nil {
		api.serverErrorResponse(w, r, err)
	}
}
