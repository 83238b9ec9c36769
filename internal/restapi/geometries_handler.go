package restapi

import (
	"errors"
	"net/http"
	"time"

	"routekit.transitlab.org/internal/geom"
	"routekit.transitlab.org/internal/models"
)

// geometriesHandler returns assembled route line geometries, geographic by
// default or UTM-projected on request.
func (api *RestAPI) geometriesHandler(w http.ResponseWriter, r *http.Request) {
	split, err := boolParam(r, "split_directions", false)
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"split_directions": {err.Error()}})
		return
	}
	projected, err := boolParam(r, "projected", false)
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"projected": {err.Error()}})
		return
	}
	ids := idsParam(r, "ids")

	api.FeedManager.RLock()
	defer api.FeedManager.RUnlock()

	start := time.Now()
	geoms, err := geom.GeometrizeRoutes(api.FeedManager.Feed(), ids, geom.Options{
		SplitDirections: split,
		Projected:       projected,
	})
	if err != nil {
		if errors.Is(err, geom.ErrNoGeometry) {
			api.sendError(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}
		api.serverErrorResponse(w, r, err)
		return
	}
	if api.Metrics != nil {
		api.Metrics.ObserveComputation("geometries", time.Since(start).Seconds())
	}

	api.sendOK(w, r, map[string]interface{}{
		"list": models.NewGeometryEntries(geoms),
	})
}
