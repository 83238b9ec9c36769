package restapi

import (
	"net/http"

	"routekit.transitlab.org/internal/models"
)

const defaultSearchRadiusMeters = 500.0

// routesForLocationHandler returns the routes serving any stop within
// radius meters of the point, nearest stop first.
func (api *RestAPI) routesForLocationHandler(w http.ResponseWriter, r *http.Request) {
	fieldErrors := map[string][]string{}
	lat, err := floatParam(r, "lat")
	if err != nil {
		fieldErrors["lat"] = []string{err.Error()}
	}
	lon, err := floatParam(r, "lon")
	if err != nil {
		fieldErrors["lon"] = []string{err.Error()}
	}
	radius := defaultSearchRadiusMeters
	if r.URL.Query().Get("radius") != "" {
		radius, err = floatParam(r, "radius")
		if err != nil || radius <= 0 {
			fieldErrors["radius"] = []string{"must be a positive number"}
		}
	}
	if len(fieldErrors) == 0 && (lat < -90 || lat > 90 || lon < -180 || lon > 180) {
		fieldErrors["lat"] = []string{"coordinates are out of bounds"}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	api.FeedManager.RLock()
	defer api.FeedManager.RUnlock()

	routes := api.FeedManager.RoutesNear(lat, lon, radius)
	stops := api.FeedManager.StopsNear(lat, lon, radius)

	api.sendOK(w, r, map[string]interface{}{
		"list":  models.NewRouteEntries(routes),
		"stops": models.NewStopEntries(stops),
	})
}
