package restapi

import (
	"net/http"

	"routekit.transitlab.org/internal/models"
)

// routesHandler lists every route in the loaded feed.
func (api *RestAPI) routesHandler(w http.ResponseWriter, r *http.Request) {
	api.FeedManager.RLock()
	defer api.FeedManager.RUnlock()

	api.sendOK(w, r, map[string]interface{}{
		"list": models.NewRouteEntries(api.FeedManager.Feed().Routes),
	})
}
