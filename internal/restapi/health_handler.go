package restapi

import (
	"encoding/json"
	"net/http"
)

// HealthResponse represents the JSON response from the health endpoint.
type HealthResponse struct {
	Status      string `json:"status"`
	Detail      string `json:"detail,omitempty"`
	LastUpdated int64  `json:"lastUpdated,omitempty"`
}

// healthHandler reports readiness. It returns 503 while the feed is still
// being indexed, so load balancers do not route traffic to cold instances.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if api.Application == nil || api.FeedManager == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthResponse{
			Status: "unavailable",
			Detail: "feed manager not initialized",
		})
		return
	}

	if !api.FeedManager.IsReady() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(HealthResponse{
			Status: "starting",
			Detail: "feed is being indexed",
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(HealthResponse{
		Status:      "ok",
		LastUpdated: api.FeedManager.LastUpdated().UnixMilli(),
	})
}
