package restapi

import (
	"net/http"
	"strings"
)

// openPaths are reachable without a key: probes and scrapers do not carry
// credentials, and the debug pages gate on environment instead.
var openPaths = []string{"/api/health.json", "/metrics", "/debug"}

// APIKeyMiddleware rejects requests without a valid key. It sits inside the
// request-id and logging middleware so rejected requests are still logged.
func (api *RestAPI) APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// No configured keys means an open instance.
		if len(api.Config.ApiKeys) == 0 {
			next.ServeHTTP(w, r)
			return
		}
		for _, p := range openPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}
		if api.RequestHasInvalidAPIKey(r) {
			api.sendUnauthorized(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
