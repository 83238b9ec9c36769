package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIKeyMiddlewareRejectsMissingKey(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/routes.json")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "permission denied", model.Text)
}

func TestAPIKeyMiddlewareOpenInstance(t *testing.T) {
	api := createTestApi(t)
	api.Config.ApiKeys = nil

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/routes.json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", model.Text)
}

func TestAPIKeyMiddlewareOpenPaths(t *testing.T) {
	api := createTestApi(t)
	server := newTestServer(t, api)

	for _, endpoint := range []string{"/api/health.json", "/metrics"} {
		resp, err := http.Get(server.URL + endpoint)
		assert.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, "open path %s should not require a key", endpoint)
	}
}

func TestAPIKeyMiddlewareAcceptsAnyConfiguredKey(t *testing.T) {
	api := createTestApi(t)
	api.Config.ApiKeys = []string{"alpha", "beta"}

	for _, key := range []string{"alpha", "beta"} {
		resp, _ := serveApiAndRetrieveEndpoint(t, api, "/api/routes.json?key="+key)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, _ := serveApiAndRetrieveEndpoint(t, api, "/api/routes.json?key=gamma")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
