package restapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routekit.transitlab.org/internal/feed"
)

func TestHealthHandlerReady(t *testing.T) {
	api := createTestApi(t)

	// Health is an open path: no key needed.
	resp, body := serveApiRaw(t, api, "/api/health.json")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))

	var health HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "ok", health.Status)
	assert.NotZero(t, health.LastUpdated)
}

func TestHealthHandlerNotReady(t *testing.T) {
	api := createTestApi(t)
	api.FeedManager = &feed.Manager{}

	resp, body := serveApiRaw(t, api, "/api/health.json")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "starting", health.Status)
}

func TestHealthHandlerMissingFeedManager(t *testing.T) {
	api := createTestApi(t)
	api.FeedManager = nil

	resp, body := serveApiRaw(t, api, "/api/health.json")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "unavailable", health.Status)
}
