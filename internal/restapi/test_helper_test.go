package restapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"routekit.transitlab.org/internal/app"
	"routekit.transitlab.org/internal/appconf"
	"routekit.transitlab.org/internal/clock"
	"routekit.transitlab.org/internal/feed"
	"routekit.transitlab.org/internal/metrics"
	"routekit.transitlab.org/internal/models"
	"routekit.transitlab.org/internal/tripstats"
)

// createTestApi builds a RestAPI over the in-memory fixture feed with a
// single valid key "TEST".
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	f := feed.Fixture()
	coreApp := &app.Application{
		Config: appconf.Config{
			Env:     appconf.Test,
			ApiKeys: []string{"TEST"},
		},
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		FeedManager: feed.NewManager(f),
		TripStats:   tripstats.Compute(f),
		Clock:       clock.NewMockClock(time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)),
		Metrics:     metrics.New(),
	}
	return NewRestAPI(coreApp)
}

// buildTestHandler assembles the routes behind the API key middleware, the
// innermost slice of the production chain.
func buildTestHandler(api *RestAPI) http.Handler {
	mux := http.NewServeMux()
	api.SetRoutes(mux)
	return api.APIKeyMiddleware(mux)
}

// newTestServer starts an in-process server torn down with the test.
func newTestServer(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(buildTestHandler(api))
	t.Cleanup(server.Close)
	return server
}

// serveApiAndRetrieveEndpoint issues a GET against an in-process server and
// decodes the envelope response.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()

	server := httptest.NewServer(buildTestHandler(api))
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var model models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&model))
	return resp, model
}

// serveApiRaw issues a GET and returns the raw body, for the endpoints that
// do not use the envelope (GeoJSON, the map page, health).
func serveApiRaw(t *testing.T, api *RestAPI, endpoint string) (*http.Response, []byte) {
	t.Helper()

	server := httptest.NewServer(buildTestHandler(api))
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// dataList extracts data.list from an envelope as a slice of objects.
func dataList(t *testing.T, model models.ResponseModel) []interface{} {
	t.Helper()

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	list, ok := data["list"].([]interface{})
	require.True(t, ok, "data.list should be an array")
	return list
}

// fieldErrorsFor extracts data.fieldErrors[field] from a validation response.
func fieldErrorsFor(t *testing.T, model models.ResponseModel, field string) []interface{} {
	t.Helper()

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object")
	fieldErrors, ok := data["fieldErrors"].(map[string]interface{})
	require.True(t, ok, "data.fieldErrors should be an object")
	errs, ok := fieldErrors[field].([]interface{})
	require.True(t, ok, "fieldErrors should contain %q", field)
	return errs
}
