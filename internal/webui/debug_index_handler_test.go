package webui

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routekit.transitlab.org/internal/app"
	"routekit.transitlab.org/internal/appconf"
	"routekit.transitlab.org/internal/clock"
	"routekit.transitlab.org/internal/feed"
	"routekit.transitlab.org/internal/tripstats"
)

func createTestWebUI(t *testing.T, env appconf.Environment) *WebUI {
	t.Helper()

	f := feed.Fixture()
	return NewWebUI(&app.Application{
		Config:      appconf.Config{Env: env},
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		FeedManager: feed.NewManager(f),
		TripStats:   tripstats.Compute(f),
		Clock:       clock.NewMockClock(time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)),
	})
}

func getDebugPage(t *testing.T, webUI *WebUI, endpoint string) (*http.Response, string) {
	t.Helper()

	mux := http.NewServeMux()
	webUI.SetWebUIRoutes(mux)
	server := httptest.NewServer(mux)
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestDebugIndexHandlerDumpsFeedTables(t *testing.T) {
	webUI := createTestWebUI(t, appconf.Development)

	tests := []struct {
		dataType string
		want     string
	}{
		{"routes", "r10"},
		{"trips", "t6"},
		{"stops", "First &amp; Main"},
		{"stop_times", "s1"},
		{"shapes", "shpA"},
		{"services", "svc_wk"},
		{"trip_stats", "TripStats"},
	}
	for _, tt := range tests {
		t.Run(tt.dataType, func(t *testing.T) {
			resp, body := getDebugPage(t, webUI, "/debug?dataType="+tt.dataType)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
			assert.Contains(t, body, tt.want)
		})
	}
}

func TestDebugIndexHandlerDefaultPage(t *testing.T) {
	webUI := createTestWebUI(t, appconf.Development)

	resp, body := getDebugPage(t, webUI, "/debug")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Please use one of the following")
}

func TestDebugIndexHandlerDisabledInProduction(t *testing.T) {
	webUI := createTestWebUI(t, appconf.Production)

	resp, _ := getDebugPage(t, webUI, "/debug?dataType=routes")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
