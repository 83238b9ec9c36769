package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routekit.transitlab.org/internal/appconf"
	"routekit.transitlab.org/internal/models"
)

func TestParseAPIKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Single key",
			input:    "test-key",
			expected: []string{"test-key"},
		},
		{
			name:     "Multiple keys",
			input:    "key1,key2,key3",
			expected: []string{"key1", "key2", "key3"},
		},
		{
			name:     "Keys with spaces",
			input:    " key1 , key2 , key3 ",
			expected: []string{"key1", "key2", "key3"},
		},
		{
			name:     "Empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "Trailing comma",
			input:    "key1,key2,",
			expected: []string{"key1", "key2"},
		},
		{
			name:     "Single key with whitespace",
			input:    "  test-key  ",
			expected: []string{"test-key"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseAPIKeys(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// writeTestFeed assembles a minimal static GTFS archive on disk.
func writeTestFeed(t *testing.T) string {
	t.Helper()

	files := map[string]string{
		"agency.txt": "agency_id,agency_name,agency_url,agency_timezone\n" +
			"a1,Transit Lab,https://transitlab.example,America/Los_Angeles\n",
		"routes.txt": "route_id,agency_id,route_short_name,route_long_name,route_type\n" +
			"r10,a1,10,Crosstown,3\n",
		"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\n" +
			"s1,First & Main,47.600,-122.330\n" +
			"s2,Second & Main,47.605,-122.330\n",
		"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
			"svc_wk,1,1,1,1,1,0,0,20250901,20250926\n",
		"trips.txt": "route_id,service_id,trip_id,trip_headsign,direction_id\n" +
			"r10,svc_wk,t1,North,0\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"t1,07:00:00,07:00:00,s1,0\n" +
			"t1,07:15:00,07:15:00,s2,1\n",
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := zw.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "feed.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func testConfig(t *testing.T) appconf.Config {
	return appconf.Config{
		Port:      4000,
		Env:       appconf.Test,
		ApiKeys:   []string{"test"},
		RateLimit: 100,
		FeedPath:  writeTestFeed(t),
	}
}

func TestBuildApplication(t *testing.T) {
	cfg := testConfig(t)

	coreApp, err := BuildApplication(cfg)
	require.NoError(t, err)
	require.NotNil(t, coreApp)
	assert.NotNil(t, coreApp.Logger)
	assert.NotNil(t, coreApp.FeedManager)
	assert.NotNil(t, coreApp.Metrics)
	assert.Equal(t, cfg, coreApp.Config)
	assert.True(t, coreApp.FeedManager.IsReady())
	assert.Len(t, coreApp.TripStats, 1)
}

func TestBuildApplicationMissingFeedPath(t *testing.T) {
	_, err := BuildApplication(appconf.Config{Port: 4000})
	assert.ErrorContains(t, err, "no GTFS feed configured")
}

func TestBuildApplicationNonexistentFeed(t *testing.T) {
	_, err := BuildApplication(appconf.Config{
		Port:     4000,
		FeedPath: filepath.Join(t.TempDir(), "missing.zip"),
	})
	assert.ErrorContains(t, err, "failed to load GTFS feed")
}

func TestCreateServer(t *testing.T) {
	cfg := testConfig(t)
	cfg.Port = 8080

	coreApp, err := BuildApplication(cfg)
	require.NoError(t, err)

	srv, rateLimiter := CreateServer(coreApp, cfg)
	defer rateLimiter.Stop()

	assert.Equal(t, ":8080", srv.Addr)
	assert.Equal(t, time.Minute, srv.IdleTimeout)
	assert.Equal(t, 5*time.Second, srv.ReadTimeout)
	assert.Equal(t, 10*time.Second, srv.WriteTimeout)
	require.NotNil(t, srv.Handler)
}

func TestCreateServerEndToEnd(t *testing.T) {
	cfg := testConfig(t)

	coreApp, err := BuildApplication(cfg)
	require.NoError(t, err)

	srv, rateLimiter := CreateServer(coreApp, cfg)
	defer rateLimiter.Stop()

	server := httptest.NewServer(srv.Handler)
	defer server.Close()

	// The full middleware chain serves an authenticated request.
	resp, err := http.Get(server.URL + "/api/routes.json?key=test")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var model models.ResponseModel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&model))
	assert.Equal(t, "OK", model.Text)

	// And rejects an unauthenticated one.
	resp2, err := http.Get(server.URL + "/api/routes.json")
	require.NoError(t, err)
	_ = resp2.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}
