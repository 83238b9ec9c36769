package restapi

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routekit.transitlab.org/internal/models"
)

func TestSendOKEnvelope(t *testing.T) {
	api := createTestApi(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "http://example.com/", nil)
	api.sendOK(rec, req, map[string]interface{}{"hello": "world"})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var model models.ResponseModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &model))
	assert.Equal(t, http.StatusOK, model.Code)
	assert.Equal(t, "OK", model.Text)
	assert.Equal(t, 2, model.Version)
	assert.Equal(t, api.Clock.NowUnixMilli(), model.CurrentTime)

	data, ok := model.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "world", data["hello"])
}

func TestValidationErrorResponse(t *testing.T) {
	api := createTestApi(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "http://example.com/", nil)
	api.validationErrorResponse(rec, req, map[string][]string{"lat": {"is required"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var model models.ResponseModel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &model))
	assert.Equal(t, "validation failed", model.Text)
	assert.Equal(t, []interface{}{"is required"}, fieldErrorsFor(t, model, "lat"))
}

func TestCompressionMiddleware(t *testing.T) {
	api := createTestApi(t)

	server := httptest.NewServer(CompressionMiddleware(buildTestHandler(api)))
	defer server.Close()

	req, err := http.NewRequest("GET", server.URL+"/api/routes/timeseries.json?key=TEST", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Encoding", "gzip")

	client := &http.Client{Transport: &http.Transport{DisableCompression: true}}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

	gz, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(gz)
	require.NoError(t, err)

	var model models.ResponseModel
	require.NoError(t, json.Unmarshal(body, &model))
	assert.Equal(t, http.StatusOK, model.Code)
}
