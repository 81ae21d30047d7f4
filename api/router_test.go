package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/artifacts"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/metrics"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/pipeline"
	"gitlab.uncharted.software/WM/wm-booking-predictor/config"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, collector *metrics.Collector) *httptest.Server {
	cfg := config.Config{
		Logger:      zap.NewNop().Sugar(),
		Environment: &config.Environment{Mode: config.ModeDev},
	}
	dir := filepath.Join("artifacts", "testdata")
	store := artifacts.NewStore(artifacts.Paths{
		Model:    filepath.Join(dir, "airline_model.json"),
		Scaler:   filepath.Join(dir, "scaler.json"),
		Encoders: filepath.Join(dir, "encoders.json"),
	})
	runner := pipeline.NewRunner(&cfg, store, collector)

	r, err := NewRouter(cfg, runner, collector, BuildInfo{Version: "test", Timestamp: "now"})
	require.NoError(t, err)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func TestRouterPredict(t *testing.T) {
	collector := metrics.NewCollector()
	server := newTestServer(t, collector)

	body, err := json.Marshal(map[string]interface{}{
		"num_passengers":        1,
		"sales_channel":         "Internet",
		"trip_type":             "RoundTrip",
		"purchase_lead":         30,
		"length_of_stay":        5,
		"flight_hour":           12,
		"flight_day":            "Mon",
		"route":                 "DMKKIX",
		"booking_origin":        "Japan",
		"wants_extra_baggage":   false,
		"wants_preferred_seat":  false,
		"wants_in_flight_meals": false,
		"flight_duration":       5.0,
	})
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/api/predict", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	p := result["probability"].(float64)
	assert.True(t, p >= 0 && p <= 1)

	metricsResp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()
	assert.Equal(t, http.StatusOK, metricsResp.StatusCode)
}

func TestRouterEndpoints(t *testing.T) {
	server := newTestServer(t, nil)

	for _, path := range []string{"/", "/api/categories", "/status"} {
		resp, err := http.Get(server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	// metrics are not mounted without a collector
	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(server.URL + "/api/predict")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
