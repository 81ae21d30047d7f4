package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/artifacts"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/pipeline"
	"gitlab.uncharted.software/WM/wm-booking-predictor/config"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Logger:      zap.NewNop().Sugar(),
		Environment: &config.Environment{Mode: config.ModeDev},
	}
}

func testPaths() artifacts.Paths {
	dir := filepath.Join("..", "artifacts", "testdata")
	return artifacts.Paths{
		Model:    filepath.Join(dir, "airline_model.json"),
		Scaler:   filepath.Join(dir, "scaler.json"),
		Encoders: filepath.Join(dir, "encoders.json"),
	}
}

func testRunner(paths artifacts.Paths) *pipeline.Runner {
	return pipeline.NewRunner(testConfig(), artifacts.NewStore(paths), nil)
}

func brokenRunner() *pipeline.Runner {
	paths := testPaths()
	paths.Encoders = "missing.json"
	return testRunner(paths)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodPost, "/api/predict", bytes.NewReader(data)))
	return w
}

func booking() pipeline.RawBooking {
	return pipeline.RawBooking{
		NumPassengers:  1,
		SalesChannel:   "Internet",
		TripType:       "RoundTrip",
		PurchaseLead:   30,
		LengthOfStay:   5,
		FlightHour:     12,
		FlightDay:      "Mon",
		Route:          "AKLDEL",
		BookingOrigin:  "Australia",
		FlightDuration: 5.0,
	}
}
