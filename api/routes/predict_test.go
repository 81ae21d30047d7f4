package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictRequest(t *testing.T) {
	handler := PredictRequest(testConfig(), testRunner(testPaths()))

	w := postJSON(t, handler, booking())
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, false, resp["completed"])
	assert.InDelta(t, 0.375, resp["probability"], 1e-9)

	_, err := uuid.Parse(resp["prediction_id"].(string))
	assert.NoError(t, err)
}

func TestPredictRequestCompleted(t *testing.T) {
	handler := PredictRequest(testConfig(), testRunner(testPaths()))

	b := booking()
	b.WantsExtraBaggage = true
	b.FlightDuration = 9
	w := postJSON(t, handler, b)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.Completed)
	assert.InDelta(t, 0.75, resp.Probability, 1e-9)
}

func TestPredictRequestUnknownCategory(t *testing.T) {
	handler := PredictRequest(testConfig(), testRunner(testPaths()))

	b := booking()
	b.Route = "ZZZ-ZZZ"
	w := postJSON(t, handler, b)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "unknown_category", resp.Kind)
	assert.Equal(t, "route", resp.Field)
	assert.Equal(t, `"ZZZ-ZZZ" is not a known route.`, resp.Message)
}

func TestPredictRequestInvalidInput(t *testing.T) {
	handler := PredictRequest(testConfig(), testRunner(testPaths()))

	b := booking()
	b.FlightDay = "Someday"
	w := postJSON(t, handler, b)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_input", resp.Kind)
	assert.Equal(t, "flight_day", resp.Field)
}

func TestPredictRequestBadBody(t *testing.T) {
	handler := PredictRequest(testConfig(), testRunner(testPaths()))

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodPost, "/api/predict", strings.NewReader(`{"num_passengers": "one"`)))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_input", resp.Kind)
	assert.Equal(t, "The booking could not be read.", resp.Message)
}

func TestPredictRequestArtifactsUnavailable(t *testing.T) {
	handler := PredictRequest(testConfig(), brokenRunner())

	w := postJSON(t, handler, booking())
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "artifact_load", resp.Kind)
	assert.NotContains(t, resp.Message, "missing.json")
}
