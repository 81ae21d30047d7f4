package routes

import (
	"net/http"

	"gitlab.uncharted.software/WM/wm-booking-predictor/api/artifacts"
	"gitlab.uncharted.software/WM/wm-booking-predictor/config"
)

// StatusResponse describes the running build and the artifacts it serves.
type StatusResponse struct {
	Version      string                 `json:"version"`
	Timestamp    string                 `json:"timestamp"`
	Fingerprints artifacts.Fingerprints `json:"artifacts"`
	Trees        int                    `json:"trees"`
	Features     []string               `json:"features"`
}

// StatusRequest creates a get request handler that reports the build and artifact status.
func StatusRequest(cfg *config.Config, predictor Predictor, version string, timestamp string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		bundle, err := predictor.Bundle()
		if err != nil {
			handlePipelineError(w, r, err, cfg.Logger)
			return
		}

		status := StatusResponse{
			Version:      version,
			Timestamp:    timestamp,
			Fingerprints: bundle.Fingerprints(),
			Features:     artifacts.Columns,
		}
		if forest, ok := bundle.Model().(*artifacts.RandomForest); ok {
			status.Trees = forest.NumTrees()
		}
		handleJSON(w, r, http.StatusOK, status)
	}
}
