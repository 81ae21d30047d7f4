package routes

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/pkg/errors"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/pipeline"
	"gitlab.uncharted.software/WM/wm-booking-predictor/config"
)

// PredictResponse is returned for a scored booking.
type PredictResponse struct {
	Success bool `json:"success"`
	pipeline.Prediction
}

// PredictRequest scores a JSON encoded booking.
func PredictRequest(cfg *config.Config, predictor Predictor) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw pipeline.RawBooking

		// Decode and respond with a 400 on failure
		if err := render.DecodeJSON(r.Body, &raw); err != nil {
			cfg.Logger.Infof("%v", errors.Wrap(err, "failed to decode predict request body"))
			handleJSON(w, r, http.StatusBadRequest, ErrorResponse{
				Success: false,
				Kind:    pipeline.KindInvalidInput.String(),
				Message: (&pipeline.Error{Kind: pipeline.KindInvalidInput}).Message(),
			})
			return
		}

		prediction, err := predictor.Predict(raw)
		if err != nil {
			handlePipelineError(w, r, err, cfg.Logger)
			return
		}
		handleJSON(w, r, http.StatusOK, PredictResponse{Success: true, Prediction: prediction})
	}
}
