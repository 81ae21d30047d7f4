package routes

import (
	"net/http"

	"gitlab.uncharted.software/WM/wm-booking-predictor/api/artifacts"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/pipeline"
	"gitlab.uncharted.software/WM/wm-booking-predictor/config"
)

// CategoriesRequest returns the selectable values of every categorical field,
// as known to the loaded encoders, plus the day labels.
func CategoriesRequest(cfg *config.Config, predictor Predictor) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		bundle, err := predictor.Bundle()
		if err != nil {
			handlePipelineError(w, r, err, cfg.Logger)
			return
		}

		categories := map[string][]string{
			artifacts.FieldFlightDay: pipeline.Days,
		}
		for _, field := range bundle.Fields() {
			values, err := bundle.EncoderCategories(field)
			if err != nil {
				handleErrorType(w, err, http.StatusInternalServerError, cfg.Logger)
				return
			}
			categories[field] = values
		}
		handleJSON(w, r, http.StatusOK, categories)
	}
}
