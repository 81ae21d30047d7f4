package routes

import (
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/artifacts"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/pipeline"
)

// Predictor is the part of *pipeline.Runner the handlers use.
type Predictor interface {
	Predict(raw pipeline.RawBooking) (pipeline.Prediction, error)
	Bundle() (*artifacts.Bundle, error)
}
