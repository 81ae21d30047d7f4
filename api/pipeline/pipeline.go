package pipeline

import (
	"github.com/pkg/errors"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/artifacts"
)

// Run takes one raw booking through assemble, range check, transform and
// inference. Any failure is a *Error and no partial result is returned.
func Run(raw RawBooking, bundle *artifacts.Bundle) (PredictionResult, error) {
	if bundle == nil {
		return PredictionResult{}, artifactLoad(errors.New("no artifacts loaded"))
	}

	req, err := Assemble(raw)
	if err != nil {
		return PredictionResult{}, err
	}
	if err := CheckRanges(req); err != nil {
		return PredictionResult{}, err
	}
	rec, err := Transform(req, bundle)
	if err != nil {
		return PredictionResult{}, err
	}
	return Infer(rec, bundle.Model())
}
