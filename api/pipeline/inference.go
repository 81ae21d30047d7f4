package pipeline

import (
	"math"

	"github.com/pkg/errors"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/artifacts"
)

const completedClass = 1

// Infer scores one record. The reported probability is that of the completed
// class even when the predicted class is the other one.
func Infer(rec EncodedRecord, model artifacts.Classifier) (PredictionResult, error) {
	features := rec.Vector()

	class, err := model.Predict(features)
	if err != nil {
		return PredictionResult{}, inference(errors.Wrap(err, "predict failed"))
	}
	proba, err := model.PredictProba(features)
	if err != nil {
		return PredictionResult{}, inference(errors.Wrap(err, "predict_proba failed"))
	}

	idx := artifacts.ClassIndex(model.Classes(), completedClass)
	if idx < 0 || idx >= len(proba) {
		return PredictionResult{}, inference(errors.Errorf("no probability for class %d in %v", completedClass, proba))
	}
	p := proba[idx]
	if math.IsNaN(p) || p < 0 || p > 1 {
		return PredictionResult{}, inference(errors.Errorf("probability %v out of range", p))
	}

	return PredictionResult{
		Completed:   class == completedClass,
		Probability: p,
	}, nil
}
