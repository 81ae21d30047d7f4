package pipeline

import (
	"time"

	"github.com/google/uuid"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/artifacts"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/metrics"
	"gitlab.uncharted.software/WM/wm-booking-predictor/config"
)

// Runner services prediction requests against the shared artifact store.
type Runner struct {
	config.Config
	store   *artifacts.Store
	metrics *metrics.Collector
}

// NewRunner creates a runner. collector may be nil when metrics are disabled.
func NewRunner(cfg *config.Config, store *artifacts.Store, collector *metrics.Collector) *Runner {
	return &Runner{
		Config: config.Config{
			Logger:      cfg.Logger,
			Environment: cfg.Environment,
		},
		store:   store,
		metrics: collector,
	}
}

// Bundle returns the loaded artifacts.
func (r *Runner) Bundle() (*artifacts.Bundle, error) {
	bundle, err := r.store.Load()
	if err != nil {
		return nil, artifactLoad(err)
	}
	return bundle, nil
}

// Predict runs one booking through the pipeline and records the outcome.
func (r *Runner) Predict(raw RawBooking) (Prediction, error) {
	start := time.Now()
	id := uuid.New().String()

	result, err := r.predict(raw)
	elapsed := time.Since(start)
	if err != nil {
		kind := KindOf(err)
		r.metrics.ObserveFailure(kind.String(), elapsed)
		if kind == KindArtifactLoad || kind == KindInference {
			r.Logger.Errorf("prediction %s failed: %+v", id, err)
		} else {
			r.Logger.Infof("prediction %s rejected: %v", id, err)
		}
		return Prediction{}, err
	}

	r.metrics.ObservePrediction(result.Completed, result.Probability, elapsed)
	r.Logger.Debugw("prediction served",
		"id", id,
		"completed", result.Completed,
		"probability", result.Probability,
		"duration", elapsed,
	)
	return Prediction{ID: id, PredictionResult: result}, nil
}

func (r *Runner) predict(raw RawBooking) (PredictionResult, error) {
	bundle, err := r.Bundle()
	if err != nil {
		return PredictionResult{}, err
	}
	return Run(raw, bundle)
}
