package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "booking_predictor"

// Collector records prediction outcomes. A nil *Collector discards everything.
type Collector struct {
	registry    *prometheus.Registry
	predictions *prometheus.CounterVec
	failures    *prometheus.CounterVec
	duration    prometheus.Histogram
	probability prometheus.Histogram
}

// NewCollector registers the prediction collectors on a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Predictions served, by predicted outcome.",
		}, []string{"outcome"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_failures_total",
			Help:      "Requests rejected by the pipeline, by error kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Time spent assembling, transforming and scoring one booking.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
		probability: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_probability",
			Help:      "Distribution of the completed-class probability.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 9),
		}),
	}
	c.registry.MustRegister(c.predictions, c.failures, c.duration, c.probability)
	return c
}

// ObservePrediction records a successful prediction.
func (c *Collector) ObservePrediction(completed bool, probability float64, elapsed time.Duration) {
	if c == nil {
		return
	}
	outcome := "not_completed"
	if completed {
		outcome = "completed"
	}
	c.predictions.WithLabelValues(outcome).Inc()
	c.probability.Observe(probability)
	c.duration.Observe(elapsed.Seconds())
}

// ObserveFailure records a rejected request.
func (c *Collector) ObserveFailure(kind string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.failures.WithLabelValues(kind).Inc()
	c.duration.Observe(elapsed.Seconds())
}

// Handler exposes the registry in the prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
