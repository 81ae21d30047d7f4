package main

import (
	"net/http"

	"github.com/spf13/cobra"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/artifacts"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/metrics"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/pipeline"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the booking form and prediction API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func artifactStore() *artifacts.Store {
	env := cfg.Environment
	return artifacts.NewStore(artifacts.Paths{
		Model:    env.ModelPath(),
		Scaler:   env.ScalerPath(),
		Encoders: env.EncodersPath(),
	})
}

// loadRunner builds the runner and loads the artifacts up front, so a missing or
// corrupt artifact stops the process before it accepts any request.
func loadRunner(collector *metrics.Collector) (*pipeline.Runner, error) {
	runner := pipeline.NewRunner(&cfg, artifactStore(), collector)
	bundle, err := runner.Bundle()
	if err != nil {
		return nil, err
	}
	fp := bundle.Fingerprints()
	cfg.Logger.Infof("Loaded artifacts model=%s scaler=%s encoders=%s", fp.Model, fp.Scaler, fp.Encoders)
	return runner, nil
}

func serve() error {
	sugar := cfg.Logger
	env := cfg.Environment

	// Log version
	sugar.Infof("Version: %s Timestamp: %s", version, timestamp)

	// Log config
	sugar.Info(env)

	var collector *metrics.Collector
	if env.MetricsEnabled {
		collector = metrics.NewCollector()
	}

	runner, err := loadRunner(collector)
	if err != nil {
		sugar.Fatal(err)
	}

	// Setup router
	r, err := api.NewRouter(cfg, runner, collector, api.BuildInfo{Version: version, Timestamp: timestamp})
	if err != nil {
		sugar.Fatal(err)
	}

	// Start listening
	sugar.Infof("Listening on %s", env.Addr)
	return http.ListenAndServe(env.Addr, r)
}
