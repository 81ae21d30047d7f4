package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const (
	// ModeDev enables development logging.
	ModeDev = "dev"
	// ModeProd enables production (JSON) logging.
	ModeProd = "prod"
)

// Environment contains the imported environment variables.
type Environment struct {
	// Debug vs Deploy
	Mode string `default:"dev"`
	// Port to listen on
	Addr string `default:":4040"`
	// Directory holding the exported model artifacts
	ArtifactDir string `default:"./artifacts" split_words:"true"`
	// Random forest export
	ModelFile string `default:"airline_model.json" split_words:"true"`
	// Standard scaler export for the three scaled numeric columns
	ScalerFile string `default:"scaler.json" split_words:"true"`
	// Categorical encoder export, keyed by field name
	EncodersFile string `default:"encoders.json" split_words:"true"`
	// Expose prometheus metrics on /metrics
	MetricsEnabled bool `default:"true" split_words:"true"`
}

func (e Environment) String() string {
	settings, err := json.MarshalIndent(e, "", "    ")
	if err != nil {
		return fmt.Errorf("Failed to marshal env: %v", err).Error()
	}
	return fmt.Sprintf("Environment Settings:\n%s\n", string(settings))
}

// Load imports the environment variables and returns them in an Environment.
func Load(envFile string) (*Environment, error) {
	testEnv := os.Getenv("BP_MODE")
	// if no env var in existing environment, load environment file from the .env file,
	// otherwise (in production) just check existing host environment
	if testEnv == "" {
		err := godotenv.Load(envFile)
		if err != nil {
			return nil, errors.Wrapf(err, "Error loading %s file", envFile)
		}
	}

	var env Environment
	err := envconfig.Process("bp", &env)
	if err != nil {
		return nil, errors.Wrap(err, "Error processing environment config")
	}
	if env.Mode != ModeDev && env.Mode != ModeProd {
		return nil, errors.Errorf("Invalid mode %q", env.Mode)
	}
	return &env, nil
}

// ModelPath is the full path of the classifier artifact.
func (e *Environment) ModelPath() string {
	return filepath.Join(e.ArtifactDir, e.ModelFile)
}

// ScalerPath is the full path of the scaler artifact.
func (e *Environment) ScalerPath() string {
	return filepath.Join(e.ArtifactDir, e.ScalerFile)
}

// EncodersPath is the full path of the encoder artifact.
func (e *Environment) EncodersPath() string {
	return filepath.Join(e.ArtifactDir, e.EncodersFile)
}
