package config

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Config defines cross-cutting concerns shared by the runner and the handlers.
type Config struct {
	Logger      *zap.SugaredLogger
	Environment *Environment
}

// NewLogger builds the zap logger for the given mode: console output for dev,
// JSON for prod.
func NewLogger(mode string) (*zap.Logger, error) {
	switch mode {
	case ModeDev:
		return zap.NewDevelopment()
	case ModeProd:
		return zap.NewProduction()
	default:
		return nil, errors.Errorf("Invalid 'mode' flag: %s", mode)
	}
}
