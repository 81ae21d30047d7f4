package routes

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/pkg/errors"
	"gitlab.uncharted.software/WM/wm-booking-predictor/api/pipeline"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every failed API request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func handleJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	render.Status(r, status)
	render.JSON(w, r, data)
}

func handleErrorType(w http.ResponseWriter, err error, code int, logger *zap.SugaredLogger) {
	logger.Errorf("%+v", err)
	errMessage := "An error occured on the server while processing the request"
	http.Error(w, errMessage, code)
}

// statusFor maps a pipeline error kind onto an HTTP status.
func statusFor(kind pipeline.Kind) int {
	switch kind {
	case pipeline.KindInvalidInput, pipeline.KindUnknownCategory:
		return http.StatusUnprocessableEntity
	case pipeline.KindArtifactLoad:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// handlePipelineError writes the JSON error body for a pipeline failure. Errors
// that did not come from the pipeline are treated as server errors.
func handlePipelineError(w http.ResponseWriter, r *http.Request, err error, logger *zap.SugaredLogger) {
	var pErr *pipeline.Error
	if !errors.As(err, &pErr) {
		handleErrorType(w, err, http.StatusInternalServerError, logger)
		return
	}
	handleJSON(w, r, statusFor(pErr.Kind), ErrorResponse{
		Success: false,
		Kind:    pErr.Kind.String(),
		Field:   pErr.Field,
		Message: pErr.Message(),
	})
}
