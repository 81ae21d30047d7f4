package pipeline

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindArtifactLoad means the artifacts are missing, corrupt or inconsistent.
	KindArtifactLoad Kind = iota + 1
	// KindInvalidInput means a raw value could not be assembled or is out of range.
	KindInvalidInput
	// KindUnknownCategory means a categorical value is not known to its encoder.
	KindUnknownCategory
	// KindInference means the classifier could not score the record.
	KindInference
)

func (k Kind) String() string {
	switch k {
	case KindArtifactLoad:
		return "artifact_load"
	case KindInvalidInput:
		return "invalid_input"
	case KindUnknownCategory:
		return "unknown_category"
	case KindInference:
		return "inference"
	default:
		return "unknown"
	}
}

// Error is the only error type that leaves the pipeline.
type Error struct {
	Kind  Kind
	Field string
	Value string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s=%q", msg, e.Field, e.Value)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Message is the text shown to the user. It depends only on the kind and the
// offending field, never on the cause.
func (e *Error) Message() string {
	switch e.Kind {
	case KindArtifactLoad:
		return "The prediction model is not available."
	case KindInvalidInput:
		if e.Field == "" {
			return "The booking could not be read."
		}
		return fmt.Sprintf("Invalid value %q for %s.", e.Value, e.Field)
	case KindUnknownCategory:
		return fmt.Sprintf("%q is not a known %s.", e.Value, e.Field)
	case KindInference:
		return "The model could not score this booking."
	default:
		return "An error occurred while processing the booking."
	}
}

// KindOf returns the kind of a pipeline error, or 0 if err is not one.
func KindOf(err error) Kind {
	var pErr *Error
	if errors.As(err, &pErr) {
		return pErr.Kind
	}
	return 0
}

func invalidInput(field, value string, err error) *Error {
	return &Error{Kind: KindInvalidInput, Field: field, Value: value, Err: err}
}

func artifactLoad(err error) *Error {
	return &Error{Kind: KindArtifactLoad, Err: err}
}

func inference(err error) *Error {
	return &Error{Kind: KindInference, Err: err}
}
