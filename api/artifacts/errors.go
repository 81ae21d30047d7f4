package artifacts

import "fmt"

// LoadError reports an artifact file that is missing, unreadable or malformed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load artifact %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error { return e.Err }

// Cause supports github.com/pkg/errors.Cause.
func (e *LoadError) Cause() error { return e.Err }

// UnknownCategoryError reports a categorical value the field's encoder was not fit on.
type UnknownCategoryError struct {
	Field string
	Value string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown %s category %q", e.Field, e.Value)
}
