package artifacts

import (
	"github.com/pkg/errors"
)

// StandardScaler applies (x - mean) / scale column-wise.
type StandardScaler struct {
	columns []string
	mean    []float64
	scale   []float64
}

// NewStandardScaler validates the fitted parameters. A zero scale is replaced by 1,
// matching how a constant column is fit.
func NewStandardScaler(columns []string, mean []float64, scale []float64) (*StandardScaler, error) {
	if len(columns) == 0 {
		return nil, errors.New("scaler has no columns")
	}
	if len(mean) != len(columns) || len(scale) != len(columns) {
		return nil, errors.Errorf("scaler shape mismatch: %d columns, %d means, %d scales", len(columns), len(mean), len(scale))
	}
	s := &StandardScaler{
		columns: append([]string(nil), columns...),
		mean:    append([]float64(nil), mean...),
		scale:   make([]float64, len(scale)),
	}
	for i, v := range scale {
		if v == 0 {
			v = 1
		}
		s.scale[i] = v
	}
	return s, nil
}

// Columns returns the names of the scaled columns, in order.
func (s *StandardScaler) Columns() []string {
	return append([]string(nil), s.columns...)
}

// Transform scales values into a new slice. values must line up with Columns.
func (s *StandardScaler) Transform(values []float64) ([]float64, error) {
	if len(values) != len(s.columns) {
		return nil, errors.Errorf("scaler expects %d values, got %d", len(s.columns), len(values))
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - s.mean[i]) / s.scale[i]
	}
	return out, nil
}
