package artifacts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPaths() Paths {
	return Paths{
		Model:    filepath.Join("testdata", "airline_model.json"),
		Scaler:   filepath.Join("testdata", "scaler.json"),
		Encoders: filepath.Join("testdata", "encoders.json"),
	}
}

// copyTestdata copies the fixtures into a temp dir so individual files can be broken.
func copyTestdata(t *testing.T) Paths {
	dir := t.TempDir()
	src := testPaths()
	dst := Paths{
		Model:    filepath.Join(dir, "airline_model.json"),
		Scaler:   filepath.Join(dir, "scaler.json"),
		Encoders: filepath.Join(dir, "encoders.json"),
	}
	for from, to := range map[string]string{src.Model: dst.Model, src.Scaler: dst.Scaler, src.Encoders: dst.Encoders} {
		data, err := os.ReadFile(from)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(to, data, 0o600))
	}
	return dst
}

func TestLoad(t *testing.T) {
	bundle, err := Load(testPaths())
	require.NoError(t, err)

	categories, err := bundle.EncoderCategories(FieldRoute)
	require.NoError(t, err)
	assert.Equal(t, []string{"AKLDEL", "AKLHGH", "DMKKIX", "PENTPE"}, categories)

	code, err := bundle.Encode(FieldBookingOrigin, "New Zealand")
	require.NoError(t, err)
	assert.Equal(t, 3, code)

	scaled, err := bundle.Scale([]float64{30, 5, 5})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-0.5, -0.6, -1.0}, scaled, 1e-9)

	assert.Equal(t, len(Columns), bundle.Model().NumFeatures())
	assert.Equal(t, CategoricalFields, bundle.Fields())

	forest, ok := bundle.Model().(*RandomForest)
	require.True(t, ok)
	assert.Equal(t, 2, forest.NumTrees())
	assert.Equal(t, Columns, forest.FeatureNames())

	fp := bundle.Fingerprints()
	assert.Len(t, fp.Model, 8)
	assert.Len(t, fp.Scaler, 8)
	assert.Len(t, fp.Encoders, 8)
	assert.NotEqual(t, fp.Model, fp.Scaler)
}

func TestLoadIsRepeatable(t *testing.T) {
	a, err := Load(testPaths())
	require.NoError(t, err)
	b, err := Load(testPaths())
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprints(), b.Fingerprints())
}

func TestBundleUnknownField(t *testing.T) {
	bundle, err := Load(testPaths())
	require.NoError(t, err)

	_, err = bundle.EncoderCategories("cabin_class")
	assert.Error(t, err)

	_, err = bundle.Encode("cabin_class", "Economy")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	paths := testPaths()
	paths.Scaler = filepath.Join("testdata", "missing.json")

	_, err := Load(paths)
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, paths.Scaler, loadErr.Path)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestLoadCorruptFile(t *testing.T) {
	paths := copyTestdata(t)
	require.NoError(t, os.WriteFile(paths.Model, []byte("{not json"), 0o600))

	_, err := Load(paths)
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, paths.Model, loadErr.Path)
}

func TestLoadMissingEncoder(t *testing.T) {
	paths := copyTestdata(t)
	encoders := `{
		"sales_channel": {"classes": ["Internet", "Mobile"]},
		"trip_type": {"classes": ["RoundTrip"]},
		"route": {"classes": ["AKLDEL"]}
	}`
	require.NoError(t, os.WriteFile(paths.Encoders, []byte(encoders), 0o600))

	_, err := Load(paths)
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "booking_origin")
}

func TestLoadWrongScalerColumns(t *testing.T) {
	paths := copyTestdata(t)
	scaler := `{"feature_names": ["flight_duration", "purchase_lead", "length_of_stay"], "mean": [0, 0, 0], "scale": [1, 1, 1]}`
	require.NoError(t, os.WriteFile(paths.Scaler, []byte(scaler), 0o600))

	_, err := Load(paths)
	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestLoadWrongFeatureOrder(t *testing.T) {
	paths := copyTestdata(t)
	data, err := os.ReadFile(paths.Model)
	require.NoError(t, err)
	swapped := strings.Replace(string(data), `"route", "booking_origin"`, `"booking_origin", "route"`, 1)
	require.NoError(t, os.WriteFile(paths.Model, []byte(swapped), 0o600))

	_, err = Load(paths)
	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "feature order")
}

func TestNewBundleRequiresPositiveClass(t *testing.T) {
	forest, err := NewRandomForest([]int{0, 2}, len(Columns), nil, []Tree{
		stump(0, 0, []float64{1, 0}, []float64{0, 1}),
	})
	require.NoError(t, err)
	scaler, err := NewStandardScaler(ScaledFields, []float64{0, 0, 0}, []float64{1, 1, 1})
	require.NoError(t, err)
	encoders := map[string]*LabelEncoder{}
	for _, field := range CategoricalFields {
		encoders[field], err = NewLabelEncoder(field, []string{"x"})
		require.NoError(t, err)
	}

	_, err = NewBundle(forest, scaler, encoders)
	assert.Error(t, err)
}
