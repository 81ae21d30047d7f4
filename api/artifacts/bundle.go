package artifacts

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/vova616/xxhash"
)

const (
	FieldNumPassengers      = "num_passengers"
	FieldSalesChannel       = "sales_channel"
	FieldTripType           = "trip_type"
	FieldPurchaseLead       = "purchase_lead"
	FieldLengthOfStay       = "length_of_stay"
	FieldFlightHour         = "flight_hour"
	FieldFlightDay          = "flight_day"
	FieldRoute              = "route"
	FieldBookingOrigin      = "booking_origin"
	FieldWantsExtraBaggage  = "wants_extra_baggage"
	FieldWantsPreferredSeat = "wants_preferred_seat"
	FieldWantsInFlightMeals = "wants_in_flight_meals"
	FieldFlightDuration     = "flight_duration"
)

// Columns is the feature order the classifier was trained with.
var Columns = []string{
	FieldNumPassengers,
	FieldSalesChannel,
	FieldTripType,
	FieldPurchaseLead,
	FieldLengthOfStay,
	FieldFlightHour,
	FieldFlightDay,
	FieldRoute,
	FieldBookingOrigin,
	FieldWantsExtraBaggage,
	FieldWantsPreferredSeat,
	FieldWantsInFlightMeals,
	FieldFlightDuration,
}

// CategoricalFields are encoded to integer codes, in column order.
var CategoricalFields = []string{FieldSalesChannel, FieldTripType, FieldRoute, FieldBookingOrigin}

// ScaledFields are standardized by the scaler, in the order the scaler was fit.
var ScaledFields = []string{FieldPurchaseLead, FieldLengthOfStay, FieldFlightDuration}

// Paths locates the three artifact files.
type Paths struct {
	Model    string
	Scaler   string
	Encoders string
}

// Fingerprints holds the xxhash32 checksum of each artifact file.
type Fingerprints struct {
	Model    string `json:"model"`
	Scaler   string `json:"scaler"`
	Encoders string `json:"encoders"`
}

// Bundle is the immutable set of loaded artifacts. It is safe for concurrent use
// since nothing mutates it after construction.
type Bundle struct {
	model        Classifier
	scaler       *StandardScaler
	encoders     map[string]*LabelEncoder
	fingerprints Fingerprints
}

type encoderFile map[string]struct {
	Classes []string `json:"classes"`
}

type scalerFile struct {
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
}

type forestFile struct {
	Classes      []int    `json:"classes"`
	NumFeatures  int      `json:"n_features"`
	FeatureNames []string `json:"feature_names"`
	Trees        []Tree   `json:"trees"`
}

// NewBundle checks that the artifacts agree with the fixed feature layout.
func NewBundle(model Classifier, scaler *StandardScaler, encoders map[string]*LabelEncoder) (*Bundle, error) {
	if model == nil || scaler == nil {
		return nil, errors.New("bundle requires a model and a scaler")
	}
	for _, field := range CategoricalFields {
		if encoders[field] == nil {
			return nil, errors.Errorf("missing encoder for %s", field)
		}
	}
	if !equalStrings(scaler.Columns(), ScaledFields) {
		return nil, errors.Errorf("scaler columns %v do not match %v", scaler.Columns(), ScaledFields)
	}
	if model.NumFeatures() != len(Columns) {
		return nil, errors.Errorf("model expects %d features, pipeline produces %d", model.NumFeatures(), len(Columns))
	}
	if ClassIndex(model.Classes(), 1) < 0 {
		return nil, errors.Errorf("model classes %v do not include the completed class", model.Classes())
	}
	return &Bundle{
		model:    model,
		scaler:   scaler,
		encoders: encoders,
	}, nil
}

// Load reads and validates the three artifacts. Any failure is a *LoadError.
func Load(paths Paths) (*Bundle, error) {
	var fp Fingerprints

	var rawEncoders encoderFile
	sum, err := readJSON(paths.Encoders, &rawEncoders)
	if err != nil {
		return nil, err
	}
	fp.Encoders = sum
	encoders := make(map[string]*LabelEncoder, len(rawEncoders))
	for field, raw := range rawEncoders {
		enc, err := NewLabelEncoder(field, raw.Classes)
		if err != nil {
			return nil, &LoadError{Path: paths.Encoders, Err: err}
		}
		encoders[field] = enc
	}

	var rawScaler scalerFile
	if fp.Scaler, err = readJSON(paths.Scaler, &rawScaler); err != nil {
		return nil, err
	}
	scaler, err := NewStandardScaler(rawScaler.FeatureNames, rawScaler.Mean, rawScaler.Scale)
	if err != nil {
		return nil, &LoadError{Path: paths.Scaler, Err: err}
	}

	var rawForest forestFile
	if fp.Model, err = readJSON(paths.Model, &rawForest); err != nil {
		return nil, err
	}
	if len(rawForest.FeatureNames) > 0 && !equalStrings(rawForest.FeatureNames, Columns) {
		return nil, &LoadError{Path: paths.Model, Err: errors.Errorf("model feature order %v does not match %v", rawForest.FeatureNames, Columns)}
	}
	forest, err := NewRandomForest(rawForest.Classes, rawForest.NumFeatures, rawForest.FeatureNames, rawForest.Trees)
	if err != nil {
		return nil, &LoadError{Path: paths.Model, Err: err}
	}

	bundle, err := NewBundle(forest, scaler, encoders)
	if err != nil {
		return nil, &LoadError{Path: paths.Model, Err: err}
	}
	bundle.fingerprints = fp
	return bundle, nil
}

func readJSON(path string, v interface{}) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &LoadError{Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return "", &LoadError{Path: path, Err: errors.Wrap(err, "failed to decode artifact")}
	}
	return fmt.Sprintf("%08x", xxhash.Checksum32(data)), nil
}

// Model returns the classifier.
func (b *Bundle) Model() Classifier {
	return b.model
}

// Fingerprints returns the checksums of the loaded files. They are empty for
// bundles built in memory.
func (b *Bundle) Fingerprints() Fingerprints {
	return b.fingerprints
}

// Fields lists the categorical fields in column order.
func (b *Bundle) Fields() []string {
	return append([]string(nil), CategoricalFields...)
}

// EncoderCategories returns the categories the field's encoder was fit on.
func (b *Bundle) EncoderCategories(field string) ([]string, error) {
	enc, ok := b.encoders[field]
	if !ok {
		return nil, errors.Errorf("no encoder for field %s", field)
	}
	return enc.Classes(), nil
}

// Encode maps a category to its integer code.
func (b *Bundle) Encode(field string, value string) (int, error) {
	enc, ok := b.encoders[field]
	if !ok {
		return 0, errors.Errorf("no encoder for field %s", field)
	}
	return enc.Encode(value)
}

// Scale standardizes the ScaledFields values.
func (b *Bundle) Scale(values []float64) ([]float64, error) {
	return b.scaler.Transform(values)
}

// ClassIndex returns the position of class in classes, or -1.
func ClassIndex(classes []int, class int) int {
	for i, c := range classes {
		if c == class {
			return i
		}
	}
	return -1
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
