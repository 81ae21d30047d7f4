package artifacts

import (
	"github.com/pkg/errors"
)

// LabelEncoder maps the categories of one field to integer codes. The code of a
// category is its position in the fitted class list.
type LabelEncoder struct {
	field   string
	classes []string
	codes   map[string]int
}

// NewLabelEncoder builds the lookup table for a field from its fitted classes.
func NewLabelEncoder(field string, classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, errors.Errorf("encoder for %s has no classes", field)
	}
	codes := make(map[string]int, len(classes))
	for i, c := range classes {
		if _, ok := codes[c]; ok {
			return nil, errors.Errorf("encoder for %s has duplicate class %q", field, c)
		}
		codes[c] = i
	}
	return &LabelEncoder{
		field:   field,
		classes: append([]string(nil), classes...),
		codes:   codes,
	}, nil
}

// Field returns the name of the encoded field.
func (e *LabelEncoder) Field() string {
	return e.field
}

// Classes returns a copy of the fitted categories in code order.
func (e *LabelEncoder) Classes() []string {
	return append([]string(nil), e.classes...)
}

// Encode returns the code for value, or an UnknownCategoryError.
func (e *LabelEncoder) Encode(value string) (int, error) {
	code, ok := e.codes[value]
	if !ok {
		return 0, &UnknownCategoryError{Field: e.field, Value: value}
	}
	return code, nil
}
