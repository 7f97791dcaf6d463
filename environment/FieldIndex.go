package environment

import (
	"errors"
	"fmt"
)

// ErrNoSuchField is returned when a named observation field does not
// exist in an environment's observation info
var ErrNoSuchField = errors.New("no such observation field")

// FieldIndex maps the names of observation features to their integer
// index in the flat observation vector. It is the observation info of
// an environment.
type FieldIndex struct {
	names []string
	index map[string]int
}

// NewFieldIndex returns a new FieldIndex, with the feature at position
// i of the observation vector named names[i]. Names must be non-empty
// and unique.
func NewFieldIndex(names []string) (FieldIndex, error) {
	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return FieldIndex{}, fmt.Errorf("newFieldIndex: field %v has "+
				"no name", i)
		}
		if j, ok := index[name]; ok {
			return FieldIndex{}, fmt.Errorf("newFieldIndex: field %q "+
				"repeated at indices %v and %v", name, j, i)
		}
		index[name] = i
	}

	n := make([]string, len(names))
	copy(n, names)

	return FieldIndex{names: n, index: index}, nil
}

// Index returns the index of the named field in the observation vector
func (f FieldIndex) Index(name string) (int, error) {
	i, ok := f.index[name]
	if !ok {
		return -1, fmt.Errorf("index: %q: %w", name, ErrNoSuchField)
	}
	return i, nil
}

// Names returns the field names in observation order
func (f FieldIndex) Names() []string {
	n := make([]string, len(f.names))
	copy(n, f.names)
	return n
}

// Len returns the number of fields
func (f FieldIndex) Len() int {
	return len(f.names)
}
