// Package trace implements an environment which replays a recorded
// trace of observations, for example the hourly prices and dispatch
// metrics logged from an energy simulation. Actions taken in a replay
// have no effect on the observations which follow, so a replay is only
// suitable for evaluating agents whose actions do not change the
// environment state, such as price-taking baselines.
package trace

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/energybaselines/environment"
)

// Trace is a recorded sequence of observations. Each row is the
// observation of a single step, with features named by Fields.
type Trace struct {
	Fields environment.FieldIndex
	Rows   [][]float64
}

// NewTrace returns a new Trace with the argument field names. Each row
// must have one value per field.
func NewTrace(fields []string, rows [][]float64) (*Trace, error) {
	index, err := environment.NewFieldIndex(fields)
	if err != nil {
		return nil, fmt.Errorf("newTrace: %w", err)
	}

	for i, row := range rows {
		if len(row) != len(fields) {
			return nil, fmt.Errorf("newTrace: row %v has %v values, "+
				"expected %v", i, len(row), len(fields))
		}
	}

	return &Trace{Fields: index, Rows: rows}, nil
}

// Len returns the number of recorded steps
func (t *Trace) Len() int {
	return len(t.Rows)
}

// Column returns the recorded values of the named field
func (t *Trace) Column(name string) ([]float64, error) {
	i, err := t.Fields.Index(name)
	if err != nil {
		return nil, fmt.Errorf("column: %w", err)
	}

	col := make([]float64, len(t.Rows))
	for j, row := range t.Rows {
		col[j] = row[i]
	}
	return col, nil
}

// bounds returns the minimum and maximum value of each field
func (t *Trace) bounds() (low, high []float64) {
	n := t.Fields.Len()
	low = make([]float64, n)
	high = make([]float64, n)
	for i := range low {
		low[i] = math.Inf(1)
		high[i] = math.Inf(-1)
	}

	for _, row := range t.Rows {
		for i, v := range row {
			low[i] = math.Min(low[i], v)
			high[i] = math.Max(high[i], v)
		}
	}
	return low, high
}
