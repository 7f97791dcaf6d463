package tracker

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/energybaselines/environment"
	ts "github.com/samuelfneumann/energybaselines/timestep"
)

// DecisionData holds the actions taken at each step of an experiment,
// along with the values of chosen observation fields at those steps
type DecisionData struct {
	Fields  []string
	Values  [][]float64 // Values[i][j] is field j at step i
	Actions [][]float64 // Actions[i] is the action taken at step i
}

// Field returns the tracked values of the named field
func (d DecisionData) Field(name string) ([]float64, error) {
	for j, f := range d.Fields {
		if f == name {
			out := make([]float64, len(d.Values))
			for i := range d.Values {
				out[i] = d.Values[i][j]
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("field: %q: %w", name, environment.ErrNoSuchField)
}

// Action returns dimension dim of every tracked action
func (d DecisionData) Action(dim int) ([]float64, error) {
	out := make([]float64, len(d.Actions))
	for i, a := range d.Actions {
		if dim < 0 || dim >= len(a) {
			return nil, fmt.Errorf("action: dimension %v out of range for "+
				"action of length %v", dim, len(a))
		}
		out[i] = a[dim]
	}
	return out, nil
}

// Decisions is a DecisionTracker which records every action selected
// and the observation fields it was selected on
type Decisions struct {
	data     DecisionData
	indices  []int
	filename string
}

// NewDecisions returns a new Decisions tracker recording the argument
// named fields of the observation info
func NewDecisions(filename string, info environment.FieldIndex,
	fields ...string) (*Decisions, error) {
	indices := make([]int, len(fields))
	for i, f := range fields {
		idx, err := info.Index(f)
		if err != nil {
			return nil, fmt.Errorf("newDecisions: %w", err)
		}
		indices[i] = idx
	}

	return &Decisions{
		data:     DecisionData{Fields: append([]string(nil), fields...)},
		indices:  indices,
		filename: filename,
	}, nil
}

// Track does nothing; decisions are recorded by TrackDecision
func (d *Decisions) Track(ts.TimeStep) {}

// TrackDecision records the action taken in step t
func (d *Decisions) TrackDecision(t ts.TimeStep, action mat.Vector) {
	values := make([]float64, len(d.indices))
	for j, idx := range d.indices {
		values[j] = t.Observation.AtVec(idx)
	}

	a := make([]float64, action.Len())
	for i := range a {
		a[i] = action.AtVec(i)
	}

	d.data.Values = append(d.data.Values, values)
	d.data.Actions = append(d.data.Actions, a)
}

// Data returns the recorded decisions
func (d *Decisions) Data() DecisionData {
	return d.data
}

// Save saves the recorded decisions to disk
func (d *Decisions) Save() error {
	return save(d.filename, d.data)
}

// LoadDecisions loads the data saved by a Decisions tracker
func LoadDecisions(filename string) (DecisionData, error) {
	var data DecisionData
	if err := load(filename, &data); err != nil {
		return DecisionData{}, fmt.Errorf("loadDecisions: %w", err)
	}
	return data, nil
}
