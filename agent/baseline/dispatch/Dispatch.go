// Package dispatch implements a threshold-triggered baseline agent,
// which takes the maximum action whenever a cumulative dispatch metric
// rises above a trigger
package dispatch

import (
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/energybaselines/agent/baseline"
	"github.com/samuelfneumann/energybaselines/environment"
	"github.com/samuelfneumann/energybaselines/timestep"
)

// Dispatch is a baseline agent which takes the maximum action of the
// action space when the observed dispatch metric is strictly above
// the trigger, and the minimum action otherwise.
type Dispatch struct {
	*baseline.Base
	trigger float64
	field   string
	index   int
}

// New returns a new Dispatch agent. The observation field named in the
// Config is looked up once, so a missing field is reported here rather
// than when acting.
func New(env environment.Environment, discount float64, c Config,
	logger zerolog.Logger) (*Dispatch, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	base, err := baseline.NewBase(env, discount, logger)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	index, err := base.Field(c.field())
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	return &Dispatch{
		Base:    base,
		trigger: c.Trigger,
		field:   c.field(),
		index:   index,
	}, nil
}

// Trigger returns the threshold above which the maximum action is taken
func (d *Dispatch) Trigger() float64 {
	return d.trigger
}

// Decide returns the action to take given a batch of observations.
// Only the first row of the observation is used.
func (d *Dispatch) Decide(observation mat.Matrix) (*mat.Dense, error) {
	row, err := d.Row(observation)
	if err != nil {
		return nil, fmt.Errorf("decide: %w", err)
	}

	dispatch := row.AtVec(d.index)
	above := dispatch > d.trigger
	d.Logger().Debug().
		Str("field", d.field).
		Float64("value", dispatch).
		Float64("trigger", d.trigger).
		Bool("high", above).
		Msg("dispatch decision")

	if above {
		return d.High(), nil
	}
	return d.Low(), nil
}

// SelectAction selects an action at timestep t
func (d *Dispatch) SelectAction(t timestep.TimeStep) (*mat.VecDense, error) {
	return d.Select(t, d.Decide)
}
