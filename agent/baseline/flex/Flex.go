// Package flex implements a time-window flexing baseline agent, which
// takes the maximum action during a configured set of hours
package flex

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/energybaselines/agent/baseline"
	"github.com/samuelfneumann/energybaselines/environment"
	"github.com/samuelfneumann/energybaselines/timestep"
)

// Flex is a baseline agent which flexes based on the time of day. When
// the observed hour is exactly one of the configured hours, the
// maximum action is taken. Otherwise the minimum action is taken,
// which usually means doing nothing.
type Flex struct {
	*baseline.Base
	hours map[float64]struct{}
	field string
	index int
}

// New returns a new Flex agent
func New(env environment.Environment, discount float64, c Config,
	logger zerolog.Logger) (*Flex, error) {
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

	hours := make(map[float64]struct{}, len(c.Hours))
	for _, h := range c.Hours {
		hours[h] = struct{}{}
	}

	return &Flex{
		Base:  base,
		hours: hours,
		field: c.field(),
		index: index,
	}, nil
}

// Hours returns the sorted hours in which the agent flexes
func (f *Flex) Hours() []float64 {
	hours := make([]float64, 0, len(f.hours))
	for h := range f.hours {
		hours = append(hours, h)
	}
	sort.Float64s(hours)
	return hours
}

// Decide returns the action to take given a batch of observations.
// Only the first row of the observation is used.
func (f *Flex) Decide(observation mat.Matrix) (*mat.Dense, error) {
	row, err := f.Row(observation)
	if err != nil {
		return nil, fmt.Errorf("decide: %w", err)
	}

	hour := row.AtVec(f.index)
	_, flex := f.hours[hour]
	f.Logger().Debug().
		Str("field", f.field).
		Float64("hour", hour).
		Bool("high", flex).
		Msg("flex decision")

	if flex {
		return f.High(), nil
	}
	return f.Low(), nil
}

// SelectAction selects an action at timestep t
func (f *Flex) SelectAction(t timestep.TimeStep) (*mat.VecDense, error) {
	return f.Select(t, f.Decide)
}
