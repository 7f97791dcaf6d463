// Package baseline implements the construction contract and the
// behaviour shared by all rule-based baseline agents. Baseline agents
// select actions using a fixed, hand-written rule and never learn. They
// are used as a point of comparison for agents which do learn.
//
// As the rules are predefined, each baseline agent is specific to the
// observation fields of some environment.
package baseline

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/energybaselines/environment"
	"github.com/samuelfneumann/energybaselines/timestep"
)

// ErrShape is returned when an observation or action does not match
// the shape declared by the environment
var ErrShape = errors.New("shape mismatch")

// Base stores what each baseline agent is constructed with: the
// environment, the discount factor, and the bounds of the action
// space. Base implements agent.Learner, but all learning operations
// are no-ops since baseline agents do not learn.
//
// Base is immutable after construction, except for the evaluation
// mode flag.
type Base struct {
	env      environment.Environment
	discount float64
	logger   zerolog.Logger

	low      *mat.Dense // (1, action dimension)
	high     *mat.Dense // (1, action dimension)
	obsWidth int
	fields   environment.FieldIndex

	eval bool
}

// NewBase returns a new Base for an agent acting in env with the
// argument discount. The logger is owned by the agent.
func NewBase(env environment.Environment, discount float64,
	logger zerolog.Logger) (*Base, error) {
	if env == nil {
		return nil, fmt.Errorf("newBase: nil environment")
	}
	if discount < 0 || discount > 1 {
		return nil, fmt.Errorf("newBase: discount %v outside [0, 1]",
			discount)
	}

	actionSpec := env.ActionSpec()
	dim := actionSpec.Len()
	if dim == 0 {
		return nil, fmt.Errorf("newBase: empty action space: %w", ErrShape)
	}
	if actionSpec.LowerBound.Len() != dim ||
		actionSpec.UpperBound.Len() != dim {
		return nil, fmt.Errorf("newBase: action bounds of length %v and "+
			"%v do not match action dimension %v: %w",
			actionSpec.LowerBound.Len(), actionSpec.UpperBound.Len(), dim,
			ErrShape)
	}

	low := mat.NewDense(1, dim, nil)
	high := mat.NewDense(1, dim, nil)
	for i := 0; i < dim; i++ {
		low.Set(0, i, actionSpec.LowerBound.AtVec(i))
		high.Set(0, i, actionSpec.UpperBound.AtVec(i))
	}

	return &Base{
		env:      env,
		discount: discount,
		logger:   logger,
		low:      low,
		high:     high,
		obsWidth: env.ObservationSpec().Len(),
		fields:   env.ObservationInfo(),
	}, nil
}

// Environment returns the environment the agent acts in
func (b *Base) Environment() environment.Environment {
	return b.env
}

// Discount returns the discount factor the agent was constructed with
func (b *Base) Discount() float64 {
	return b.discount
}

// Logger returns the agent's logger
func (b *Base) Logger() *zerolog.Logger {
	return &b.logger
}

// Field returns the index of the named observation field
func (b *Base) Field(name string) (int, error) {
	return b.fields.Index(name)
}

// ActionDim returns the dimension of the action space
func (b *Base) ActionDim() int {
	_, c := b.high.Dims()
	return c
}

// High returns the maximum action of the action space with shape
// (1, action dimension)
func (b *Base) High() *mat.Dense {
	return mat.DenseCopyOf(b.high)
}

// Low returns the minimum action of the action space with shape
// (1, action dimension)
func (b *Base) Low() *mat.Dense {
	return mat.DenseCopyOf(b.low)
}

// Row returns the feature vector of the current step, which is the
// first row of the observation. An error is returned if the observation
// has no rows or its width does not match the observation space.
func (b *Base) Row(observation mat.Matrix) (mat.Vector, error) {
	if observation == nil {
		return nil, fmt.Errorf("row: nil observation: %w", ErrShape)
	}

	r, c := observation.Dims()
	if r == 0 {
		return nil, fmt.Errorf("row: observation has no rows: %w", ErrShape)
	}
	if c != b.obsWidth {
		return nil, fmt.Errorf("row: observation has %v features but "+
			"observation space has %v: %w", c, b.obsWidth, ErrShape)
	}

	return mat.NewVecDense(c, mat.Row(nil, 0, observation)), nil
}

// Select selects an action in timestep t using the argument decision
// function. The observation of t is treated as a batch of size one.
func (b *Base) Select(t timestep.TimeStep,
	decide func(mat.Matrix) (*mat.Dense, error)) (*mat.VecDense, error) {
	if t.Observation == nil {
		return nil, fmt.Errorf("select: nil observation: %w", ErrShape)
	}

	obs := mat.NewDense(1, t.Observation.Len(), nil)
	for i := 0; i < t.Observation.Len(); i++ {
		obs.Set(0, i, t.Observation.AtVec(i))
	}

	action, err := decide(obs)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}

	return mat.NewVecDense(b.ActionDim(), mat.Row(nil, 0, action)), nil
}

// Step performs no update, since baseline agents do not learn
func (b *Base) Step() error { return nil }

// Observe is a no-op, since baseline agents do not learn
func (b *Base) Observe(mat.Vector, timestep.TimeStep) error { return nil }

// ObserveFirst is a no-op, since baseline agents do not learn
func (b *Base) ObserveFirst(timestep.TimeStep) error { return nil }

// EndEpisode is a no-op, since baseline agents store no episode state
func (b *Base) EndEpisode() {}

// Eval sets the agent to evaluation mode. Baseline agents act the same
// in either mode.
func (b *Base) Eval() { b.eval = true }

// Train sets the agent to training mode
func (b *Base) Train() { b.eval = false }

// IsEval returns whether the agent is in evaluation mode
func (b *Base) IsEval() bool { return b.eval }
