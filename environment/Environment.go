// Package environment outlines the interfaces and structs needed to
// implement concrete environments, or to adapt externally simulated
// environments so that agents can act in them
package environment

import (
	"gonum.org/v1/gonum/mat"
	ts "github.com/samuelfneumann/energybaselines/timestep"
)

// Task implements the reward scheme for taking actions in some environment
type Task interface {
	GetReward(state, action, nextState mat.Vector) float64
}

// Ender determines when an episode should end
type Ender interface {
	// End returns whether the episode should end, and modifies the
	// argument TimeStep to be the last of its episode if it should
	End(*ts.TimeStep) bool
}

// Environment implements an environment, which includes a Task to
// complete
type Environment interface {
	Task
	Reset() (ts.TimeStep, error)
	Step(action *mat.VecDense) (ts.TimeStep, bool, error)
	CurrentTimeStep() ts.TimeStep

	RewardSpec() Spec
	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec

	// ObservationInfo returns the names of each feature in the
	// observation vector
	ObservationInfo() FieldIndex
}
