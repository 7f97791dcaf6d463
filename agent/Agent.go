// Package agent defines an agent interface
package agent

import (
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/energybaselines/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns from experience, and
// a Policy which chooses actions in each state. Baseline agents have a
// fixed Policy and a Learner which never changes it.
type Agent interface {
	Learner
	Policy
}

// Learner implements a learning algorithm that defines how an agent
// changes with experience
type Learner interface {
	// Step performs a single update to the learner
	Step() error

	// Observe records that an action lead to some timestep
	Observe(action mat.Vector, nextObs timestep.TimeStep) error

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep) error

	// EndEpisode performs cleanup at the end of an episode
	EndEpisode()
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. An error is returned
// when an action cannot be selected for the argument timestep, for
// example if the observation does not match the environment.
type Policy interface {
	SelectAction(t timestep.TimeStep) (*mat.VecDense, error)
	Eval()        // Set policy to evaluation mode
	Train()       // Set policy to training mode
	IsEval() bool // Indicates if in evaluation mode
}

// Decider is a Policy that can decide on an action directly from a
// batch of observations.
//
// The observation is a 2-D matrix whose first row is the feature
// vector of the current step; all other rows are ignored. The returned
// action always has shape (1, action dimension).
type Decider interface {
	Decide(observation mat.Matrix) (*mat.Dense, error)
}
