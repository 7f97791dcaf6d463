package trace

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// RecordedReward is an environment.Task whose reward is a recorded
// field of the observation following each action
type RecordedReward struct {
	index int
}

// NewRecordedReward returns a RecordedReward task which uses the named
// field of t as the reward
func NewRecordedReward(t *Trace, column string) (*RecordedReward, error) {
	i, err := t.Fields.Index(column)
	if err != nil {
		return nil, fmt.Errorf("newRecordedReward: %w", err)
	}
	return &RecordedReward{index: i}, nil
}

// GetReward returns the recorded reward of the next state
func (r *RecordedReward) GetReward(_, _, nextState mat.Vector) float64 {
	return nextState.AtVec(r.index)
}

// NoReward is an environment.Task with a reward of 0 on every step
type NoReward struct{}

// GetReward returns 0
func (NoReward) GetReward(_, _, _ mat.Vector) float64 {
	return 0
}
