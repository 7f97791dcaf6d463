package trace

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Starter selects the row of a trace that an episode starts at
type Starter interface {
	// Start returns the starting row of the next episode in a trace of
	// length rows, where episodes have at most cutoff steps
	Start(rows, cutoff int) (int, error)
}

// FixedStart starts every episode at the same row
type FixedStart int

// Start returns the fixed starting row
func (f FixedStart) Start(rows, _ int) (int, error) {
	if int(f) < 0 || int(f) >= rows-1 {
		return 0, fmt.Errorf("start: row %v leaves no steps in a trace of "+
			"%v rows", int(f), rows)
	}
	return int(f), nil
}

// UniformStart starts episodes at a row sampled uniformly at random,
// such that whole episodes fit in the trace whenever possible
type UniformStart struct {
	src rand.Source
}

// NewUniformStart returns a new UniformStart
func NewUniformStart(seed uint64) *UniformStart {
	return &UniformStart{src: rand.NewSource(seed)}
}

// Start samples the starting row of the next episode
func (u *UniformStart) Start(rows, cutoff int) (int, error) {
	if rows < 2 {
		return 0, fmt.Errorf("start: trace of %v rows has no steps", rows)
	}

	last := rows - 1 - cutoff
	if last <= 0 {
		return 0, nil
	}

	dist := distuv.Uniform{Min: 0, Max: float64(last + 1), Src: u.src}
	row := int(math.Floor(dist.Rand()))
	if row > last {
		row = last
	}
	return row, nil
}
