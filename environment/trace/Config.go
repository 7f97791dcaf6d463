package trace

import (
	"fmt"

	env "github.com/samuelfneumann/energybaselines/environment"
	ts "github.com/samuelfneumann/energybaselines/timestep"
)

// Config describes a Replay environment. Configs are JSON serializable.
type Config struct {
	Path          string // CSV or .xlsx file holding the trace
	Sheet         string // Spreadsheet sheet, the first if empty
	RewardColumn  string // Field used as reward, no reward if empty
	EpisodeCutoff int
	Discount      float64
	ActionLow     []float64
	ActionHigh    []float64
	RandomStart   bool // Sample starting rows, otherwise start at row 0
}

// Validate returns an error describing whether or not the Config is
// valid
func (c Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("validate: no trace path")
	}
	if c.EpisodeCutoff <= 0 {
		return fmt.Errorf("validate: episode cutoff must be positive")
	}
	if len(c.ActionLow) == 0 || len(c.ActionLow) != len(c.ActionHigh) {
		return fmt.Errorf("validate: action bounds of lengths %v and %v",
			len(c.ActionLow), len(c.ActionHigh))
	}
	return nil
}

// Create loads the trace and returns the Replay described by the
// Config, along with the first step of the first episode
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}

	t, err := Load(c.Path, c.Sheet)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}

	return c.CreateFrom(t, seed)
}

// CreateFrom returns the Replay described by the Config on an already
// loaded trace. The Path and Sheet of the Config are ignored.
func (c Config) CreateFrom(t *Trace, seed uint64) (env.Environment,
	ts.TimeStep, error) {
	var task env.Task = NoReward{}
	if c.RewardColumn != "" {
		r, err := NewRecordedReward(t, c.RewardColumn)
		if err != nil {
			return nil, ts.TimeStep{}, fmt.Errorf("createFrom: %w", err)
		}
		task = r
	}

	var s Starter = FixedStart(0)
	if c.RandomStart {
		s = NewUniformStart(seed)
	}

	r, step, err := New(t, task, s, c.EpisodeCutoff, c.Discount,
		c.ActionLow, c.ActionHigh)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("createFrom: %w", err)
	}
	return r, step, nil
}
