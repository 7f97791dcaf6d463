// Package experiment implements functionality for running an experiment
package experiment

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/samuelfneumann/energybaselines/agent"
	"github.com/samuelfneumann/energybaselines/environment/trace"
	"github.com/samuelfneumann/energybaselines/experiment/tracker"
)

// Experiment outlines structs that can run experiments.
// Experiments will track environment TimeSteps, caching each TimeStep
// in RAM to be later saved to disk. The Save() function
// will then take all cached data and save it to disk. This is usually
// performed after an experiment has been run. The Run() method will
// run all episodes util the maximum timestep limit is reached. The
// RunEpisode() function will run a single episode.
//
// In order to save data, Experiments use Trackers. Trackers determine
// which data generated during the experiment is saved. New Trackers
// can be registered with an Experiment through the constructor or
// through an Experiment's Register() function.
type Experiment interface {
	Run() error
	RunEpisode() (bool, error) // Returns whether the step limit was reached

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t tracker.Tracker)
}

// Type is a type of experiment
type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Config represents a configuration of an experiment. Configs are JSON
// serializable.
type Config struct {
	Type
	MaxSteps  uint
	EnvConf   trace.Config
	AgentConf agent.TypedConfigList
}

// Validate returns an error describing whether the Config is valid
func (c Config) Validate() error {
	if c.Type != OnlineExp {
		return fmt.Errorf("validate: no such experiment type %q", c.Type)
	}
	if c.MaxSteps == 0 {
		return fmt.Errorf("validate: experiment must run for at least " +
			"one step")
	}
	if c.AgentConf.ConfigList == nil {
		return fmt.Errorf("validate: no agent configuration")
	}
	return c.EnvConf.Validate()
}

// CreateExp creates the experiment using the agent Config at index i
// of the agent ConfigList
func (c Config) CreateExp(i int, seed uint64, logger zerolog.Logger,
	t ...tracker.Tracker) (*Online, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createExp: %w", err)
	}

	env, _, err := c.EnvConf.Create(seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create "+
			"environment: %w", err)
	}

	conf, err := c.AgentConf.At(i)
	if err != nil {
		return nil, fmt.Errorf("createExp: %w", err)
	}

	a, err := conf.CreateAgent(env, seed, logger.With().
		Str("agent", string(conf.Type())).Int("config", i).Logger())
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create agent: %w", err)
	}

	return NewOnline(env, a, c.MaxSteps, logger, t...), nil
}

// LoadConfig reads a JSON experiment Config from the file at path
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: %w", err)
	}

	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("loadConfig: %v: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("loadConfig: %v: %w", path, err)
	}
	return c, nil
}
