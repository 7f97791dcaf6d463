package experiment

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/energybaselines/agent"
	env "github.com/samuelfneumann/energybaselines/environment"
	"github.com/samuelfneumann/energybaselines/experiment/tracker"
	ts "github.com/samuelfneumann/energybaselines/timestep"
	"github.com/samuelfneumann/energybaselines/utils/progressbar"
)

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
type Online struct {
	environment  env.Environment
	agent        agent.Agent
	maxSteps     uint
	currentSteps uint
	episodes     int
	trackers     []tracker.Tracker
	logger       zerolog.Logger
	progress     *progressbar.ManualProgressBar
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines how
// many timesteps the experiment is run for, and the t parameter
// is a slice of tracker.Tracker which determine what data is saved.
func NewOnline(e env.Environment, a agent.Agent, steps uint,
	logger zerolog.Logger, t ...tracker.Tracker) *Online {
	return &Online{
		environment: e,
		agent:       a,
		maxSteps:    steps,
		trackers:    t,
		logger:      logger,
	}
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// ShowProgress displays a progress bar on out while the experiment runs
func (o *Online) ShowProgress(out io.Writer) {
	o.progress = progressbar.NewManualProgressBar(out, 40, int(o.maxSteps))
}

// Environment returns the environment the experiment runs in
func (o *Online) Environment() env.Environment {
	return o.environment
}

// Agent returns the agent the experiment runs
func (o *Online) Agent() agent.Agent {
	return o.agent
}

// Steps returns the number of steps run so far
func (o *Online) Steps() uint {
	return o.currentSteps
}

// Episodes returns the number of episodes started so far
func (o *Online) Episodes() int {
	return o.episodes
}

// RunEpisode runs a single episode of the experiment
func (o *Online) RunEpisode() (bool, error) {
	step, err := o.environment.Reset()
	if err != nil {
		return false, fmt.Errorf("runEpisode: could not reset: %w", err)
	}
	o.episodes++

	if err := o.agent.ObserveFirst(step); err != nil {
		return false, fmt.Errorf("runEpisode: %w", err)
	}
	o.track(step)

	// Run the next timestep
	for !step.Last() && o.currentSteps < o.maxSteps {
		o.currentSteps++

		// Select action, step in environment
		action, err := o.agent.SelectAction(step)
		if err != nil {
			return false, fmt.Errorf("runEpisode: step %v: %w",
				o.currentSteps, err)
		}
		o.trackDecision(step, action)

		step, _, err = o.environment.Step(action)
		if err != nil {
			return false, fmt.Errorf("runEpisode: step %v: %w",
				o.currentSteps, err)
		}

		// Cache the environment step in each Tracker
		o.track(step)

		// Observe the timestep and step the agent
		if err := o.agent.Observe(action, step); err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}
		if err := o.agent.Step(); err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}

		if o.progress != nil {
			o.progress.Increment()
			o.progress.Display()
		}
	}

	if step.Last() {
		o.agent.EndEpisode()
		o.logger.Info().
			Int("episode", o.episodes).
			Int("length", step.Number).
			Stringer("end", step.EndType()).
			Uint("steps", o.currentSteps).
			Msg("episode finished")
	}

	// Return whether or not the max timestep limit has been reached
	return o.currentSteps >= o.maxSteps, nil
}

// Run runs the entire experiment for all timesteps
func (o *Online) Run() error {
	if o.progress != nil {
		defer o.progress.Close()
	}

	for ended := false; !ended; {
		var err error
		if ended, err = o.RunEpisode(); err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}

// track tracks the current timestep by caching its data in each tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tr := range o.trackers {
		tr.Track(t)
	}
}

// trackDecision sends the action selected in t to each DecisionTracker
func (o *Online) trackDecision(t ts.TimeStep, action *mat.VecDense) {
	for _, tr := range o.trackers {
		if d, ok := tr.(tracker.DecisionTracker); ok {
			d.TrackDecision(t, action)
		}
	}
}
