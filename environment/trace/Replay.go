package trace

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	env "github.com/samuelfneumann/energybaselines/environment"
	ts "github.com/samuelfneumann/energybaselines/timestep"
)

// Replay is an environment.Environment which replays the rows of a
// Trace as observations. Each episode starts at a row selected by a
// Starter and ends after a cutoff number of steps, or when the trace
// runs out of rows.
type Replay struct {
	env.Task
	trace   *Trace
	starter Starter
	limit   env.StepLimit
	cutoff  int

	discount   float64
	actionSpec env.Spec
	obsSpec    env.Spec

	start       int
	currentStep ts.TimeStep
}

// New returns a new Replay of trace t, along with the first step of
// the first episode. The action space is continuous and bounded below
// by actionLow and above by actionHigh.
func New(t *Trace, task env.Task, s Starter, cutoff int, discount float64,
	actionLow, actionHigh []float64) (*Replay, ts.TimeStep, error) {
	if t.Len() < 2 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: trace of %v rows "+
			"has no steps", t.Len())
	}
	if cutoff <= 0 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: episode cutoff must "+
			"be positive, got %v", cutoff)
	}
	if discount < 0 || discount > 1 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: discount %v outside "+
			"[0, 1]", discount)
	}
	for i := range actionLow {
		if i < len(actionHigh) && actionLow[i] > actionHigh[i] {
			return nil, ts.TimeStep{}, fmt.Errorf("new: action %v has lower "+
				"bound %v above upper bound %v", i, actionLow[i],
				actionHigh[i])
		}
	}

	dim := len(actionLow)
	if dim == 0 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: empty action space")
	}
	if len(actionHigh) != dim {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v lower and %v upper "+
			"action bounds", dim, len(actionHigh))
	}
	if t.Fields.Len() == 0 {
		return nil, ts.TimeStep{}, fmt.Errorf("new: trace has no fields")
	}
	actionSpec, err := env.NewSpec(mat.NewVecDense(dim, nil), env.Action,
		mat.NewVecDense(dim, append([]float64(nil), actionLow...)),
		mat.NewVecDense(dim, append([]float64(nil), actionHigh...)),
		env.Continuous)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}

	low, high := t.bounds()
	n := t.Fields.Len()
	obsSpec, err := env.NewSpec(mat.NewVecDense(n, nil), env.Observation,
		mat.NewVecDense(n, low), mat.NewVecDense(n, high), env.Continuous)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}

	r := &Replay{
		Task:       task,
		trace:      t,
		starter:    s,
		limit:      env.NewStepLimit(cutoff),
		cutoff:     cutoff,
		discount:   discount,
		actionSpec: actionSpec,
		obsSpec:    obsSpec,
	}

	step, err := r.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}
	return r, step, nil
}

// observation returns the observation recorded at row i
func (r *Replay) observation(i int) *mat.VecDense {
	row := make([]float64, len(r.trace.Rows[i]))
	copy(row, r.trace.Rows[i])
	return mat.NewVecDense(len(row), row)
}

// Reset starts a new episode and returns its first step
func (r *Replay) Reset() (ts.TimeStep, error) {
	start, err := r.starter.Start(r.trace.Len(), r.cutoff)
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %w", err)
	}

	r.start = start
	r.currentStep = ts.New(ts.First, 0, r.discount, r.observation(start), 0)

	return r.currentStep, nil
}

// Step replays the next row of the trace. The action only influences
// the reward, and must match the shape of the action space.
func (r *Replay) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	if r.currentStep.Last() {
		return ts.TimeStep{}, true, fmt.Errorf("step: episode has ended, " +
			"reset the environment")
	}
	if action == nil || action.Len() != r.actionSpec.Len() {
		got := 0
		if action != nil {
			got = action.Len()
		}
		return ts.TimeStep{}, false, fmt.Errorf("step: action of length %v "+
			"does not match action space of length %v", got,
			r.actionSpec.Len())
	}

	number := r.currentStep.Number + 1
	row := r.start + number
	nextState := r.observation(row)

	reward := r.GetReward(r.currentStep.Observation, action, nextState)
	nextStep := ts.New(ts.Mid, reward, r.discount, nextState, number)

	last := r.limit.End(&nextStep)
	if !last && row == r.trace.Len()-1 {
		nextStep.StepType = ts.Last
		nextStep.SetEnd(ts.TerminalStateReached)
		last = true
	}

	r.currentStep = nextStep
	return nextStep, last, nil
}

// CurrentTimeStep returns the current step of the environment
func (r *Replay) CurrentTimeStep() ts.TimeStep {
	return r.currentStep
}

// ObservationInfo returns the names of the observation features
func (r *Replay) ObservationInfo() env.FieldIndex {
	return r.trace.Fields
}

// ActionSpec returns the action specification of the environment
func (r *Replay) ActionSpec() env.Spec {
	return r.actionSpec
}

// ObservationSpec returns the observation specification of the
// environment. Bounds are the extreme values recorded in the trace.
func (r *Replay) ObservationSpec() env.Spec {
	return r.obsSpec
}

// DiscountSpec returns the discount specification of the environment
func (r *Replay) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{r.discount})

	return env.Spec{Shape: shape, Type: env.Discount, LowerBound: bound,
		UpperBound: bound, Cardinality: env.Continuous}
}

// RewardSpec returns the reward specification of the environment
func (r *Replay) RewardSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	low, high := 0.0, 0.0

	if task, ok := r.Task.(*RecordedReward); ok {
		low = r.obsSpec.LowerBound.AtVec(task.index)
		high = r.obsSpec.UpperBound.AtVec(task.index)
	}

	return env.Spec{
		Shape:       shape,
		Type:        env.Reward,
		LowerBound:  mat.NewVecDense(1, []float64{low}),
		UpperBound:  mat.NewVecDense(1, []float64{high}),
		Cardinality: env.Continuous,
	}
}

func (r *Replay) String() string {
	return fmt.Sprintf("Replay | Rows: %v  |  Fields: %v  |  Cutoff: %v",
		r.trace.Len(), r.trace.Fields.Len(), r.cutoff)
}
