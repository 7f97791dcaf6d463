package baseline

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/energybaselines/environment"
	"github.com/samuelfneumann/energybaselines/environment/trace"
	"github.com/samuelfneumann/energybaselines/timestep"
)

func newEnv(t *testing.T, low, high []float64) environment.Environment {
	t.Helper()

	tr, err := trace.NewTrace([]string{"a", "b", "c"}, [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	require.NoError(t, err)

	env, _, err := trace.New(tr, trace.NoReward{}, trace.FixedStart(0), 1,
		1.0, low, high)
	require.NoError(t, err)
	return env
}

func TestNewBase(t *testing.T) {
	env := newEnv(t, []float64{-1, 0}, []float64{1, 5})
	b, err := NewBase(env, 0.9, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, env, b.Environment())
	assert.Equal(t, 0.9, b.Discount())
	assert.Equal(t, 2, b.ActionDim())
	assert.Equal(t, []float64{-1, 0}, b.Low().RawRowView(0))
	assert.Equal(t, []float64{1, 5}, b.High().RawRowView(0))

	i, err := b.Field("c")
	require.NoError(t, err)
	assert.Equal(t, 2, i)
}

func TestNewBaseInvalid(t *testing.T) {
	env := newEnv(t, []float64{0}, []float64{1})

	_, err := NewBase(env, -0.1, zerolog.Nop())
	assert.Error(t, err)
	_, err = NewBase(env, 1.1, zerolog.Nop())
	assert.Error(t, err)
	_, err = NewBase(nil, 1, zerolog.Nop())
	assert.Error(t, err)
}

func TestBoundsAreCopies(t *testing.T) {
	b, err := NewBase(newEnv(t, []float64{0}, []float64{1}), 1, zerolog.Nop())
	require.NoError(t, err)

	b.High().Set(0, 0, 100)
	b.Low().Set(0, 0, 100)
	assert.Equal(t, 1.0, b.High().At(0, 0))
	assert.Equal(t, 0.0, b.Low().At(0, 0))
}

func TestRow(t *testing.T) {
	b, err := NewBase(newEnv(t, []float64{0}, []float64{1}), 1, zerolog.Nop())
	require.NoError(t, err)

	row, err := b.Row(mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, row.(*mat.VecDense).RawVector().Data)

	_, err = b.Row(mat.NewDense(1, 2, nil))
	assert.True(t, errors.Is(err, ErrShape))
	_, err = b.Row(nil)
	assert.True(t, errors.Is(err, ErrShape))
}

func TestSelect(t *testing.T) {
	b, err := NewBase(newEnv(t, []float64{0, 0}, []float64{1, 1}), 1,
		zerolog.Nop())
	require.NoError(t, err)

	var seen mat.Matrix
	decide := func(obs mat.Matrix) (*mat.Dense, error) {
		seen = obs
		return b.High(), nil
	}

	step := timestep.New(timestep.Mid, 0, 1,
		mat.NewVecDense(3, []float64{7, 8, 9}), 1)
	action, err := b.Select(step, decide)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, action.RawVector().Data)

	r, c := seen.Dims()
	assert.Equal(t, 1, r)
	assert.Equal(t, 3, c)

	failing := func(mat.Matrix) (*mat.Dense, error) {
		return nil, ErrShape
	}
	_, err = b.Select(step, failing)
	assert.True(t, errors.Is(err, ErrShape))
}

func TestLearnerNoOps(t *testing.T) {
	var buf bytes.Buffer
	b, err := NewBase(newEnv(t, []float64{0}, []float64{1}), 1,
		zerolog.New(&buf))
	require.NoError(t, err)

	step := timestep.New(timestep.First, 0, 1, nil, 0)
	assert.NoError(t, b.ObserveFirst(step))
	assert.NoError(t, b.Observe(nil, step))
	assert.NoError(t, b.Step())
	b.EndEpisode()

	assert.False(t, b.IsEval())
	b.Eval()
	assert.True(t, b.IsEval())
	b.Train()
	assert.False(t, b.IsEval())

	b.Logger().Info().Msg("owned")
	assert.Contains(t, buf.String(), "owned")
}
