package trace

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/energybaselines/environment"
	ts "github.com/samuelfneumann/energybaselines/timestep"
)

const csvTrace = `C_hour,C_price,reward
0,10,1
1,20,2
2,30,3
3,40,4
4,50,5
`

func TestLoadCSV(t *testing.T) {
	tr, err := LoadCSV(strings.NewReader(csvTrace))
	require.NoError(t, err)
	assert.Equal(t, 5, tr.Len())
	assert.Equal(t, []string{"C_hour", "C_price", "reward"}, tr.Fields.Names())

	col, err := tr.Column("C_price")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20, 30, 40, 50}, col)

	_, err = tr.Column("missing")
	assert.True(t, errors.Is(err, environment.ErrNoSuchField))
}

func TestLoadCSVErrors(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = LoadCSV(strings.NewReader("a,b\n1,x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "b"`)

	_, err = LoadCSV(strings.NewReader("a,a\n1,2\n"))
	assert.Error(t, err)
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1",
		&[]interface{}{"C_hour", "C_price"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{0, 12.5}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{1, 250}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tr, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, [][]float64{{0, 12.5}, {1, 250}}, tr.Rows)

	_, err = LoadXLSX(path, "NoSuchSheet")
	assert.Error(t, err)
}

func newReplay(t *testing.T, s Starter, cutoff int) *Replay {
	t.Helper()

	tr, err := LoadCSV(strings.NewReader(csvTrace))
	require.NoError(t, err)
	task, err := NewRecordedReward(tr, "reward")
	require.NoError(t, err)

	r, _, err := New(tr, task, s, cutoff, 0.9, []float64{0}, []float64{1})
	require.NoError(t, err)
	return r
}

func TestReplayTimeout(t *testing.T) {
	r := newReplay(t, FixedStart(0), 2)
	action := mat.NewVecDense(1, []float64{1})

	first := r.CurrentTimeStep()
	assert.True(t, first.First())
	assert.Equal(t, 0.0, first.Observation.AtVec(0))

	step, last, err := r.Step(action)
	require.NoError(t, err)
	assert.False(t, last)
	assert.Equal(t, 2.0, step.Reward)
	assert.Equal(t, 0.9, step.Discount)

	step, last, err = r.Step(action)
	require.NoError(t, err)
	assert.True(t, last)
	assert.Equal(t, ts.Timeout, step.EndType())
	assert.Equal(t, 2, step.Number)

	_, _, err = r.Step(action)
	assert.Error(t, err)

	step, err = r.Reset()
	require.NoError(t, err)
	assert.True(t, step.First())
}

func TestReplayEndOfTrace(t *testing.T) {
	r := newReplay(t, FixedStart(2), 10)
	action := mat.NewVecDense(1, []float64{0})

	_, last, err := r.Step(action)
	require.NoError(t, err)
	assert.False(t, last)

	step, last, err := r.Step(action)
	require.NoError(t, err)
	assert.True(t, last)
	assert.Equal(t, ts.TerminalStateReached, step.EndType())
	assert.Equal(t, 4.0, step.Observation.AtVec(0))
}

func TestReplayActionShape(t *testing.T) {
	r := newReplay(t, FixedStart(0), 2)

	_, _, err := r.Step(mat.NewVecDense(2, nil))
	assert.Error(t, err)
	_, _, err = r.Step(nil)
	assert.Error(t, err)
}

func TestReplaySpecs(t *testing.T) {
	r := newReplay(t, FixedStart(0), 2)

	obs := r.ObservationSpec()
	assert.Equal(t, 3, obs.Len())
	assert.Equal(t, 10.0, obs.LowerBound.AtVec(1))
	assert.Equal(t, 50.0, obs.UpperBound.AtVec(1))

	reward := r.RewardSpec()
	assert.Equal(t, 1.0, reward.LowerBound.AtVec(0))
	assert.Equal(t, 5.0, reward.UpperBound.AtVec(0))

	assert.Equal(t, 0.9, r.DiscountSpec().UpperBound.AtVec(0))
	assert.Equal(t, 1.0, r.ActionSpec().UpperBound.AtVec(0))

	idx, err := r.ObservationInfo().Index("C_price")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestUniformStart(t *testing.T) {
	s := NewUniformStart(42)
	for i := 0; i < 100; i++ {
		row, err := s.Start(10, 3)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, row, 0)
		assert.LessOrEqual(t, row, 6)
	}

	row, err := s.Start(3, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, row)

	_, err = s.Start(1, 5)
	assert.Error(t, err)
}

func TestNewInvalid(t *testing.T) {
	tr, err := LoadCSV(strings.NewReader(csvTrace))
	require.NoError(t, err)

	_, _, err = New(tr, NoReward{}, FixedStart(0), 0, 1, []float64{0},
		[]float64{1})
	assert.Error(t, err)

	_, _, err = New(tr, NoReward{}, FixedStart(0), 2, 1.5, []float64{0},
		[]float64{1})
	assert.Error(t, err)

	_, _, err = New(tr, NoReward{}, FixedStart(0), 2, 1, []float64{2},
		[]float64{1})
	assert.Error(t, err)

	_, _, err = New(tr, NoReward{}, FixedStart(0), 2, 1, []float64{0},
		[]float64{1, 2})
	assert.Error(t, err)

	_, _, err = New(tr, NoReward{}, FixedStart(4), 2, 1, []float64{0},
		[]float64{1})
	assert.Error(t, err)

	assert.NotPanics(t, func() {
		_, _, err = New(tr, NoReward{}, FixedStart(0), 2, 1, []float64{0},
			nil)
	})
	assert.Error(t, err)

	empty, err := NewTrace([]string{}, [][]float64{{}, {}})
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		_, _, err = New(empty, NoReward{}, FixedStart(0), 2, 1,
			[]float64{0}, []float64{1})
	})
	assert.Error(t, err)
}

func TestConfigCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")
	require.NoError(t, writeFile(path, csvTrace))

	c := Config{
		Path:          path,
		RewardColumn:  "reward",
		EpisodeCutoff: 2,
		Discount:      1,
		ActionLow:     []float64{0},
		ActionHigh:    []float64{1},
	}
	e, step, err := c.Create(1)
	require.NoError(t, err)
	assert.True(t, step.First())
	assert.Equal(t, 5.0, e.RewardSpec().UpperBound.AtVec(0))

	c.RewardColumn = "missing"
	_, _, err = c.Create(1)
	assert.True(t, errors.Is(err, environment.ErrNoSuchField))

	assert.Error(t, Config{}.Validate())
}

func writeFile(path, data string) error {
	return os.WriteFile(path, []byte(data), 0o600)
}
