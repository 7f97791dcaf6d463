package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/energybaselines/agent/baseline/dispatch"
	"github.com/samuelfneumann/energybaselines/environment/trace"
	"github.com/samuelfneumann/energybaselines/experiment"
	"github.com/samuelfneumann/energybaselines/experiment/tracker"
)

const csvTrace = `C_hour,C_cumulative_mean_dispatch_[$/MWh],reward
0,100,1
1,250,2
2,150,3
3,300,4
4,50,5
`

func writeExperiment(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	tracePath := filepath.Join(dir, "trace.csv")
	require.NoError(t, os.WriteFile(tracePath, []byte(csvTrace), 0o600))

	c := experiment.Config{
		Type:     experiment.OnlineExp,
		MaxSteps: 4,
		EnvConf: trace.Config{
			Path:          tracePath,
			RewardColumn:  "reward",
			EpisodeCutoff: 2,
			Discount:      1,
			ActionLow:     []float64{0},
			ActionHigh:    []float64{1},
		},
		AgentConf: dispatch.NewConfigList([]float64{200, 120},
			[]string{dispatch.DefaultField}, []float64{1}),
	}
	data, err := json.Marshal(c)
	require.NoError(t, err)

	path := filepath.Join(dir, "experiment.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRun(t *testing.T) {
	output := t.TempDir()
	out, err := execute(t, "run", "--experiment", writeExperiment(t),
		"--output", output, "--timeline-field", dispatch.DefaultField,
		"--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "ThresholdTrigger-Baseline")

	runs, err := os.ReadDir(output)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	_, err = uuid.Parse(runs[0].Name())
	assert.NoError(t, err)

	dir := filepath.Join(output, runs[0].Name())
	assert.FileExists(t, filepath.Join(dir, returnsReport))
	for _, i := range []string{"0", "1"} {
		assert.FileExists(t, filepath.Join(dir, i, timelineFile))

		returns, err := tracker.LoadData(filepath.Join(dir, i, returnFile))
		require.NoError(t, err)
		assert.Equal(t, []float64{5, 5}, returns)

		lengths, err := tracker.LoadLengths(filepath.Join(dir, i, lengthFile))
		require.NoError(t, err)
		assert.Equal(t, []int{2, 2}, lengths)
	}

	d, err := tracker.LoadDecisions(filepath.Join(dir, "1", decisionFile))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0}, {1}, {0}, {1}}, d.Actions)
}

func TestRunIndex(t *testing.T) {
	output := t.TempDir()
	_, err := execute(t, "run", "--experiment", writeExperiment(t),
		"--output", output, "--index", "1", "--report=false",
		"--log-level", "error")
	require.NoError(t, err)

	runs, err := os.ReadDir(output)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	dir := filepath.Join(output, runs[0].Name())
	assert.NoDirExists(t, filepath.Join(dir, "0"))
	assert.FileExists(t, filepath.Join(dir, "1", returnFile))
	assert.NoFileExists(t, filepath.Join(dir, returnsReport))

	_, err = execute(t, "run", "--experiment", writeExperiment(t),
		"--output", output, "--index", "2")
	assert.Error(t, err)
}

func TestRunSettingsFile(t *testing.T) {
	output := t.TempDir()
	settings := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte(
		"experiment: "+writeExperiment(t)+"\noutput: "+output+
			"\nlog_level: error\n"), 0o600))

	_, err := execute(t, "run", "--config", settings)
	require.NoError(t, err)

	runs, err := os.ReadDir(output)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRunMissingExperiment(t *testing.T) {
	_, err := execute(t, "run", "--output", t.TempDir())
	assert.Error(t, err)
}

func TestAudit(t *testing.T) {
	out, err := execute(t, "audit")
	require.NoError(t, err)
	assert.Contains(t, out, "3 defects")
	assert.Contains(t, out, "never receives")
}

func TestConfigIndices(t *testing.T) {
	indices, err := configIndices(-1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, indices)

	indices, err = configIndices(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, indices)

	_, err = configIndices(3, 3)
	assert.Error(t, err)

	_, err = configIndices(-1, 0)
	assert.Error(t, err)
}
