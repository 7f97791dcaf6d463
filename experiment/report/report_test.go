package report

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuelfneumann/energybaselines/experiment/tracker"
)

func TestReturns(t *testing.T) {
	var buf bytes.Buffer
	err := Returns(&buf, "Baselines",
		Series{Name: "dispatch", Values: []float64{1, 2, 3}},
		Series{Name: "flex", Values: []float64{3, 2}},
	)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "Baselines")
	assert.Contains(t, html, "dispatch")
	assert.Contains(t, html, "flex")

	assert.Error(t, Returns(&buf, "empty"))
}

func TestTimeline(t *testing.T) {
	d := tracker.DecisionData{
		Fields:  []string{"C_hour"},
		Values:  [][]float64{{0}, {1}, {2}, {3}},
		Actions: [][]float64{{0}, {1}, {1}, {0}},
	}

	path := filepath.Join(t.TempDir(), "timeline.png")
	require.NoError(t, Timeline(path, d, "C_hour", 0, 320, 240))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())

	assert.Error(t, Timeline(path, d, "D_hour", 0, 320, 240))
	assert.Error(t, Timeline(path, d, "C_hour", 1, 320, 240))
	assert.Error(t, Timeline(path, d, "C_hour", 0, 10, 10))
	assert.Error(t, Timeline(path, tracker.DecisionData{
		Fields: []string{"C_hour"}}, "C_hour", 0, 320, 240))
}
