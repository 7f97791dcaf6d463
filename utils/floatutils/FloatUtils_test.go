package floatutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestClip(t *testing.T) {
	assert.Equal(t, 1.0, Clip(5, -1, 1))
	assert.Equal(t, -1.0, Clip(-5, -1, 1))
	assert.Equal(t, 0.5, Clip(0.5, -1, 1))
}

func TestRange(t *testing.T) {
	assert.Equal(t, r1.Interval{}, Range(nil))
	assert.Equal(t, r1.Interval{Min: -2, Max: 7}, Range([]float64{3, -2, 7, 0}))
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.Equal(t, 8, s.N)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, 2.138089935, s.StdDev, 1e-8)
	assert.Equal(t, r1.Interval{Min: 2, Max: 9}, s.Range)

	one := Summarize([]float64{3})
	assert.Equal(t, 3.0, one.Mean)
	assert.Equal(t, 0.0, one.StdDev)

	assert.Equal(t, 0, Summarize(nil).N)
}
