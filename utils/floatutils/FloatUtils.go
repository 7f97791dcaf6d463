// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// Range returns the interval spanned by a slice of floats. An empty
// slice spans [0, 0].
func Range(values []float64) r1.Interval {
	if len(values) == 0 {
		return r1.Interval{}
	}

	i := r1.Interval{Min: values[0], Max: values[0]}
	for _, v := range values[1:] {
		i.Min = math.Min(i.Min, v)
		i.Max = math.Max(i.Max, v)
	}
	return i
}

// Summary holds summary statistics of a sample
type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Range  r1.Interval
}

// Summarize returns summary statistics of the argument values. The
// standard deviation of fewer than two values is 0.
func Summarize(values []float64) Summary {
	s := Summary{N: len(values), Range: Range(values)}
	if len(values) == 0 {
		return s
	}

	if len(values) == 1 {
		s.Mean = values[0]
		return s
	}

	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	return s
}
