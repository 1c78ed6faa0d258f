package testutil

import "github.com/hupe1980/kmeanspp/random"

// Call records one draw made through a CountingSource.
type Call struct {
	Weighted bool
	N        int // n for uniform draws, len(weights) for weighted ones
	Result   int
}

// CountingSource wraps a random.Source and records every call.
type CountingSource struct {
	Source random.Source
	Calls  []Call
}

// UniformIndex implements random.Source.
func (c *CountingSource) UniformIndex(n int) int {
	idx := c.Source.UniformIndex(n)
	c.Calls = append(c.Calls, Call{N: n, Result: idx})
	return idx
}

// WeightedIndex implements random.Source.
func (c *CountingSource) WeightedIndex(weights []float64) (int, bool) {
	idx, ok := c.Source.WeightedIndex(weights)
	c.Calls = append(c.Calls, Call{Weighted: true, N: len(weights), Result: idx})
	return idx, ok
}

// Uniform returns the number of recorded uniform draws.
func (c *CountingSource) Uniform() int {
	var n int
	for _, call := range c.Calls {
		if !call.Weighted {
			n++
		}
	}
	return n
}

// Weighted returns the number of recorded weighted draws.
func (c *CountingSource) Weighted() int {
	return len(c.Calls) - c.Uniform()
}

// ArgmaxSource is a deterministic random.Source: uniform draws return First,
// weighted draws return the first index of the largest weight.
type ArgmaxSource struct {
	First int
}

// UniformIndex implements random.Source.
func (a *ArgmaxSource) UniformIndex(n int) int {
	return a.First % n
}

// WeightedIndex implements random.Source.
func (a *ArgmaxSource) WeightedIndex(weights []float64) (int, bool) {
	best := -1
	for i, w := range weights {
		if w > 0 && (best < 0 || w > weights[best]) {
			best = i
		}
	}
	return best, best >= 0
}
