package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSquaredL2(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 5, 6}, 27},
		{"Zero", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"Mixed", []float64{1, -1}, []float64{-1, 1}, 8},
		{"Empty", []float64{}, []float64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SquaredL2(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestL2(t *testing.T) {
	assert.InDelta(t, 5.0, L2([]float64{0, 0}, []float64{3, 4}), 1e-12)
	assert.Equal(t, 0.0, L2([]float64{1.5, -2}, []float64{1.5, -2}))

	// L2 must agree with the root of SquaredL2.
	a := []float64{0.25, 7, -3, 11}
	b := []float64{9, -1.5, 2, 0}
	assert.InDelta(t, math.Sqrt(SquaredL2(a, b)), L2(a, b), 1e-12)
}

func TestMaxShift(t *testing.T) {
	prev := [][]float64{{0, 0}, {10, 10}}
	next := [][]float64{{0, 1}, {13, 14}}

	assert.InDelta(t, 5.0, MaxShift(prev, next), 1e-12)
	assert.Equal(t, 0.0, MaxShift(prev, prev))
}

func TestNearest(t *testing.T) {
	centers := [][]float64{
		{0, 0},
		{10, 10},
		{20, 20},
	}

	idx, d := Nearest([]float64{1, 1}, centers)
	assert.Equal(t, 0, idx)
	assert.InDelta(t, 2.0, d, 1e-12)

	idx, _ = Nearest([]float64{19, 19}, centers)
	assert.Equal(t, 2, idx)

	t.Run("TieGoesToLowestIndex", func(t *testing.T) {
		idx, _ := Nearest([]float64{5, 5}, centers)
		assert.Equal(t, 0, idx)

		idx, _ = Nearest([]float64{15, 15}, centers)
		assert.Equal(t, 1, idx)
	})

	t.Run("OverflowTie", func(t *testing.T) {
		idx, d := Nearest([]float64{1e200}, [][]float64{{-1e200}, {3e200}})
		assert.Equal(t, 0, idx)
		assert.True(t, math.IsInf(d, 1))
	})

	t.Run("Empty", func(t *testing.T) {
		idx, d := Nearest([]float64{1}, nil)
		assert.Equal(t, -1, idx)
		assert.True(t, math.IsInf(d, 1))
	})
}
