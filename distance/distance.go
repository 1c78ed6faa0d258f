package distance

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	b = b[:len(a)]

	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// L2 calculates the Euclidean distance between two vectors.
// Panics if the lengths differ.
func L2(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// MaxShift returns the largest L2 distance between prev[i] and next[i].
func MaxShift(prev, next [][]float64) float64 {
	var shift float64
	for i := range prev {
		if d := L2(prev[i], next[i]); d > shift {
			shift = d
		}
	}
	return shift
}

// Nearest returns the index of the vector in centers closest to v under
// squared L2 and that distance. Ties go to the lowest index, including ties
// at +Inf after overflow. Returns -1 and +Inf when centers is empty.
func Nearest(v []float64, centers [][]float64) (int, float64) {
	best := -1
	minDist := math.Inf(1)

	for j, c := range centers {
		if d := SquaredL2(v, c); best < 0 || d < minDist {
			minDist = d
			best = j
		}
	}

	return best, minDist
}
