package kmeans

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/kmeanspp/distance"
	"github.com/hupe1980/kmeanspp/pointset"
)

// Result is the outcome of Refine.
type Result struct {
	// Centroids are the refined centroids, in the order of the initial ones.
	Centroids [][]float64

	// Assignments labels every point with its nearest final centroid.
	Assignments []int

	// Iterations is the number of completed assignment/update rounds.
	Iterations int

	// Converged reports whether the last round moved no centroid by eps or more.
	Converged bool

	// MaxShift is the largest centroid movement of the last round.
	MaxShift float64

	// Inertia is the sum of squared distances to the final centroids.
	Inertia float64
}

// Refine runs Lloyd's algorithm on ps starting from initial.
//
// Each iteration performs one full assignment pass, then one full update
// pass, then the convergence check: if the largest Euclidean movement of any
// centroid is strictly below eps, refinement stops. A centroid without
// assigned points keeps its coordinates. After maxIter iterations the
// centroids of the last iteration are returned.
//
// initial is copied and never modified.
func Refine(ctx context.Context, ps *pointset.Set, initial [][]float64, maxIter int, eps float64, optFns ...Option) (*Result, error) {
	if err := validateRefine(ps, initial, maxIter, eps); err != nil {
		return nil, err
	}

	o := applyOptions(optFns)

	n := ps.Len()
	dim := ps.Dim()
	k := len(initial)

	centroids := cloneRows(initial, dim)
	next := cloneRows(initial, dim)
	counts := make([]int, k)
	assignments := make([]int, n)

	res := &Result{}

	for iter := 0; iter < maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Assignment step
		if err := assign(ctx, ps, centroids, assignments, o.workers); err != nil {
			return nil, err
		}

		// Update step
		update(ps, assignments, centroids, next, counts)

		// Convergence check
		shift := distance.MaxShift(centroids, next)
		centroids, next = next, centroids

		res.Iterations = iter + 1
		res.MaxShift = shift

		o.logger.Debug("lloyd iteration",
			"iteration", res.Iterations,
			"max_shift", shift,
		)

		if shift < eps {
			res.Converged = true
			break
		}
	}

	res.Centroids = centroids
	res.Assignments = Assign(ps, centroids)
	for i, c := range res.Assignments {
		res.Inertia += distance.SquaredL2(ps.Coords(i), centroids[c])
	}

	return res, nil
}

func validateRefine(ps *pointset.Set, initial [][]float64, maxIter int, eps float64) error {
	if ps == nil || ps.Len() == 0 {
		return pointset.ErrEmpty
	}
	if maxIter <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxIter, maxIter)
	}
	if eps < 0 || math.IsNaN(eps) {
		return fmt.Errorf("%w: %v", ErrInvalidEpsilon, eps)
	}
	if len(initial) == 0 || len(initial) >= ps.Len() {
		return fmt.Errorf("%w: k=%d, n=%d", ErrInvalidK, len(initial), ps.Len())
	}
	for j, c := range initial {
		if len(c) != ps.Dim() {
			return &ErrDimensionMismatch{Centroid: j, Expected: ps.Dim(), Actual: len(c)}
		}
	}
	return nil
}

// update writes the mean of each cluster into next. Empty clusters copy
// their previous coordinates from prev.
func update(ps *pointset.Set, assignments []int, prev, next [][]float64, counts []int) {
	for j := range next {
		clear(next[j])
		counts[j] = 0
	}

	for i, c := range assignments {
		floats.Add(next[c], ps.Coords(i))
		counts[c]++
	}

	for j := range next {
		if counts[j] == 0 {
			copy(next[j], prev[j])
			continue
		}
		floats.Scale(1/float64(counts[j]), next[j])
	}
}

func cloneRows(rows [][]float64, dim int) [][]float64 {
	data := make([]float64, len(rows)*dim)
	out := make([][]float64, len(rows))
	for j, r := range rows {
		out[j] = data[j*dim : (j+1)*dim : (j+1)*dim]
		copy(out[j], r)
	}
	return out
}
